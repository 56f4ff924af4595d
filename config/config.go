package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the YAML configuration of scenetx.
type Config struct {
	LogLevel string `yaml:"logLevel"`
	History  struct {
		MaxLength int `yaml:"maxLength"`
	} `yaml:"history"`
	Animation struct {
		FrameRate      float64 `yaml:"frameRate"`
		ColorMode      string  `yaml:"colorMode"`
		HoldPausedPose bool    `yaml:"holdPausedPose"`
	} `yaml:"animation"`
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientID"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Frames  string `yaml:"frames"`
			Control string `yaml:"control"`
			Status  string `yaml:"status"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	HTTP struct {
		Listen    string `yaml:"listen"`
		StaticDir string `yaml:"staticDir"`
	} `yaml:"http"`
	Storage struct {
		DataDir string `yaml:"dataDir"`
	} `yaml:"storage"`
	Scene struct {
		Path string `yaml:"path"`
	} `yaml:"scene"`
}

// Default returns the configuration used when a key is not set.
func Default() Config {
	var c Config
	c.LogLevel = "info"
	c.History.MaxLength = 100
	c.Animation.FrameRate = 30
	c.Animation.ColorMode = "step"
	c.Mqtt.ClientID = "scenetx"
	c.Mqtt.Topics.Frames = "scenetx/frames"
	c.Mqtt.Topics.Control = "scenetx/control"
	c.Mqtt.Topics.Status = "scenetx/status"
	c.HTTP.Listen = ":3000"
	c.HTTP.StaticDir = "client/dist"
	c.Storage.DataDir = "./data"
	return c
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	c := Default()

	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.SetStrict(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}

	if c.Animation.FrameRate <= 0 {
		return c, fmt.Errorf("animation.frameRate must be positive, got %v", c.Animation.FrameRate)
	}
	return c, nil
}
