package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/scenetx/animation"
	"github.com/matt-g-everett/scenetx/api"
	"github.com/matt-g-everett/scenetx/config"
	"github.com/matt-g-everett/scenetx/editor"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/matt-g-everett/scenetx/storage"
	"github.com/matt-g-everett/scenetx/stream"
	"github.com/matt-g-everett/scenetx/util"
)

type app struct {
	Config   config.Config
	Client   mqtt.Client
	Editor   *editor.Editor
	Store    *storage.Store
	Streamer *stream.Streamer
}

func newApp(cfg config.Config) *app {
	a := new(app)
	a.Config = cfg
	a.Editor = editor.New(editor.Options{
		MaxHistory:     cfg.History.MaxLength,
		ColorMode:      animation.ParseColorMode(cfg.Animation.ColorMode),
		HoldPausedPose: cfg.Animation.HoldPausedPose,
	})
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Info().Str("broker", a.Config.Mqtt.URL).Msg("Connected")
	if err := a.Streamer.Subscribe(); err != nil {
		log.Error().Err(err).Msg("Failed to subscribe")
	}
}

func (a *app) loadScene(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := scene.DecodeDocument(f)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	a.Editor.Import(doc)
	log.Info().Str("path", path).Str("name", doc.Metadata.Name).Int("objects", len(doc.Objects)).Msg("Loaded scene")
	return nil
}

func (a *app) run(ctx context.Context) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("Failed to connect to broker")
	}
	defer a.Client.Disconnect(250)
	a.Streamer.Run(ctx)
}

func main() {
	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		stdlog.Fatalf("Failed to read config: %v", err)
	}
	util.SetupLogging(cfg.LogLevel)
	mqtt.ERROR = stdlog.New(log.Logger, "", 0)

	a := newApp(cfg)
	if cfg.Scene.Path != "" {
		if err := a.loadScene(cfg.Scene.Path); err != nil {
			log.Fatal().Err(err).Str("path", cfg.Scene.Path).Msg("Failed to load scene")
		}
	}

	a.Store, err = storage.OpenStore(cfg.Storage.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open scene store")
	}
	defer a.Store.Close()

	options := mqtt.NewClientOptions().
		AddBroker(cfg.Mqtt.URL).
		SetClientID(cfg.Mqtt.ClientID).
		SetUsername(cfg.Mqtt.Username).
		SetPassword(cfg.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Streamer = stream.NewStreamer(cfg, a.Client, a.Editor)

	go func() {
		if err := api.NewApi(a.Editor, a.Store, cfg.HTTP.StaticDir).Serve(cfg.HTTP.Listen); err != nil {
			log.Fatal().Err(err).Msg("HTTP server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.run(ctx)
	log.Info().Msg("Shutting down")
}
