package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/scenetx/config"
	"github.com/matt-g-everett/scenetx/editor"
)

// Streamer publishes evaluated frames over MQTT and applies control
// messages from subscribers.
type Streamer struct {
	config  config.Config
	client  mqtt.Client
	editor  *editor.Editor
	control *Controller
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(cfg config.Config, client mqtt.Client, ed *editor.Editor) *Streamer {
	s := new(Streamer)
	s.config = cfg
	s.client = client
	s.editor = ed
	s.control = NewController(ed)
	return s
}

// SendFrame publishes the frame at the current clock.
func (s *Streamer) SendFrame() error {
	f := s.editor.Evaluate()
	b, err := f.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	token := s.client.Publish(s.config.Mqtt.Topics.Frames, 0, false, b)
	token.Wait()
	return token.Error()
}

// Subscribe listens for control messages.
func (s *Streamer) Subscribe() error {
	token := s.client.Subscribe(s.config.Mqtt.Topics.Control, 1, s.handleControlMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.config.Mqtt.Topics.Control, err)
	}
	log.Info().Str("topic", s.config.Mqtt.Topics.Control).Msg("Subscribed to control topic")
	return nil
}

func (s *Streamer) handleControlMessage(client mqtt.Client, msg mqtt.Message) {
	log.Debug().Uint16("id", msg.MessageID()).Str("topic", msg.Topic()).Bytes("payload", msg.Payload()).Msg("Received control message")

	status, err := s.control.HandlePayload(msg.Payload())
	if err != nil {
		log.Warn().Err(err).Msg("Control message rejected")
	}
	if err := s.publishStatus(status); err != nil {
		log.Error().Err(err).Msg("Failed to publish status")
	}
}

func (s *Streamer) publishStatus(status editor.Status) error {
	b, err := json.Marshal(status)
	if err != nil {
		return err
	}
	token := s.client.Publish(s.config.Mqtt.Topics.Status, 1, true, b)
	token.Wait()
	return token.Error()
}

// Run advances the animation clock and sends frames at the configured
// frame rate until ctx is done.
func (s *Streamer) Run(ctx context.Context) {
	interval := time.Duration(float64(time.Second) / s.config.Animation.FrameRate)
	publishTimer := time.NewTicker(interval)
	defer publishTimer.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-publishTimer.C:
			s.editor.Advance(now.Sub(last).Seconds())
			last = now
			if err := s.SendFrame(); err != nil {
				log.Error().Err(err).Msg("Failed to send frame")
			}
		}
	}
}
