package editor

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/scenetx/scene"
)

// Settings returns the editor settings.
func (e *Editor) Settings() scene.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Settings()
}

// SetSettings replaces the editor settings. Settings are not undoable.
func (e *Editor) SetSettings(s scene.Settings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.GridSize <= 0 {
		s.GridSize = 1
	}
	if s.TransformMode == "" {
		s.TransformMode = scene.ModeTranslate
	}
	e.scene.SetSettings(s)
}

// DataSources returns the widget data sources.
func (e *Editor) DataSources() map[string]json.RawMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.DataSources()
}

// SetDataSource adds or replaces a widget data source.
func (e *Editor) SetDataSource(id string, raw json.RawMessage) error {
	if !json.Valid(raw) {
		return fmt.Errorf("data source %q is not valid JSON", id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene.SetDataSource(id, raw)
	return nil
}

// RemoveDataSource removes a widget data source.
func (e *Editor) RemoveDataSource(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, found := e.scene.DataSources()[id]; !found {
		return fmt.Errorf("data source %q: %w", id, ErrNotFound)
	}
	e.scene.RemoveDataSource(id)
	return nil
}

// AddModel registers an uploaded model.
func (e *Editor) AddModel(m scene.Model) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene.AddModel(m)
	log.Debug().Str("model", m.ID).Str("url", m.URL).Msg("Registered model")
}

// RemoveModel drops an uploaded model from the registry.
func (e *Editor) RemoveModel(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.scene.RemoveModel(id) {
		return fmt.Errorf("model %q: %w", id, ErrNotFound)
	}
	return nil
}

// Models returns the registered models.
func (e *Editor) Models() []scene.Model {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Models()
}

// AddModelObject places a new object loading a registered model and
// returns its id.
func (e *Editor) AddModelObject(modelID string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, found := e.scene.Model(modelID)
	if !found {
		return "", fmt.Errorf("model %q: %w", modelID, ErrNotFound)
	}
	o := scene.NewModelObject(m)
	e.execute(scene.NewAddCommand(o))
	return o.ID, nil
}
