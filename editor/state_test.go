package editor

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/scenetx/scene"
)

func TestEditor_Settings(t *testing.T) {
	e := New(Options{})
	assert.Equal(t, scene.DefaultSettings(), e.Settings())

	e.SetSettings(scene.Settings{SnapToGrid: true, ShowGrid: false, TransformMode: scene.ModeRotate})
	got := e.Settings()
	assert.Equal(t, 1.0, got.GridSize)
	assert.True(t, got.SnapToGrid)
	assert.Equal(t, scene.ModeRotate, got.TransformMode)
	assert.False(t, e.CanUndo())
}

func TestEditor_DataSources(t *testing.T) {
	e := New(Options{})
	require.NoError(t, e.SetDataSource("weather", json.RawMessage(`{"url":"/weather"}`)))
	assert.Error(t, e.SetDataSource("broken", json.RawMessage(`{`)))
	assert.Len(t, e.DataSources(), 1)

	require.NoError(t, e.RemoveDataSource("weather"))
	assert.True(t, errors.Is(e.RemoveDataSource("weather"), ErrNotFound))
	assert.Empty(t, e.DataSources())
}

func TestEditor_ModelObjects(t *testing.T) {
	e := New(Options{})
	e.AddModel(scene.Model{ID: "chair", Name: "Chair", URL: "/models/chair.glb"})

	id, err := e.AddModelObject("chair")
	require.NoError(t, err)
	o, found := e.Object(id)
	require.True(t, found)
	assert.Equal(t, "/models/chair.glb", o.ModelURL)
	assert.True(t, e.Undo())
	_, found = e.Object(id)
	assert.False(t, found)

	_, err = e.AddModelObject("sofa")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, e.RemoveModel("chair"))
	assert.True(t, errors.Is(e.RemoveModel("chair"), ErrNotFound))
	assert.Empty(t, e.Models())
}
