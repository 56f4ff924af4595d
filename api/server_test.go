package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/scenetx/editor"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/matt-g-everett/scenetx/storage"
)

func newTestApi(t *testing.T, withStore bool) (*Api, *editor.Editor) {
	t.Helper()
	ed := editor.New(editor.Options{Name: "test"})
	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.OpenStore(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
	}
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>editor</html>"), 0644))
	return NewApi(ed, store, static), ed
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func addBox(ed *editor.Editor, id string) {
	o := scene.NewObject(scene.TypeBox, id)
	o.ID = id
	ed.AddObject(o)
}

func TestSceneExportImport(t *testing.T) {
	a, ed := newTestApi(t, false)
	addBox(ed, "a")
	h := a.Handler()

	rec := do(t, h, http.MethodGet, "/api/scene", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	exported := rec.Body.Bytes()

	ed.Clear()
	rec = do(t, h, http.MethodPut, "/api/scene", exported)
	require.Equal(t, http.StatusOK, rec.Code)

	var st editor.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 1, st.Objects)
	assert.False(t, st.CanUndo)
}

func TestPutScene_Rejects(t *testing.T) {
	a, _ := newTestApi(t, false)
	h := a.Handler()

	rec := do(t, h, http.MethodPut, "/api/scene", []byte("{"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad := `{"version":"1.0.0","objects":{"a":{"id":"a","material":{"color":"nope"}}}}`
	rec = do(t, h, http.MethodPut, "/api/scene", []byte(bad))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPutScene_BodyTooLarge(t *testing.T) {
	a, ed := newTestApi(t, false)
	addBox(ed, "a")
	a.maxBody = 64
	h := a.Handler()

	body := `{"version":"1.0.0","objects":{},"metadata":{"name":"` + strings.Repeat("x", 256) + `"}}`
	rec := do(t, h, http.MethodPut, "/api/scene", []byte(body))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Len(t, ed.Objects(), 1)

	rec = do(t, h, http.MethodPut, "/api/settings", []byte(`{"gridSize":2,"transformMode":"`+strings.Repeat("r", 128)+`"}`))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUndoRedo(t *testing.T) {
	a, ed := newTestApi(t, false)
	addBox(ed, "a")
	h := a.Handler()

	rec := do(t, h, http.MethodPost, "/api/undo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st editor.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 0, st.Objects)
	assert.True(t, st.CanRedo)

	// Undo with nothing left is still a success
	rec = do(t, h, http.MethodPost, "/api/undo", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/redo", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 1, st.Objects)

	rec = do(t, h, http.MethodGet, "/api/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFrame(t *testing.T) {
	a, ed := newTestApi(t, false)
	addBox(ed, "a")
	require.NoError(t, ed.AddAnimation("a", scene.Animation{
		ID: "slide", Duration: 10, Enabled: true, AutoPlay: true,
		Keyframes: []scene.Keyframe{
			{Time: 0, Transform: &scene.TransformOverride{Position: &scene.Vector3{}}},
			{Time: 1, Transform: &scene.TransformOverride{Position: &scene.Vector3{X: 10}}},
		},
	}))
	h := a.Handler()

	rec := do(t, h, http.MethodGet, "/api/frame?t=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var f editor.Frame
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	s, found := f.Object("a")
	require.True(t, found)
	assert.Equal(t, 5.0, s.Transform.Position.X)

	rec = do(t, h, http.MethodGet, "/api/frame", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/frame?t=soon", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavedScenes(t *testing.T) {
	a, ed := newTestApi(t, true)
	addBox(ed, "a")
	h := a.Handler()

	rec := do(t, h, http.MethodPut, "/api/scenes/lobby", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/scenes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []storage.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "lobby", records[0].Name)

	ed.Clear()
	rec = do(t, h, http.MethodGet, "/api/scenes/lobby", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, found := ed.Object("a")
	assert.True(t, found)

	rec = do(t, h, http.MethodDelete, "/api/scenes/lobby", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/scenes/lobby", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSavedScenes_NoStore(t *testing.T) {
	a, _ := newTestApi(t, false)
	rec := do(t, a.Handler(), http.MethodGet, "/api/scenes", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStaticFiles(t *testing.T) {
	a, _ := newTestApi(t, false)
	rec := do(t, a.Handler(), http.MethodGet, "/index.html", nil)
	// FileServer redirects /index.html to /
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)

	rec = do(t, a.Handler(), http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "editor")
}
