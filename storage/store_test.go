package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/scenetx/scene"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := OpenStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func sampleDocument(n int) scene.Document {
	s := scene.New()
	for i := 0; i < n; i++ {
		o := scene.NewObject(scene.TypeSphere, "")
		o.Transform.Position.X = float64(i)
		s.AddObject(o)
	}
	return s.Export("sample", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
}

func TestOpenStore_CreatesDatabase(t *testing.T) {
	_, dir := openTestStore(t)
	_, err := os.Stat(filepath.Join(dir, "scenes.db"))
	assert.NoError(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	s, _ := openTestStore(t)
	doc := sampleDocument(3)

	rec, err := s.Save("lobby", doc)
	require.NoError(t, err)
	assert.Equal(t, "lobby", rec.Name)
	assert.Equal(t, scene.DocumentVersion, rec.Version)
	assert.Equal(t, 3, rec.ObjectCount)
	assert.NotEmpty(t, rec.ID)

	loaded, err := s.Load("lobby")
	require.NoError(t, err)
	assert.Len(t, loaded.Objects, 3)
	for id, o := range doc.Objects {
		assert.Equal(t, o.Transform, loaded.Objects[id].Transform)
	}
	assert.Equal(t, "sample", loaded.Metadata.Name)
}

func TestSave_ReplacesExisting(t *testing.T) {
	s, _ := openTestStore(t)

	first, err := s.Save("lobby", sampleDocument(1))
	require.NoError(t, err)
	second, err := s.Save("lobby", sampleDocument(4))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 4, second.ObjectCount)

	records, err := s.List()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSave_RequiresName(t *testing.T) {
	s, _ := openTestStore(t)
	_, err := s.Save("", sampleDocument(1))
	assert.Error(t, err)
}

func TestList_OrderedByName(t *testing.T) {
	s, _ := openTestStore(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := s.Save(name, sampleDocument(1))
		require.NoError(t, err)
	}

	records, err := s.List()
	require.NoError(t, err)
	names := []string{}
	for _, r := range records {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestNotFound(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Load("missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Get("missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.True(t, errors.Is(s.Delete("missing"), ErrNotFound))
}

func TestDelete(t *testing.T) {
	s, _ := openTestStore(t)
	_, err := s.Save("lobby", sampleDocument(1))
	require.NoError(t, err)

	require.NoError(t, s.Delete("lobby"))
	_, err = s.Load("lobby")
	assert.True(t, errors.Is(err, ErrNotFound))
}
