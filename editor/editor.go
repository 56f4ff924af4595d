// Package editor holds the central scene state: the scene, its undo history
// and the animation clock. Every method is safe for concurrent use.
package editor

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/scenetx/animation"
	"github.com/matt-g-everett/scenetx/history"
	"github.com/matt-g-everett/scenetx/scene"
)

// ErrNotFound is returned when an edit names an object or animation that
// does not exist.
var ErrNotFound = errors.New("not found")

// Options configure a new Editor.
type Options struct {
	MaxHistory int
	ColorMode  animation.ColorMode
	Name       string
	// HoldPausedPose keeps showing the animated pose while paused.
	HoldPausedPose bool
}

// Status summarises the undo and playback state.
type Status struct {
	CanUndo    bool    `json:"canUndo"`
	CanRedo    bool    `json:"canRedo"`
	HistoryLen int     `json:"historyLen"`
	HistoryIdx int     `json:"historyIndex"`
	Playing    bool    `json:"playing"`
	Time       float64 `json:"time"`
	Objects    int     `json:"objects"`
}

// Editor owns a Scene and routes edits through a History.
type Editor struct {
	mu      sync.Mutex
	name    string
	scene   *scene.Scene
	history *history.History[*scene.Scene, scene.Command]
	interp  animation.Interpolator
	playing bool
	time    float64

	holdPausedPose bool
}

// New creates an Editor with an empty scene.
func New(opts Options) *Editor {
	e := new(Editor)
	e.name = opts.Name
	e.scene = scene.New()
	e.history = history.New[*scene.Scene, scene.Command](opts.MaxHistory)
	e.interp = animation.Interpolator{ColorMode: opts.ColorMode}
	e.holdPausedPose = opts.HoldPausedPose
	return e
}

// Execute applies c and records it for undo.
func (e *Editor) Execute(c scene.Command) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.execute(c)
}

func (e *Editor) execute(c scene.Command) {
	e.history.Execute(e.scene, c)
	log.Debug().Str("command", c.ID).Str("name", c.Name).Int("history", e.history.Len()).Msg("Executed")
}

// Undo reverts the most recent command. It returns false if there was
// nothing to undo.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	ok := e.history.Undo(e.scene)
	log.Debug().Bool("undone", ok).Int("index", e.history.Index()).Msg("Undo")
	return ok
}

// Redo reapplies the most recently undone command. It returns false if
// there was nothing to redo.
func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	ok := e.history.Redo(e.scene)
	log.Debug().Bool("redone", ok).Int("index", e.history.Index()).Msg("Redo")
	return ok
}

// CanUndo reports whether Undo would do anything.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

// CanRedo reports whether Redo would do anything.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// History returns the recorded commands, oldest first.
func (e *Editor) History() []scene.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Records()
}

// Status returns the undo and playback state.
func (e *Editor) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		CanUndo:    e.history.CanUndo(),
		CanRedo:    e.history.CanRedo(),
		HistoryLen: e.history.Len(),
		HistoryIdx: e.history.Index(),
		Playing:    e.playing,
		Time:       e.time,
		Objects:    e.scene.Len(),
	}
}

// AddObject adds o through the history and returns its id.
func (e *Editor) AddObject(o scene.Object) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.execute(scene.NewAddCommand(o))
	return o.ID
}

// Delete removes the listed objects through the history. It returns false
// without recording anything if none of them exist.
func (e *Editor) Delete(ids []string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.delete(ids)
}

func (e *Editor) delete(ids []string) bool {
	c := scene.NewDeleteCommand(e.scene, ids)
	if len(c.Delete.Objects) == 0 {
		return false
	}
	e.execute(c)
	return true
}

// DeleteSelected removes the selected objects.
func (e *Editor) DeleteSelected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.delete(e.scene.Selection())
}

// Duplicate copies the listed objects through the history and returns the
// new ids, which also become the selection.
func (e *Editor) Duplicate(ids []string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := scene.NewDuplicateCommand(e.scene, ids)
	if len(c.Add.Objects) == 0 {
		return nil
	}
	e.execute(c)
	return e.scene.Selection()
}

// Transform moves an object to t through the history.
func (e *Editor) Transform(id string, t scene.Transform) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, found := e.scene.Object(id)
	if !found {
		return fmt.Errorf("object %q: %w", id, ErrNotFound)
	}
	e.execute(scene.NewTransformCommand(id, o.Transform, t))
	return nil
}

// SetMaterial changes the material of an object through the history.
func (e *Editor) SetMaterial(id string, m scene.Material) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, found := e.scene.Object(id)
	if !found {
		return fmt.Errorf("object %q: %w", id, ErrNotFound)
	}
	e.execute(scene.NewMaterialCommand(id, o.Material, m))
	return nil
}

// AddAnimation appends an animation to an object.
func (e *Editor) AddAnimation(objectID string, a scene.Animation) error {
	return e.editAnimations(objectID, "Add Animation", func(anims []scene.Animation) ([]scene.Animation, bool) {
		return append(anims, a), true
	})
}

// UpdateAnimation replaces the animation with the same id.
func (e *Editor) UpdateAnimation(objectID string, a scene.Animation) error {
	return e.editAnimations(objectID, "Update Animation", func(anims []scene.Animation) ([]scene.Animation, bool) {
		i := slices.IndexFunc(anims, func(x scene.Animation) bool { return x.ID == a.ID })
		if i < 0 {
			return nil, false
		}
		anims[i] = a
		return anims, true
	})
}

// RemoveAnimation removes an animation by id.
func (e *Editor) RemoveAnimation(objectID, animationID string) error {
	return e.editAnimations(objectID, "Remove Animation", func(anims []scene.Animation) ([]scene.Animation, bool) {
		n := len(anims)
		anims = slices.DeleteFunc(anims, func(x scene.Animation) bool { return x.ID == animationID })
		return anims, len(anims) != n
	})
}

func (e *Editor) editAnimations(objectID, name string, edit func([]scene.Animation) ([]scene.Animation, bool)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, found := e.scene.Object(objectID)
	if !found {
		return fmt.Errorf("object %q: %w", objectID, ErrNotFound)
	}
	before := scene.CloneAnimations(o.Animations)
	after, ok := edit(o.Animations)
	if !ok {
		return fmt.Errorf("animation on object %q: %w", objectID, ErrNotFound)
	}
	e.execute(scene.NewAnimationsCommand(name, objectID, before, after))
	return nil
}

// Select replaces the selection.
func (e *Editor) Select(ids []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene.Select(ids)
}

// SelectAll selects every object.
func (e *Editor) SelectAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene.SelectAll()
}

// Selection returns the selected ids.
func (e *Editor) Selection() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Selection()
}

// Object returns a copy of an object.
func (e *Editor) Object(id string) (scene.Object, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Object(id)
}

// Objects returns copies of all objects ordered by id.
func (e *Editor) Objects() []scene.Object {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Objects()
}

// Export snapshots the scene as a Document.
func (e *Editor) Export(now time.Time) scene.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Export(e.name, now)
}

// Import replaces the scene with doc and clears the history.
func (e *Editor) Import(doc scene.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene.Import(doc)
	e.history.Clear()
	if doc.Metadata.Name != "" {
		e.name = doc.Metadata.Name
	}
	log.Info().Int("objects", e.scene.Len()).Str("name", e.name).Msg("Imported scene")
}

// Clear empties the scene and the history.
func (e *Editor) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene.Clear()
	e.history.Clear()
}
