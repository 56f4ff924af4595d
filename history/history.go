// Package history implements a bounded linear undo/redo stack.
package history

import "slices"

// DefaultMaxLen is the number of records kept when no limit is given.
const DefaultMaxLen = 100

// Command is a reversible edit applied to a state of type S.
type Command[S any] interface {
	Apply(state S)
	Invert(state S)
}

// History records executed commands and a cursor pointing at the record that
// the next Undo will invert. The cursor is -1 when there is nothing to undo.
//
// Executing after an undo drops every record past the cursor, so redo
// branches are lost rather than merged. Once more than MaxLen records are
// held the oldest is evicted.
//
// History does no locking. Callers on more than one goroutine must
// serialise access themselves.
type History[S any, C Command[S]] struct {
	idx    int
	recs   []C
	maxLen int
}

// New creates an empty History holding at most maxLen records. A maxLen of
// zero or less uses DefaultMaxLen.
func New[S any, C Command[S]](maxLen int) *History[S, C] {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &History[S, C]{idx: -1, maxLen: maxLen}
}

// Execute applies c to state and records it as the next record to undo.
func (h *History[S, C]) Execute(state S, c C) {
	c.Apply(state)

	clear(h.recs[h.idx+1:])
	h.recs = append(h.recs[:h.idx+1], c)
	if len(h.recs) > h.maxLen {
		var zero C
		h.recs[0] = zero
		h.recs = h.recs[1:]
	}
	h.idx = len(h.recs) - 1
}

// Undo inverts the record at the cursor and moves the cursor back. It
// returns false and does nothing if there is nothing to undo.
func (h *History[S, C]) Undo(state S) bool {
	if !h.CanUndo() {
		return false
	}
	h.recs[h.idx].Invert(state)
	h.idx--
	return true
}

// Redo moves the cursor forward and applies the record there. It returns
// false and does nothing if there is nothing to redo.
func (h *History[S, C]) Redo(state S) bool {
	if !h.CanRedo() {
		return false
	}
	h.idx++
	h.recs[h.idx].Apply(state)
	return true
}

// CanUndo reports whether a record is available to undo.
func (h *History[S, C]) CanUndo() bool {
	return h.idx >= 0
}

// CanRedo reports whether a record is available to redo.
func (h *History[S, C]) CanRedo() bool {
	return h.idx < len(h.recs)-1
}

// Len is the number of records held, including redoable ones.
func (h *History[S, C]) Len() int {
	return len(h.recs)
}

// Index is the cursor position.
func (h *History[S, C]) Index() int {
	return h.idx
}

// MaxLen is the record limit.
func (h *History[S, C]) MaxLen() int {
	return h.maxLen
}

// Records returns a copy of the held records, oldest first.
func (h *History[S, C]) Records() []C {
	return slices.Clone(h.recs)
}

// Clear drops every record.
func (h *History[S, C]) Clear() {
	h.recs = nil
	h.idx = -1
}
