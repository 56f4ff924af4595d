package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	value int
	log   []string
}

type add struct {
	name string
	n    int
}

func (a add) Apply(c *counter) {
	c.value += a.n
	c.log = append(c.log, "apply "+a.name)
}

func (a add) Invert(c *counter) {
	c.value -= a.n
	c.log = append(c.log, "invert "+a.name)
}

func newCounterHistory(maxLen int) *History[*counter, add] {
	return New[*counter, add](maxLen)
}

func TestNew_Defaults(t *testing.T) {
	h := newCounterHistory(0)
	assert.Equal(t, DefaultMaxLen, h.MaxLen())
	assert.Equal(t, -1, h.Index())
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestExecute_AppliesImmediately(t *testing.T) {
	h := newCounterHistory(10)
	c := &counter{}

	h.Execute(c, add{"a", 3})

	assert.Equal(t, 3, c.value)
	assert.Equal(t, []string{"apply a"}, c.log)
	assert.Equal(t, 0, h.Index())
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	h := newCounterHistory(10)
	c := &counter{}

	for i := 1; i <= 5; i++ {
		h.Execute(c, add{"x", i})
	}
	require.Equal(t, 15, c.value)

	for i := 0; i < 5; i++ {
		require.True(t, h.Undo(c))
	}
	assert.Equal(t, 0, c.value)
	assert.Equal(t, -1, h.Index())
	assert.False(t, h.CanUndo())
	assert.True(t, h.CanRedo())

	for i := 0; i < 5; i++ {
		require.True(t, h.Redo(c))
	}
	assert.Equal(t, 15, c.value)
	assert.False(t, h.CanRedo())
}

func TestUndo_NothingToUndoIsNoop(t *testing.T) {
	h := newCounterHistory(10)
	c := &counter{value: 7}

	assert.False(t, h.Undo(c))
	assert.Equal(t, 7, c.value)
	assert.Equal(t, -1, h.Index())
	assert.Empty(t, c.log)

	h.Execute(c, add{"a", 1})
	require.True(t, h.Undo(c))
	assert.False(t, h.Undo(c))
	assert.Equal(t, 7, c.value)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, -1, h.Index())
}

func TestRedo_AtEndIsNoop(t *testing.T) {
	h := newCounterHistory(10)
	c := &counter{}
	h.Execute(c, add{"a", 1})

	assert.False(t, h.Redo(c))
	assert.Equal(t, 1, c.value)
	assert.Equal(t, 0, h.Index())
}

func TestExecute_AfterUndoDropsRedoBranch(t *testing.T) {
	h := newCounterHistory(10)
	c := &counter{}

	h.Execute(c, add{"a", 1})
	h.Execute(c, add{"b", 10})
	h.Execute(c, add{"c", 100})
	require.True(t, h.Undo(c))
	require.True(t, h.Undo(c))
	require.Equal(t, 1, c.value)

	h.Execute(c, add{"d", 1000})

	assert.Equal(t, 1001, c.value)
	assert.Equal(t, 2, h.Len())
	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo(c))
	assert.Equal(t, 1001, c.value)

	names := []string{}
	for _, r := range h.Records() {
		names = append(names, r.name)
	}
	assert.Equal(t, []string{"a", "d"}, names)
}

func TestExecute_AfterUndoReleasesDroppedRecords(t *testing.T) {
	h := newCounterHistory(10)
	c := &counter{}

	h.Execute(c, add{"a", 1})
	h.Execute(c, add{"b", 1})
	h.Execute(c, add{"c", 1})
	require.True(t, h.Undo(c))
	require.True(t, h.Undo(c))

	h.Execute(c, add{"d", 1})

	// The slots past len still share the backing array
	tail := h.recs[len(h.recs):cap(h.recs)]
	require.NotEmpty(t, tail)
	for _, r := range tail {
		assert.Equal(t, add{}, r)
	}
}

func TestExecute_EvictsOldest(t *testing.T) {
	h := newCounterHistory(DefaultMaxLen)
	c := &counter{}

	for i := 0; i < DefaultMaxLen+5; i++ {
		h.Execute(c, add{"x", 1})
		assert.LessOrEqual(t, h.Len(), DefaultMaxLen)
	}
	assert.Equal(t, DefaultMaxLen, h.Len())
	assert.Equal(t, DefaultMaxLen-1, h.Index())

	undone := 0
	for h.Undo(c) {
		undone++
	}
	assert.Equal(t, DefaultMaxLen, undone)
	// The five evicted records can no longer be undone.
	assert.Equal(t, 5, c.value)
}

func TestExecute_EvictionAfterUndo(t *testing.T) {
	h := newCounterHistory(3)
	c := &counter{}

	h.Execute(c, add{"a", 1})
	h.Execute(c, add{"b", 1})
	h.Execute(c, add{"c", 1})
	require.True(t, h.Undo(c))
	h.Execute(c, add{"d", 1})
	h.Execute(c, add{"e", 1})

	names := []string{}
	for _, r := range h.Records() {
		names = append(names, r.name)
	}
	assert.Equal(t, []string{"b", "d", "e"}, names)
	assert.Equal(t, 2, h.Index())
}

func TestClear(t *testing.T) {
	h := newCounterHistory(10)
	c := &counter{}
	h.Execute(c, add{"a", 1})
	h.Execute(c, add{"b", 1})
	h.Undo(c)

	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Index())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, 1, c.value)
}
