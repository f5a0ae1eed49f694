package pollstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCellStartsIdle(t *testing.T) {
	c := NewCell("color", "red", nil)
	assert.Equal(t, "red", c.Value())
	assert.Equal(t, "red", c.Pending())
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, uint64(0), c.Commits())
	assert.Equal(t, View(""), c.LastView())
}

func TestCellSetLeavesValueUntouched(t *testing.T) {
	c := NewCell("color", "red", nil)
	c.Set("blue")
	assert.Equal(t, "red", c.Value(), "Set must not affect the committed value")
	assert.Equal(t, "blue", c.Pending())
	assert.Equal(t, PhaseDirty, c.Phase())
}

func TestCellPollCommitsAndRenders(t *testing.T) {
	var rendered []string
	c := NewCell("color", "red", func(v string) View {
		rendered = append(rendered, v)
		return View("color=" + v)
	})

	c.Set("blue")
	view, committed := c.Poll(1)
	require.True(t, committed)
	assert.Equal(t, View("color=blue"), view)
	assert.Equal(t, "blue", c.Value())
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, []string{"blue"}, rendered)
	assert.Equal(t, view, c.LastView())
}

func TestCellPollIdleDoesNotRender(t *testing.T) {
	calls := 0
	c := NewCell("color", "red", func(v string) View {
		calls++
		return View(v)
	})

	_, committed := c.Poll(1)
	assert.False(t, committed)
	assert.Zero(t, calls, "render must not run without a commit")
}

func TestCellSetSameValueNoCommit(t *testing.T) {
	calls := 0
	c := NewCell("color", "red", func(v string) View {
		calls++
		return View(v)
	})

	c.Set("red")
	_, committed := c.Poll(1)
	assert.False(t, committed)
	assert.Zero(t, calls)
	assert.Equal(t, uint64(0), c.Commits())
}

func TestCellLastWriteWins(t *testing.T) {
	var rendered []string
	c := NewCell("color", "red", func(v string) View {
		rendered = append(rendered, v)
		return View(v)
	})

	c.Set("blue")
	c.Set("green")
	view, committed := c.Poll(1)
	require.True(t, committed)
	assert.Equal(t, View("green"), view)
	assert.Equal(t, []string{"green"}, rendered, "render must run exactly once, with the last value")
}

func TestCellDefaultRenderFormats(t *testing.T) {
	c := NewCell("counter", 0, nil)
	c.Set(42)
	view, committed := c.Poll(1)
	require.True(t, committed)
	assert.Equal(t, View("42"), view)
}

func TestCellStructValuesUseDeepEquality(t *testing.T) {
	type point struct{ X, Y int }
	c := NewCell("cursor", point{1, 2}, nil)

	c.Set(point{1, 2}) // Deep-equal: no divergence.
	assert.Equal(t, PhaseIdle, c.Phase())

	c.Set(point{3, 4})
	assert.Equal(t, PhaseDirty, c.Phase())
}

func TestCellWithEqual(t *testing.T) {
	// Treat values as equal mod 10.
	c := NewCell("bucket", 5, nil, WithEqual(func(a, b int) bool {
		return a%10 == b%10
	}))

	c.Set(15)
	assert.Equal(t, PhaseIdle, c.Phase())

	c.Set(7)
	assert.Equal(t, PhaseDirty, c.Phase())
}
