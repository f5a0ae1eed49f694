package pollstate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestLoopStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := NewLoop(Config{Interval: 5 * time.Millisecond})
	require.NoError(t, loop.Attach(NewCell("color", "red", nil)))

	require.NoError(t, loop.Start(context.Background()))
	assert.ErrorIs(t, loop.Start(context.Background()), ErrAlreadyStarted)

	require.NoError(t, loop.Stop())
	assert.ErrorIs(t, loop.Stop(), ErrNotStarted)
}

func TestLoopStopWaitsForGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := NewLoop(Config{Interval: time.Millisecond})
	require.NoError(t, loop.Start(context.Background()))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, loop.Stop())
	// goleak verifies the tick goroutine is gone.
}

func TestLoopRestart(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := NewLoop(Config{Interval: time.Millisecond})
	require.NoError(t, loop.Start(context.Background()))
	require.NoError(t, loop.Stop())
	require.NoError(t, loop.Start(context.Background()))
	require.NoError(t, loop.Stop())
}

func TestLoopContextCancelStopsTicking(t *testing.T) {
	loop := NewLoop(Config{Interval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, loop.Start(ctx))

	time.Sleep(10 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)

	after := loop.TickCount()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, loop.TickCount(), "loop kept ticking after context cancel")

	// Stop still cleans up loop state.
	require.NoError(t, loop.Stop())
}

func TestLoopCommitsOnTick(t *testing.T) {
	cell := NewCell("color", "red", nil)
	loop := NewLoop(Config{})
	require.NoError(t, loop.Attach(cell))

	cell.Set("blue")
	loop.Tick()

	assert.Equal(t, "blue", cell.Value())
	assert.Equal(t, uint64(1), loop.TickCount())
	assert.Equal(t, uint64(1), loop.TotalCommits())

	recs := loop.RecentCommits()
	require.Len(t, recs, 1)
	assert.Equal(t, "color", recs[0].Cell)
	assert.Equal(t, View("blue"), recs[0].View)
	assert.Equal(t, uint64(1), recs[0].Tick)
}

func TestLoopIdleTickRecordsNothing(t *testing.T) {
	cell := NewCell("color", "red", nil)
	loop := NewLoop(Config{})
	require.NoError(t, loop.Attach(cell))

	loop.Tick()
	loop.Tick()

	assert.Equal(t, uint64(2), loop.TickCount())
	assert.Zero(t, loop.TotalCommits())
	assert.Empty(t, loop.RecentCommits())
}

func TestLoopPollsCellsInAttachmentOrder(t *testing.T) {
	var order []string
	mk := func(name string) *Cell[string] {
		return NewCell(name, "", func(v string) View {
			order = append(order, name)
			return View(v)
		})
	}
	b, a := mk("b"), mk("a")

	loop := NewLoop(Config{})
	require.NoError(t, loop.Attach(b, a))

	b.Set("x")
	a.Set("y")
	loop.Tick()

	assert.Equal(t, []string{"b", "a"}, order)
}

func TestLoopDuplicateAttach(t *testing.T) {
	loop := NewLoop(Config{})
	require.NoError(t, loop.Attach(NewCell("color", "red", nil)))
	assert.Error(t, loop.Attach(NewCell("color", "blue", nil)))
}

func TestLoopCellLookup(t *testing.T) {
	cell := NewCell("color", "red", nil)
	loop := NewLoop(Config{})
	require.NoError(t, loop.Attach(cell))

	got, err := loop.Cell("color")
	require.NoError(t, err)
	assert.Equal(t, "color", got.Name())

	_, err = loop.Cell("absent")
	assert.Error(t, err)
}

func TestLoopRenderPanicDoesNotKillTick(t *testing.T) {
	panicky := NewCell("bad", 0, func(int) View { panic("render exploded") })
	healthy := NewCell("good", "red", nil)

	loop := NewLoop(Config{Logger: zap.NewNop()})
	require.NoError(t, loop.Attach(panicky, healthy))

	panicky.Set(1)
	healthy.Set("blue")
	loop.Tick()

	assert.Equal(t, "blue", healthy.Value(), "panic in one cell starved another")
	assert.Equal(t, uint64(1), loop.TickCount())

	// The loop survives and keeps committing on later ticks.
	healthy.Set("green")
	loop.Tick()
	assert.Equal(t, "green", healthy.Value())
}

func TestLoopPublishesCommits(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	_, ch := hub.Subscribe(4)

	cell := NewCell("color", "red", nil)
	loop := NewLoop(Config{Hub: hub})
	require.NoError(t, loop.Attach(cell))
	assert.Same(t, hub, loop.Hub())

	cell.Set("green")
	loop.Tick()

	select {
	case n := <-ch:
		assert.Equal(t, "color", n.Cell)
		assert.Equal(t, View("green"), n.View)
		assert.Equal(t, uint64(1), n.Tick)
	default:
		t.Fatal("no commit notice published")
	}
}

func TestLoopStatus(t *testing.T) {
	cell := NewCell("color", "red", nil)
	loop := NewLoop(Config{})
	require.NoError(t, loop.Attach(cell))

	cell.Set("green")
	loop.Tick()

	out := loop.Status()
	assert.Contains(t, out, "color")
	assert.Contains(t, out, "idle")
	assert.Contains(t, out, "green")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval: 25ms\njournal_size: 8\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25*time.Millisecond, cfg.Interval)
	assert.Equal(t, 8, cfg.JournalSize)
}
