package pollstate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statelab/pollstate"
)

func TestChannelSourceFeedsCell(t *testing.T) {
	cell := pollstate.NewCell("color", "red", nil)
	loop := pollstate.NewLoop(pollstate.Config{})
	require.NoError(t, loop.Attach(cell))

	ch := make(chan string, 2)
	src := pollstate.NewChannelSource(ch, cell.Set)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		src.Run(ctx)
	}()

	ch <- "blue"
	ch <- "green"

	// Both writes land in the pending slot before the tick; only the last
	// survives.
	require.Eventually(t, func() bool {
		return cell.Pending() == "green"
	}, time.Second, time.Millisecond)

	loop.Tick()
	assert.Equal(t, "green", cell.Value())
	assert.Equal(t, uint64(1), cell.Commits())

	cancel()
	<-done
}

func TestTimerSourceFeedsCell(t *testing.T) {
	cell := pollstate.NewCell("elapsed", 0, nil)
	loop := pollstate.NewLoop(pollstate.Config{})
	require.NoError(t, loop.Attach(cell))

	n := 0
	src := pollstate.NewTimerSource(nil, 2*time.Millisecond, func(time.Time) int {
		n++
		return n
	}, cell.Set)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		src.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return cell.Pending() > 0
	}, time.Second, time.Millisecond)

	loop.Tick()
	assert.Greater(t, cell.Value(), 0)

	cancel()
	<-done
}
