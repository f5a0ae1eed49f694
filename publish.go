package pollstate

import "github.com/statelab/pollstate/internal/production"

// Hub fans commit notices out to subscriber channels. Attach one via
// Config.Hub; Publish never blocks the poll loop (slow subscribers drop).
type Hub = production.Hub

// CommitNotice is delivered to hub subscribers after each commit.
type CommitNotice = production.CommitNotice

// NewHub creates an empty commit hub.
func NewHub() *Hub {
	return production.NewHub()
}
