// Package primitives provides the foundational data structures for the
// polling-based reactivity engine: the two-slot value pair, the Idle/Dirty
// phase, and loop configuration.
//
// The package stays close to the standard library (yaml only, for config
// files). Third-party collaborators live in extensibility and production.
//
// Core invariants:
// - Pending is overwritten on every Set (last-write-wins, never queued)
// - Current changes only through Commit
// - Thread-safe slots (Mutex); the commit step is atomic w.r.t. Set
package primitives
