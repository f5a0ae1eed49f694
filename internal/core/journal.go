package core

import "sync"

// Journal is a bounded, in-memory record of recent commits. When full, the
// oldest record is evicted. Safe for concurrent use.
type Journal struct {
	mu       sync.Mutex
	records  []CommitRecord
	capacity int
	total    uint64
}

// NewJournal creates a journal retaining at most capacity records.
// A non-positive capacity disables retention (Record still counts).
func NewJournal(capacity int) *Journal {
	return &Journal{capacity: capacity}
}

// Record appends a commit record, evicting the oldest when at capacity.
func (j *Journal) Record(rec CommitRecord) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.total++
	if j.capacity <= 0 {
		return
	}
	if len(j.records) == j.capacity {
		copy(j.records, j.records[1:])
		j.records[len(j.records)-1] = rec
		return
	}
	j.records = append(j.records, rec)
}

// Recent returns a copy of the retained records, oldest first.
func (j *Journal) Recent() []CommitRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]CommitRecord, len(j.records))
	copy(out, j.records)
	return out
}

// Total returns the number of commits recorded over the journal's lifetime,
// including evicted ones.
func (j *Journal) Total() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.total
}

// Last returns the most recent record, if any.
func (j *Journal) Last() (CommitRecord, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.records) == 0 {
		return CommitRecord{}, false
	}
	return j.records[len(j.records)-1], true
}
