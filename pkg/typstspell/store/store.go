package store

import (
	"context"
	"time"
)

// Store persists state that outlives a single check: the personal
// dictionary and the history of past runs.
type Store interface {
	Close() error

	// Personal dictionary
	PersonalWords(ctx context.Context) ([]string, error)
	AddPersonalWords(ctx context.Context, words []string) error
	RemovePersonalWord(ctx context.Context, word string) (bool, error)

	// Run history
	RecordRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	RecentRuns(ctx context.Context, limit int) ([]Run, error)
}

// Run is one recorded spell check.
type Run struct {
	ID        string // ULID, sortable by creation time
	Path      string
	Mode      string // "highlight" or "report"
	CheckedAt time.Time
	Words     int      // total tokens checked, duplicates included
	Unknown   []string // distinct unknown tokens, first-occurrence order
	Misses    int      // unknown occurrences, duplicates included
}

// DefaultRecentLimit is used when RecentRuns gets a non-positive limit.
const DefaultRecentLimit = 20
