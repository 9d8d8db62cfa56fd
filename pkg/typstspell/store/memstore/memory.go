package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cognicore/typstspell/pkg/typstspell/internalerr"
	"github.com/cognicore/typstspell/pkg/typstspell/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu    sync.RWMutex
	words map[string]struct{}
	runs  map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		words: make(map[string]struct{}),
		runs:  make(map[string]store.Run),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// PersonalWords returns the personal dictionary, sorted.
func (s *Store) PersonalWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out, nil
}

// AddPersonalWords adds lowercase words; blanks are ignored.
func (s *Store) AddPersonalWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s.words[w] = struct{}{}
	}
	return nil
}

// RemovePersonalWord removes a word and reports whether it was present.
func (s *Store) RemovePersonalWord(ctx context.Context, word string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	word = strings.ToLower(strings.TrimSpace(word))
	if _, ok := s.words[word]; !ok {
		return false, nil
	}
	delete(s.words, word)
	return true, nil
}

// RecordRun stores a run keyed by ID.
func (s *Store) RecordRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		return fmt.Errorf("record run: %w: empty id", internalerr.ErrInvalidInput)
	}
	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, false, nil
	}
	return copyRun(r), true, nil
}

// RecentRuns returns the newest runs first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = store.DefaultRecentLimit
	}

	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, copyRun(r))
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CheckedAt.Equal(runs[j].CheckedAt) {
			return runs[i].CheckedAt.After(runs[j].CheckedAt)
		}
		return runs[i].ID > runs[j].ID
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func copyRun(r store.Run) store.Run {
	r.Unknown = append([]string(nil), r.Unknown...)
	return r
}
