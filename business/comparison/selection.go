package comparison

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"skillCompare/domain"
	"skillCompare/pkg/logger"
)

// ErrCapacityExceeded is returned by Add when the selection already holds
// domain.MaxCompareCourses entries. State is left untouched.
var ErrCapacityExceeded = errors.New("you can compare up to 3 courses at a time")

const persistTimeout = 3 * time.Second

// Store persists a visitor's selection entries. The open/closed flag is
// never persisted.
type Store interface {
	Load(ctx context.Context, visitorID string) ([]domain.ComparisonEntry, error)
	Save(ctx context.Context, visitorID string, entries []domain.ComparisonEntry) error
}

// Selection is one visitor's in-progress comparison set: at most
// domain.MaxCompareCourses entries, unique by ID, in insertion order.
// Every mutation is written through to the Store before it returns.
type Selection struct {
	mu        sync.Mutex
	visitorID string
	entries   []domain.ComparisonEntry
	open      bool
	store     Store
}

// NewSelection starts a closed selection from previously persisted entries.
func NewSelection(visitorID string, entries []domain.ComparisonEntry, store Store) *Selection {
	return &Selection{
		visitorID: visitorID,
		entries:   normalizeEntries(entries),
		store:     store,
	}
}

// Add appends entry and opens the bar. Adding an id that is already
// present is a no-op and reports added=false.
func (s *Selection) Add(ctx context.Context, entry domain.ComparisonEntry) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(entry.ID) >= 0 {
		return false, nil
	}

	if len(s.entries) >= domain.MaxCompareCourses {
		return false, ErrCapacityExceeded
	}

	next := make([]domain.ComparisonEntry, 0, len(s.entries)+1)
	next = append(next, s.entries...)
	s.entries = append(next, entry)
	s.open = true

	s.persist(ctx)
	return true, nil
}

// Remove drops the entry with id. Emptying the selection closes the bar.
func (s *Selection) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return
	}

	next := make([]domain.ComparisonEntry, 0, len(s.entries)-1)
	next = append(next, s.entries[:idx]...)
	s.entries = append(next, s.entries[idx+1:]...)
	if len(s.entries) == 0 {
		s.open = false
	}

	s.persist(ctx)
}

func (s *Selection) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.open = false

	s.persist(ctx)
}

func (s *Selection) SetVisible(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = open
}

func (s *Selection) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.indexOf(id) >= 0
}

func (s *Selection) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.open
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Entries returns a copy of the entries in display order.
func (s *Selection) Entries() []domain.ComparisonEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.entries)
}

func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.ID
	}
	return ids
}

// Snapshot reads entries and the open flag under one lock.
func (s *Selection) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses := slices.Clone(s.entries)
	if courses == nil {
		courses = []domain.ComparisonEntry{}
	}

	return State{
		Courses: courses,
		Open:    s.open,
		Count:   len(courses),
		Max:     domain.MaxCompareCourses,
	}
}

func (s *Selection) indexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with s.mu held. Failures are logged and
// swallowed; the in-memory state stays authoritative.
func (s *Selection) persist(ctx context.Context) {
	if s.store == nil {
		return
	}

	// a caller that has gone away must not lose the write
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := s.store.Save(ctx, s.visitorID, slices.Clone(s.entries)); err != nil {
		logger.Warn("failed to persist comparison selection", "visitor_id", s.visitorID, err)
	}
}

// normalizeEntries drops blank and duplicate ids and caps the length,
// keeping the first occurrence of each id.
func normalizeEntries(entries []domain.ComparisonEntry) []domain.ComparisonEntry {
	if len(entries) == 0 {
		return nil
	}

	out := make([]domain.ComparisonEntry, 0, domain.MaxCompareCourses)
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
		if len(out) == domain.MaxCompareCourses {
			break
		}
	}
	return out
}
