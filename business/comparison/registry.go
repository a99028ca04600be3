package comparison

import (
	"context"
	"sync"
	"time"

	"skillCompare/pkg/logger"
	"skillCompare/pkg/metrics"
)

const sweepInterval = time.Minute

type liveSelection struct {
	sel      *Selection
	lastUsed time.Time
}

// Registry holds the live Selection of every active visitor. A visitor's
// selection is hydrated from the Store on first use (bar closed) and
// dropped after idleTTL without access; the next access rehydrates it.
type Registry struct {
	mu        sync.Mutex
	store     Store
	idleTTL   time.Duration
	now       func() time.Time
	live      map[string]*liveSelection
	lastSweep time.Time
}

func NewRegistry(store Store, idleTTL time.Duration) *Registry {
	return &Registry{
		store:   store,
		idleTTL: idleTTL,
		now:     time.Now,
		live:    make(map[string]*liveSelection),
	}
}

// Get returns the visitor's selection. A Store load failure yields an
// empty selection.
func (r *Registry) Get(ctx context.Context, visitorID string) *Selection {
	now := r.now()

	r.mu.Lock()
	r.sweepLocked(now)
	if ls, ok := r.live[visitorID]; ok {
		ls.lastUsed = now
		r.mu.Unlock()
		return ls.sel
	}
	r.mu.Unlock()

	entries, err := r.store.Load(ctx, visitorID)
	if err != nil {
		logger.Warn("failed to load comparison selection", "visitor_id", visitorID, err)
		entries = nil
	}
	sel := NewSelection(visitorID, entries, r.store)

	r.mu.Lock()
	defer r.mu.Unlock()

	// another request for the same visitor may have won the race
	if ls, ok := r.live[visitorID]; ok {
		ls.lastUsed = now
		return ls.sel
	}
	r.live[visitorID] = &liveSelection{sel: sel, lastUsed: now}
	metrics.ComparisonLiveSelections.Set(float64(len(r.live)))

	return sel
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

func (r *Registry) sweepLocked(now time.Time) {
	if r.idleTTL <= 0 || now.Sub(r.lastSweep) < sweepInterval {
		return
	}
	r.lastSweep = now

	for id, ls := range r.live {
		if now.Sub(ls.lastUsed) > r.idleTTL {
			delete(r.live, id)
		}
	}
	metrics.ComparisonLiveSelections.Set(float64(len(r.live)))
}
