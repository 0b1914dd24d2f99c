// Package eviction is an external collaborator that removes aircraft from
// the state aggregator once they have gone stale. It never touches the CPR
// scratch or reference state, which spec.md requires to survive for the
// lifetime of the core regardless of eviction.
package eviction

import (
	"time"

	"github.com/patrickmn/go-cache"

	"jet1090/internal/aggregator"
	"jet1090/internal/modes"
)

// Tracker watches a *aggregator.StateMap and forgets aircraft that have not
// produced an update within ttl. It holds no position or protocol state of
// its own; the cache entry is a sentinel marking "still alive".
type Tracker struct {
	states *aggregator.StateMap
	seen   *cache.Cache
}

// NewTracker starts tracking aircraft against states, evicting any ICAO
// that goes ttl without a Touch call. cleanupInterval controls how often
// go-cache sweeps for expired entries; it does not need to match ttl.
func NewTracker(states *aggregator.StateMap, ttl, cleanupInterval time.Duration) *Tracker {
	t := &Tracker{
		states: states,
		seen:   cache.New(ttl, cleanupInterval),
	}
	t.seen.OnEvicted(func(icao string, _ interface{}) {
		t.states.Remove(modes.ICAOFromHex(icao))
	})
	return t
}

// Touch marks icao as freshly seen, resetting its eviction timer.
func (t *Tracker) Touch(icao modes.ICAO) {
	t.seen.SetDefault(icao.String(), struct{}{})
}

// Len reports how many aircraft are currently tracked as live.
func (t *Tracker) Len() int {
	return t.seen.ItemCount()
}

// Close stops the underlying cache's janitor goroutine.
func (t *Tracker) Close() {
	// go-cache's janitor goroutine is stopped automatically once the
	// *cache.Cache value is garbage collected (it holds only a weak
	// finalizer-driven reference); nothing further to release here.
}
