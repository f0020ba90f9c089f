package search

import (
	"github.com/gorgonia/connect4/game"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// DefaultTTCapacity is the number of entries a transposition table keeps before evicting.
const DefaultTTCapacity = 1 << 20

// Bound says how a stored value relates to the true minimax value of the position.
type Bound uint8

const (
	Exact Bound = iota
	Lower       // the true value is at least Value (the search failed high)
	Upper       // the true value is at most Value (the search failed low)
)

// Key identifies a search result. Results are only valid for the exact depth and side
// they were computed for.
type Key struct {
	Position   string // see (*c4.Board).Key
	Depth      int
	Maximizing bool
	Player     game.Player // the maximizing player
}

// Entry is a stored search result. Move is -1 when there is no move.
type Entry struct {
	Value Score
	Move  int
	Bound Bound
}

// usable reports whether e answers a search of the window (alpha, beta).
func (e Entry) usable(alpha, beta Score) bool {
	switch e.Bound {
	case Lower:
		return e.Value >= beta
	case Upper:
		return e.Value <= alpha
	}
	return true
}

// TTStats are counters of a TranspositionTable since creation or the last Purge.
type TTStats struct {
	Hits, Misses, Stores, Evictions int
}

// TranspositionTable is a bounded cache of search results. It is owned by the caller,
// which decides when to Purge it. It is not safe for concurrent use by several engines
// that write to it.
type TranspositionTable struct {
	cache *lru.Cache[Key, Entry]
	stats TTStats
}

// NewTranspositionTable creates a table holding at most capacity entries. The least
// recently used entry is evicted when it is full.
func NewTranspositionTable(capacity int) (*TranspositionTable, error) {
	cache, err := lru.New[Key, Entry](capacity)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to create a transposition table of capacity %d", capacity)
	}
	return &TranspositionTable{cache: cache}, nil
}

func (t *TranspositionTable) Lookup(k Key) (Entry, bool) {
	e, ok := t.cache.Get(k)
	if ok {
		t.stats.Hits++
	} else {
		t.stats.Misses++
	}
	return e, ok
}

func (t *TranspositionTable) Store(k Key, e Entry) {
	t.stats.Stores++
	if t.cache.Add(k, e) {
		t.stats.Evictions++
	}
}

func (t *TranspositionTable) Len() int { return t.cache.Len() }

func (t *TranspositionTable) Stats() TTStats { return t.stats }

// Purge removes all entries and resets the counters.
func (t *TranspositionTable) Purge() {
	t.cache.Purge()
	t.stats = TTStats{}
}
