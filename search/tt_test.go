package search

import (
	"testing"

	"github.com/gorgonia/connect4/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTable(t *testing.T) {
	tt, err := NewTranspositionTable(2)
	require.NoError(t, err)

	k1 := Key{Position: "a", Depth: 1, Maximizing: true, Player: game.O}
	k2 := Key{Position: "a", Depth: 2, Maximizing: true, Player: game.O}
	k3 := Key{Position: "a", Depth: 1, Maximizing: false, Player: game.O}

	_, ok := tt.Lookup(k1)
	assert.False(t, ok)

	tt.Store(k1, Entry{Value: 5, Move: 3})
	tt.Store(k2, Entry{Value: 7, Move: 2})
	e, ok := tt.Lookup(k1)
	require.True(t, ok)
	assert.Equal(t, Entry{Value: 5, Move: 3}, e)

	// k2 is now the least recently used
	tt.Store(k3, Entry{Value: -1, Move: noColumn})
	_, ok = tt.Lookup(k2)
	assert.False(t, ok)
	assert.Equal(t, 2, tt.Len())
	assert.Equal(t, TTStats{Hits: 1, Misses: 2, Stores: 3, Evictions: 1}, tt.Stats())

	tt.Purge()
	assert.Zero(t, tt.Len())
	assert.Equal(t, TTStats{}, tt.Stats())
}

func TestNewTranspositionTable_Capacity(t *testing.T) {
	_, err := NewTranspositionTable(0)
	assert.Error(t, err)
}

func TestEntry_usable(t *testing.T) {
	cases := []struct {
		e           Entry
		alpha, beta Score
		usable      bool
	}{
		{Entry{Value: 3, Bound: Exact}, 5, 10, true},
		{Entry{Value: 12, Bound: Lower}, 5, 10, true},
		{Entry{Value: 7, Bound: Lower}, 5, 10, false},
		{Entry{Value: 4, Bound: Upper}, 5, 10, true},
		{Entry{Value: 7, Bound: Upper}, 5, 10, false},
		{Entry{Value: 7, Bound: Upper}, NegInf(), Inf(), false},
	}
	for i, c := range cases {
		assert.Equal(t, c.usable, c.e.usable(c.alpha, c.beta), "case %d", i)
	}
}

func TestEngine_boundOf(t *testing.T) {
	e := &Engine{pruning: true}
	assert.Equal(t, Upper, e.boundOf(2, 2, 8))
	assert.Equal(t, Lower, e.boundOf(8, 2, 8))
	assert.Equal(t, Exact, e.boundOf(5, 2, 8))
	e.pruning = false
	assert.Equal(t, Exact, e.boundOf(2, 2, 8))
}
