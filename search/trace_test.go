package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_String(t *testing.T) {
	cases := []struct {
		ev       Event
		expected string
	}{
		{Event{Kind: Enter, Column: noColumn, Maximizing: true, Alpha: NegInf(), Beta: Inf(), Bounded: true},
			"ENTER | col=None | val=MAX (a=-inf, b=inf)"},
		{Event{Kind: Enter, Level: 1, Column: 3, Alpha: 6, Beta: Inf(), Bounded: true},
			"ENTER | col=3 | val=MIN (a=6, b=inf)"},
		{Event{Kind: Leaf, Level: 2, Column: 0, Value: -12.5},
			"LEAF | col=0 | val=-12.5 (a=N/A, b=N/A)"},
		{Event{Kind: Terminal, Column: 4, Value: NegInf(), Alpha: 1, Beta: 2, Bounded: true},
			"TERMINAL | col=4 | val=-inf (a=1, b=2)"},
		{Event{Kind: CacheHit, Column: 6, Value: 13},
			"TT-HIT | col=6 | val=13 (a=N/A, b=N/A)"},
		{Event{Kind: Child, Column: 2, Value: 5, Alpha: NegInf(), Beta: Inf(), Bounded: true},
			"child | col=2 | val=5 (a=-inf, b=inf)"},
		{Event{Kind: Exit, Column: noColumn, Value: 6},
			"EXIT | col=None | val=6 (a=N/A, b=N/A)"},
		{Event{Kind: Prune, Column: noColumn, Alpha: 6, Beta: 3, Bounded: true},
			"PRUNED | a=6 | b=3"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, c.ev.String())
	}
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
}

func TestEventKind_IsNode(t *testing.T) {
	for _, k := range []EventKind{CacheHit, Terminal, Leaf, Immediate, Enter} {
		assert.True(t, k.IsNode(), "%v", k)
	}
	for _, k := range []EventKind{Child, Prune, Exit} {
		assert.False(t, k.IsNode(), "%v", k)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Record(Event{Kind: Enter, Column: noColumn, Maximizing: true})
	r.Record(Event{Kind: Leaf, Level: 1, Column: 3, Value: 6})
	r.Record(Event{Kind: Child, Level: 1, Column: 3, Value: 6})
	r.Record(Event{Kind: Exit, Column: noColumn, Value: 6})

	assert.Equal(t, 4, r.Len())
	assert.Equal(t, 2, r.NodeCount())
	assert.Equal(t, 1, r.Count(Leaf))
	assert.Equal(t, Line{Level: 1, Text: "LEAF | col=3 | val=6 (a=N/A, b=N/A)"}, r.Lines()[1])

	evs := r.Events()
	evs[0].Kind = Prune
	assert.Equal(t, Enter, r.Events()[0].Kind, "Events returns a copy")

	r.Clear()
	assert.Zero(t, r.Len())
}

func TestScore_String(t *testing.T) {
	assert.Equal(t, "inf", Inf().String())
	assert.Equal(t, "-inf", NegInf().String())
	assert.Equal(t, "0", Score(0).String())
	assert.Equal(t, "-120", Score(-120).String())
	assert.Equal(t, "0.5", Score(0.5).String())
	assert.True(t, Inf().IsInf(0))
	assert.False(t, Score(1e30).IsInf(0))
}
