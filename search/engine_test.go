package search

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *c4.Board {
	b, err := c4.ParseBoard(s)
	require.NoError(t, err)
	return b
}

// tick is a clock that advances by step every time it is read.
func tick(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func newTestEngine(depth int, pruning bool, tt int, opts ...Option) *Engine {
	conf := DefaultConfig()
	conf.MaxDepth = depth
	conf.Pruning = pruning
	conf.TimeLimit = NoTimeLimit
	conf.TTCapacity = tt
	return New(conf, opts...)
}

func TestEngine_EmptyBoard(t *testing.T) {
	for _, pruning := range []bool{true, false} {
		for _, tt := range []int{0, DefaultTTCapacity} {
			e := newTestEngine(4, pruning, tt)
			b := c4.NewBoard(c4.DefaultRows, c4.DefaultCols)
			res, err := e.Choose(context.Background(), b)
			require.NoError(t, err)
			assert.Equal(t, game.Single(3), res.Column, "pruning %t, tt %d", pruning, tt)
			assert.Equal(t, Score(6), res.Score, "pruning %t, tt %d", pruning, tt)
			assert.Equal(t, 4, res.Depth)
		}
	}
}

func TestEngine_BlocksOpenThree(t *testing.T) {
	b := mustParse(t, `
		. . . . . . .
		. . . . . . .
		. . . . . . .
		. . . . . . .
		. . . . . . .
		. X X X . . .
	`)
	for depth := 1; depth <= 4; depth++ {
		for _, pruning := range []bool{true, false} {
			e := newTestEngine(depth, pruning, DefaultTTCapacity)
			res, err := e.Choose(context.Background(), b)
			require.NoError(t, err)
			assert.Equal(t, game.Single(4), res.Column, "depth %d, pruning %t", depth, pruning)
			if depth == 1 {
				assert.Equal(t, Score(-120), res.Score)
			} else {
				// X still wins on the other side
				assert.True(t, res.Score.IsInf(-1), "depth %d: %v", depth, res.Score)
			}
		}
	}
}

func TestEngine_ImmediateWin(t *testing.T) {
	b := mustParse(t, `
		. . . . . . .
		. . . . . . .
		. . . . . . .
		. . . . . . .
		X X . . . . .
		O O O . . X X
	`)
	cases := []struct {
		pruning bool
		line    string
	}{
		{true, "IMMEDIATE | col=3 | val=inf (a=-inf, b=inf)"},
		{false, "IMMEDIATE | col=3 | val=inf (a=N/A, b=N/A)"},
	}
	for _, c := range cases {
		rec := NewRecorder()
		e := newTestEngine(3, c.pruning, DefaultTTCapacity, WithTracer(rec))
		res, err := e.Choose(context.Background(), b)
		require.NoError(t, err)
		assert.Equal(t, game.Single(3), res.Column)
		assert.True(t, res.Score.IsInf(1))
		assert.Equal(t, []Line{{Level: 0, Text: c.line}}, rec.Lines())
	}
}

func TestEngine_PruningAgreesWithMinimax(t *testing.T) {
	boards := []*c4.Board{c4.NewBoard(c4.DefaultRows, c4.DefaultCols)}
	b := c4.NewBoard(c4.DefaultRows, c4.DefaultCols)
	b.Drop(3, game.X)
	b.Drop(3, game.O)
	b.Drop(4, game.X)
	boards = append(boards, b)
	boards = append(boards, mustParse(t, `
		. . . . . . .
		. . . . . . .
		. . . O . . .
		. . X X . . .
		. O X O X . .
		X O X O O . .
	`))

	for i, b := range boards {
		for depth := 1; depth <= 4; depth++ {
			plainRec, abRec := NewRecorder(), NewRecorder()
			plain := newTestEngine(depth, false, 0, WithTracer(plainRec))
			ab := newTestEngine(depth, true, 0, WithTracer(abRec))

			pr, err := plain.Choose(context.Background(), b)
			require.NoError(t, err)
			ar, err := ab.Choose(context.Background(), b)
			require.NoError(t, err)

			assert.Equal(t, pr.Score, ar.Score, "board %d depth %d", i, depth)
			assert.LessOrEqual(t, ar.Nodes, pr.Nodes, "board %d depth %d", i, depth)
			assert.Equal(t, pr.Nodes, plainRec.NodeCount())
			assert.Equal(t, ar.Nodes, abRec.NodeCount())
			assert.Zero(t, plainRec.Count(Prune))
		}
	}
}

func TestEngine_ComparePosition(t *testing.T) {
	b := c4.NewBoard(c4.DefaultRows, c4.DefaultCols)
	b.Drop(3, game.X)
	b.Drop(3, game.O)
	b.Drop(4, game.X)

	ab := newTestEngine(3, true, DefaultTTCapacity)
	plain := newTestEngine(3, false, DefaultTTCapacity)
	ar, err := ab.Choose(context.Background(), b)
	require.NoError(t, err)
	pr, err := plain.Choose(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, Score(13), ar.Score)
	assert.Equal(t, game.Single(2), ar.Column)
	assert.Equal(t, ar.Score, pr.Score)
	assert.Equal(t, ar.Column, pr.Column)
	assert.Less(t, ar.Nodes, pr.Nodes)
}

func TestEngine_BoardUnchanged(t *testing.T) {
	b := mustParse(t, `
		. . . . . . .
		. . . . . . .
		. . . O . . .
		. . X X . . .
		. O X O X . .
		X O X O O . .
	`)
	before := append([]game.Colour(nil), b.Cells()...)
	e := newTestEngine(5, true, DefaultTTCapacity)
	_, err := e.Choose(context.Background(), b)
	require.NoError(t, err)
	if diff := cmp.Diff(before, b.Cells()); diff != "" {
		t.Errorf("search changed the board (-want +got):\n%s", diff)
	}
}

func TestEngine_NoLegalMove(t *testing.T) {
	b := c4.NewBoard(4, 4)
	p := game.X
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			b.Drop(col, p)
			p = p.Opponent()
		}
	}
	e := newTestEngine(3, true, 0)
	res, err := e.Choose(context.Background(), b)
	assert.Equal(t, ErrNoLegalMove, err)
	assert.True(t, res.Column.IsNoMove())
}

func TestEngine_ZeroTimeLimit(t *testing.T) {
	rec := NewRecorder()
	e := newTestEngine(4, true, 0, WithTracer(rec), WithClock(tick(time.Millisecond)))
	b := c4.NewBoard(c4.DefaultRows, c4.DefaultCols)
	res, err := e.ChooseMove(context.Background(), b, 4, true, 0)
	assert.Equal(t, ErrNoLegalMove, err)
	assert.True(t, res.Column.IsNoMove())
	assert.Zero(t, res.Depth)
	assert.Zero(t, rec.Len())
}

func TestEngine_TimeLimit(t *testing.T) {
	rec := NewRecorder()
	e := newTestEngine(8, true, 0, WithTracer(rec), WithClock(tick(time.Microsecond)))
	b := c4.NewBoard(c4.DefaultRows, c4.DefaultCols)
	before := b.Key()

	res, err := e.ChooseMove(context.Background(), b, 8, true, 2*time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Depth, 1)
	assert.Less(t, res.Depth, 8)
	assert.False(t, res.Column.IsNoMove())

	// only the last completed depth is traced
	assert.Equal(t, res.Nodes, rec.NodeCount())
	assert.Equal(t, before, b.Key())
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := newTestEngine(4, true, 0)
	res, err := e.Choose(ctx, c4.NewBoard(c4.DefaultRows, c4.DefaultCols))
	assert.Equal(t, context.Canceled, errors.Cause(err))
	assert.NotEqual(t, ErrNoLegalMove, errors.Cause(err))
	assert.True(t, res.Column.IsNoMove())
	assert.Zero(t, res.Depth)
}

func TestEngine_ContextDeadline(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Unix(0, 0))
	defer cancel()
	e := newTestEngine(4, true, 0)
	_, err := e.Choose(ctx, c4.NewBoard(c4.DefaultRows, c4.DefaultCols))
	assert.Equal(t, context.DeadlineExceeded, errors.Cause(err))
}

func TestEngine_TraceIsLastPass(t *testing.T) {
	rec := NewRecorder()
	e := newTestEngine(3, true, 0, WithTracer(rec))
	b := c4.NewBoard(c4.DefaultRows, c4.DefaultCols)
	res, err := e.Choose(context.Background(), b)
	require.NoError(t, err)

	evs := rec.Events()
	require.NotEmpty(t, evs)
	assert.Equal(t, Enter, evs[0].Kind)
	assert.Equal(t, 0, evs[0].Level)
	assert.True(t, evs[0].Maximizing)
	last := evs[len(evs)-1]
	assert.Equal(t, Exit, last.Kind)
	assert.Equal(t, res.Score, last.Value)

	var deepest int
	for _, ev := range evs {
		if ev.Level > deepest {
			deepest = ev.Level
		}
	}
	assert.Equal(t, 3, deepest)

	// a second search starts over
	_, err = e.Choose(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, len(evs), rec.Len())
}

func TestEngine_InvalidDepth(t *testing.T) {
	e := newTestEngine(3, true, 0)
	_, err := e.ChooseMove(context.Background(), c4.NewBoard(c4.DefaultRows, c4.DefaultCols), 0, true, NoTimeLimit)
	assert.Error(t, err)
}

func TestNew_InvalidConfig(t *testing.T) {
	conf := DefaultConfig()
	conf.MaxDepth = 0
	assert.Panics(t, func() { New(conf) })

	conf = DefaultConfig()
	conf.Player = game.NoPlayer
	assert.Panics(t, func() { New(conf) })
}

func TestEngine_SharedTable(t *testing.T) {
	tt, err := NewTranspositionTable(1 << 12)
	require.NoError(t, err)
	e := newTestEngine(3, true, 0, WithTable(tt))
	assert.Same(t, tt, e.Table())

	b := c4.NewBoard(c4.DefaultRows, c4.DefaultCols)
	first, err := e.Choose(context.Background(), b)
	require.NoError(t, err)
	assert.NotZero(t, tt.Len())

	second, err := e.Choose(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Column, second.Column)
	assert.Less(t, second.Nodes, first.Nodes)
}
