package search

import (
	"context"
	"fmt"
	"time"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrNoLegalMove is returned when the board is full, or when not even a one-ply search
// completed within the time limit. A search stopped by its context returns the context's
// error instead.
var ErrNoLegalMove = errors.New("no legal move")

const noColumn = -1

// Result is the outcome of a search.
type Result struct {
	Score   Score
	Column  game.Single // game.NoMove when no move was chosen
	Depth   int         // deepest depth that completed
	Nodes   int         // positions visited by that depth's pass
	Elapsed time.Duration
}

// Option configures an Engine.
type Option func(e *Engine)

// WithTable makes the engine memoize into tt. The caller owns it, and decides when to Purge it.
func WithTable(tt *TranspositionTable) Option {
	return func(e *Engine) { e.tt = tt }
}

// WithTracer makes the engine record every decision point into t.
func WithTracer(t Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithLogger makes the engine log one event per completed depth, and one when a search
// is cut short.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock replaces time.Now. Deadlines are computed and checked with it.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine is a depth-limited minimax searcher, with optional alpha-beta pruning.
//
// An Engine searches one board at a time and is not safe for concurrent use. The board
// is explored in place: every piece dropped during a search is taken back before the
// search returns.
type Engine struct {
	Config
	eval   Evaluator
	tt     *TranspositionTable
	tracer Tracer
	logger zerolog.Logger
	now    func() time.Time

	// per search
	ctx      context.Context
	deadline time.Time
	bounded  bool
	pruning  bool
	nodes    int
	pass     []Event // events of the pass in progress
	tracing  bool

	lumberjack
}

// New creates an engine. Unless a table is passed in with WithTable, the engine creates
// one of conf.TTCapacity entries, and keeps it across searches.
func New(conf Config, opts ...Option) *Engine {
	if !conf.IsValid() {
		panic(fmt.Sprintf("search config is not valid: %+v", conf))
	}
	e := &Engine{
		Config:     conf,
		eval:       Evaluator{conf.Weights},
		tracer:     NopTracer{},
		logger:     zerolog.Nop(),
		now:        time.Now,
		lumberjack: makeLumberJack(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tt == nil && conf.TTCapacity > 0 {
		tt, err := NewTranspositionTable(conf.TTCapacity)
		if err != nil {
			panic(fmt.Sprintf("%+v", err))
		}
		e.tt = tt
	}
	if e.tracer == nil {
		e.tracer = NopTracer{}
	}
	_, nop := e.tracer.(NopTracer)
	e.tracing = !nop
	return e
}

// Table returns the transposition table in use, if any.
func (e *Engine) Table() *TranspositionTable { return e.tt }

// Tracer returns the tracer in use.
func (e *Engine) Tracer() Tracer { return e.tracer }

// Choose searches with the engine's configured depth, mode and time limit.
func (e *Engine) Choose(ctx context.Context, b *c4.Board) (Result, error) {
	return e.ChooseMove(ctx, b, e.MaxDepth, e.Pruning, e.TimeLimit)
}

// ChooseMove finds the best column for the engine's player, who is to move on b.
//
// It deepens from 1 to maxDepth, and returns the result of the deepest depth that
// completed before the time limit (or the context) ran out. Only that depth's trace
// reaches the tracer. A time limit of 0 has already run out.
func (e *Engine) ChooseMove(ctx context.Context, b *c4.Board, maxDepth int, pruning bool, timeLimit time.Duration) (Result, error) {
	retVal := Result{Column: game.NoMove}
	if maxDepth < 1 {
		return retVal, errors.Errorf("max depth must be at least 1. Got %d", maxDepth)
	}
	e.tracer.Clear()
	if len(b.ValidMoves()) == 0 {
		return retVal, ErrNoLegalMove
	}

	start := e.now()
	e.ctx = ctx
	e.pruning = pruning
	e.bounded = timeLimit >= 0
	if e.bounded {
		e.deadline = start.Add(timeLimit)
	}
	if d, ok := ctx.Deadline(); ok && (!e.bounded || d.Before(e.deadline)) {
		e.deadline = d
		e.bounded = true
	}
	e.lumberjack.Reset()
	e.log("SEARCH. Player %v, max depth %d, pruning %t\n%v", e.Player, maxDepth, pruning, b)

	for depth := 1; depth <= maxDepth; depth++ {
		if e.timeUp() {
			break
		}
		e.nodes = 0
		e.pass = e.pass[:0]

		val, col, ok := e.search(b, depth, true, NegInf(), Inf(), 0, noColumn)
		if !ok {
			e.logger.Info().
				Int("depth", depth).
				Int("completed", retVal.Depth).
				Dur("elapsed", e.now().Sub(start)).
				Msg("search cancelled")
			break
		}

		e.tracer.Clear()
		for _, ev := range e.pass {
			e.tracer.Record(ev)
		}
		retVal.Score = val
		retVal.Column = game.Single(col)
		retVal.Depth = depth
		retVal.Nodes = e.nodes
		e.logger.Debug().
			Int("depth", depth).
			Int("nodes", e.nodes).
			Stringer("score", val).
			Int("column", col).
			Dur("elapsed", e.now().Sub(start)).
			Msg("depth complete")
	}
	retVal.Elapsed = e.now().Sub(start)
	e.ctx = nil

	if retVal.Column.IsNoMove() {
		if err := ctx.Err(); err != nil {
			return retVal, errors.WithStack(err)
		}
		return retVal, ErrNoLegalMove
	}
	return retVal, nil
}

func (e *Engine) timeUp() bool {
	if e.ctx.Err() != nil {
		return true
	}
	return e.bounded && !e.now().Before(e.deadline)
}

func (e *Engine) trace(ev Event) {
	if !e.tracing {
		return
	}
	ev.Bounded = e.pruning
	e.pass = append(e.pass, ev)
}
