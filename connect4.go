// Package connect4 plays Connect 4 between humans and a depth-limited minimax engine, and
// keeps the search trees behind every engine move.
package connect4

import (
	"context"
	"fmt"
	"io"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/search"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Session is the top level structure and the entry point of the API. It is an Arena that
// keeps statistics across games and sends every move to the output encoder.
type Session struct {
	// state
	Arena
	Statistics

	conf   Config
	outEnc OutputEncoder
}

// New creates a session between a and b.
func New(conf Config, a, b *Agent) *Session {
	if !conf.IsValid() {
		panic(fmt.Sprintf("Config is not valid: %+v", conf))
	}
	s := &Session{
		Arena:      MakeArena(conf.Rows, conf.Cols, a, b, conf.Name),
		Statistics: makeStatistics(),
		conf:       conf,
		outEnc:     conf.OutputEncoder,
	}
	if conf.SaveTraces {
		s.SaveTraces(conf.TraceDir)
	}
	return s
}

// NewHumanSession creates a session of a human playing X on the console against the
// engine playing O.
func NewHumanSession(conf Config, console *Console, logger zerolog.Logger) *Session {
	human := NewHumanAgent("You", game.X, console)
	ai := NewEngineAgent("AI", game.O, conf.Search, search.WithLogger(logger))
	s := New(conf, human, ai)
	s.SetLogger(logger)
	s.SetOutput(console.out)
	return s
}

// NewSelfPlaySession creates a session of the engine against itself.
func NewSelfPlaySession(conf Config, logger zerolog.Logger) *Session {
	a := NewEngineAgent("A", game.X, conf.Search, search.WithLogger(logger))
	b := NewEngineAgent("B", game.O, conf.Search, search.WithLogger(logger))
	s := New(conf, a, b)
	s.SetLogger(logger)
	return s
}

// SetPruning switches every engine agent of the session between alpha-beta and plain
// minimax, from the next search on.
func (s *Session) SetPruning(pruning bool) {
	for _, ag := range []*Agent{s.A, s.B} {
		if !ag.IsHuman() {
			ag.Engine.Pruning = pruning
		}
	}
	s.conf.Search.Pruning = pruning
}

// Config returns the configuration the session was created with, and the search mode
// last set with SetPruning.
func (s *Session) Config() Config { return s.conf }

// PlayOne plays a game, updates the statistics and flushes the output encoder.
func (s *Session) PlayOne(ctx context.Context, first game.Player) (game.Player, error) {
	winner, err := s.Play(ctx, first, s.outEnc)
	if err != nil {
		return winner, err
	}
	s.update(s.A)
	s.update(s.B)
	if s.outEnc != nil {
		if err = s.outEnc.Flush(); err != nil {
			return winner, errors.WithMessage(err, "Unable to flush output")
		}
	}
	s.gameNumber++
	return winner, nil
}

// PlayN plays n games, alternating who moves first. It stops at the first error, or when
// ctx is done.
func (s *Session) PlayN(ctx context.Context, n int) error {
	s.A.resetStats()
	s.B.resetStats()
	first := s.A.Player
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.PlayOne(ctx, first); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("game %d", s.gameNumber))
		}
		first = first.Opponent()
	}
	s.logger.Info().
		Float32("a_wins", s.A.Wins).
		Float32("b_wins", s.B.Wins).
		Float32("draws", s.A.Draw).
		Msg("done")
	return nil
}

// Summary writes the results of every agent.
func (s *Session) Summary(w io.Writer) {
	for _, ag := range []*Agent{s.A, s.B} {
		fmt.Fprintf(w, "%s (%s): wins %v, loss %v, draw %v\n", ag.name, playerStringer(ag.Player), ag.Wins, ag.Loss, ag.Draw)
	}
}
