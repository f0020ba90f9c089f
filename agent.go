package connect4

import (
	"context"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/gorgonia/connect4/search"
	"github.com/pkg/errors"
)

// An Agent is a player, AI or Human
type Agent struct {
	Engine *search.Engine // nil for humans
	Human  Mover
	Player game.Player

	// Statistics
	Wins float32
	Loss float32
	Draw float32

	name string
	rec  *search.Recorder
	last search.Result
}

// NewEngineAgent creates an agent playing p with a search engine. conf.Player is set to p.
func NewEngineAgent(name string, p game.Player, conf search.Config, opts ...search.Option) *Agent {
	conf.Player = p
	rec := search.NewRecorder()
	opts = append([]search.Option{search.WithTracer(rec)}, opts...)
	return &Agent{
		Engine: search.New(conf, opts...),
		Player: p,
		name:   name,
		rec:    rec,
	}
}

// NewHumanAgent creates an agent playing p whose moves come from m.
func NewHumanAgent(name string, p game.Player, m Mover) *Agent {
	return &Agent{
		Human:  m,
		Player: p,
		name:   name,
	}
}

func (a *Agent) Name() string { return a.name }

// IsHuman returns true if the agent is not backed by a search engine.
func (a *Agent) IsHuman() bool { return a.Engine == nil }

// Search picks a column for the agent. For engine agents the search tree is available
// from Lines until the next search, and search.ErrNoLegalMove is returned if not even
// one depth completed in time.
func (a *Agent) Search(ctx context.Context, g *c4.Game) (game.Single, error) {
	if g.ToMove() != a.Player {
		return game.NoMove, errors.Errorf("%v is not to move. %v is", a.Player, g.ToMove())
	}
	if a.IsHuman() {
		return a.Human.Move(ctx, g)
	}
	res, err := a.Engine.Choose(ctx, g.Position())
	a.last = res
	if err != nil {
		return game.NoMove, err
	}
	return res.Column, nil
}

// LastResult returns the result of the agent's last search.
func (a *Agent) LastResult() search.Result { return a.last }

// Lines returns a copy of the tree of the agent's last search. It is nil for humans.
func (a *Agent) Lines() []search.Line {
	if a.rec == nil {
		return nil
	}
	return a.rec.Lines()
}

func (a *Agent) resetStats() {
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
}
