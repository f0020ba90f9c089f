package search

import (
	"time"

	"github.com/gorgonia/connect4/game"
)

// NoTimeLimit lets a search run until it has completed every depth.
const NoTimeLimit time.Duration = -1

// Config is the structure to configure an Engine.
type Config struct {
	MaxDepth  int           // deepest iteration of the iterative deepening
	Pruning   bool          // alpha-beta pruning, or plain minimax
	TimeLimit time.Duration // wall clock budget of a search. NoTimeLimit for none

	// Player is the maximizing side. Evaluations are always from its point of view.
	Player  game.Player
	Weights Weights

	// TTCapacity is the capacity of the transposition table the engine creates when
	// none is given with WithTable. 0 disables memoization.
	TTCapacity int
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:   4,
		Pruning:    true,
		TimeLimit:  10 * time.Second,
		Player:     game.O,
		Weights:    DefaultWeights(),
		TTCapacity: DefaultTTCapacity,
	}
}

func (c Config) IsValid() bool {
	return c.MaxDepth >= 1 &&
		(c.Player == game.X || c.Player == game.O) &&
		c.TTCapacity >= 0 &&
		c.Weights.OppThree <= 0
}
