package connect4

import (
	"context"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/gorgonia/connect4/search"
	"github.com/pkg/errors"
)

// Config configures a Session.
type Config struct {
	Name       string
	Rows, Cols int

	// Search configures the engine agents. Search.Player is overridden by the seat the
	// agent takes.
	Search search.Config

	// TraceDir is where search trees are saved. Empty means the working directory.
	TraceDir string
	// SaveTraces saves the tree of every engine move as soon as it is played.
	SaveTraces bool

	// extensions
	OutputEncoder OutputEncoder
}

// DefaultConfig is a standard 6x7 game against a depth 4 alpha-beta engine with a 10
// second budget per move.
func DefaultConfig() Config {
	return Config{
		Name:   "Connect 4",
		Rows:   c4.DefaultRows,
		Cols:   c4.DefaultCols,
		Search: search.DefaultConfig(),
	}
}

func (c Config) IsValid() bool {
	return c.Rows >= c4.Connect && c.Cols >= c4.Connect && c.Search.IsValid()
}

// OutputEncoder encodes the entire meta state as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be the MJPEG stream.
type OutputEncoder interface {
	Encode(ms game.MetaState) error
	Flush() error
}

// Mover is anything that picks a column for the player to move.
type Mover interface {
	Move(ctx context.Context, g *c4.Game) (game.Single, error)
}

// MoveRecord is the search tree that led to an engine move.
type MoveRecord struct {
	GameID     string
	MoveNumber int // 1-based, counting both players' moves
	Player     game.Player
	Column     game.Single
	Result     search.Result
	Lines      []search.Line
}

// manyErr collects the errors of a batch operation.
type manyErr []error

func (err manyErr) Error() string {
	var msg string
	for i, e := range err {
		if i > 0 {
			msg += "; "
		}
		msg += e.Error()
	}
	return msg
}

func (err manyErr) asError() error {
	if len(err) == 0 {
		return nil
	}
	return errors.WithStack(err)
}
