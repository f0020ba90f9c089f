package c4

import (
	"fmt"

	"github.com/gorgonia/connect4/game"
	"github.com/pkg/errors"
)

// ErrInvalidMove is the cause of every rejected drop: the column is out of range or full.
var ErrInvalidMove = errors.New("invalid move")

type moveError struct {
	game.PlayerMove
	reason string
}

func (err moveError) Error() string {
	return fmt.Sprintf("Unable to make %v: %s", err.PlayerMove, err.reason)
}

// Cause allows errors.Cause to find ErrInvalidMove.
func (err moveError) Cause() error { return ErrInvalidMove }

func (err moveError) Unwrap() error { return ErrInvalidMove }
