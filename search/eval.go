package search

import (
	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
)

// Weights are the contributions of the window patterns to a static evaluation.
type Weights struct {
	Four     Score // four of the player's pieces
	Three    Score // three pieces and an empty cell, no opponent piece
	Two      Score // two pieces and two empty cells, no opponent piece
	OppThree Score // three opponent pieces and an empty cell. Should be negative.
	Center   Score // per piece of the player in the center column
}

// DefaultWeights are tuned for medium strength play.
func DefaultWeights() Weights {
	return Weights{
		Four:     10000,
		Three:    100,
		Two:      10,
		OppThree: -120,
		Center:   3,
	}
}

// Evaluator statically scores a board for a player.
type Evaluator struct {
	Weights
}

// Evaluate sums the score of every window of c4.Connect cells (rows, columns and both
// diagonals) and the center column bonus, from the point of view of p.
func (ev Evaluator) Evaluate(b *c4.Board, p game.Player) Score {
	rows, cols := b.Rows(), b.Cols()
	me := game.Colour(p)
	var score Score

	center := cols / 2
	for r := 0; r < rows; r++ {
		if b.At(r, center) == me {
			score += ev.Center
		}
	}

	// horizontal
	for r := 0; r < rows; r++ {
		for c := 0; c+c4.Connect <= cols; c++ {
			score += ev.window(b, me, r, c, 0, 1)
		}
	}
	// vertical
	for c := 0; c < cols; c++ {
		for r := 0; r+c4.Connect <= rows; r++ {
			score += ev.window(b, me, r, c, 1, 0)
		}
	}
	// diagonal, down and to the right
	for r := 0; r+c4.Connect <= rows; r++ {
		for c := 0; c+c4.Connect <= cols; c++ {
			score += ev.window(b, me, r, c, 1, 1)
		}
	}
	// diagonal, up and to the right
	for r := c4.Connect - 1; r < rows; r++ {
		for c := 0; c+c4.Connect <= cols; c++ {
			score += ev.window(b, me, r, c, -1, 1)
		}
	}
	return score
}

func (ev Evaluator) window(b *c4.Board, me game.Colour, r, c, dr, dc int) Score {
	var mine, theirs, empty int
	for i := 0; i < c4.Connect; i++ {
		switch b.At(r+i*dr, c+i*dc) {
		case game.None:
			empty++
		case me:
			mine++
		default:
			theirs++
		}
	}

	var score Score
	if theirs == 0 {
		switch {
		case mine == c4.Connect:
			score += ev.Four
		case mine == 3 && empty == 1:
			score += ev.Three
		case mine == 2 && empty == 2:
			score += ev.Two
		}
	}
	if mine == 0 && theirs == 3 && empty == 1 {
		score += ev.OppThree
	}
	return score
}
