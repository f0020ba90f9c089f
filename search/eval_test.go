package search

import (
	"testing"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/stretchr/testify/assert"
)

func TestEvaluator_Evaluate(t *testing.T) {
	ev := Evaluator{DefaultWeights()}
	cases := []struct {
		name  string
		board string
		x, o  Score
	}{
		{"empty", `
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . . . . . .
		`, 0, 0},
		{"center", `
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . . O . . .
		`, 0, 3},
		{"two", `
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . O O . . .
		`, 0, 33},
		{"open three", `
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. . . . . . .
			. X X X . . .
		`, 213, -240},
	}

	for _, c := range cases {
		b := mustParse(t, c.board)
		assert.Equal(t, c.x, ev.Evaluate(b, game.X), "%s for X", c.name)
		assert.Equal(t, c.o, ev.Evaluate(b, game.O), "%s for O", c.name)
	}
}

func TestEvaluator_Four(t *testing.T) {
	ev := Evaluator{DefaultWeights()}
	b := mustParse(t, `
		. . . . . . .
		. . . . . . .
		. . . . . . .
		. . . . . . .
		X X X . . . .
		O O O O . . .
	`)
	// OOOO, OOO., OO.. and the center piece, less X's XXX.
	assert.Equal(t, Score(9993), ev.Evaluate(b, game.O))
	// XXX. and XX.., less O's OOO.
	assert.Equal(t, Score(-10), ev.Evaluate(b, game.X))
}

func TestEvaluator_Weights(t *testing.T) {
	b := c4.NewBoard(c4.DefaultRows, c4.DefaultCols)
	b.Drop(3, game.X)
	b.Drop(3, game.X)

	ev := Evaluator{Weights{Center: 1}}
	assert.Equal(t, Score(2), ev.Evaluate(b, game.X))
	ev = Evaluator{Weights{Two: 1}}
	assert.Equal(t, Score(1), ev.Evaluate(b, game.X))
}
