package search

import (
	"sort"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
)

// pair is a tuple of score and column
type pair struct {
	Col   int
	Score Score
}

// byScore is a sortable list of pairs. It sorts the list with best score first
type byScore []pair

func (l byScore) Len() int           { return len(l) }
func (l byScore) Less(i, j int) bool { return l[i].Score > l[j].Score }
func (l byScore) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

// byCenter sorts columns by their distance to the center column.
type byCenter struct {
	l      []int
	center int
}

func (l byCenter) Len() int { return len(l.l) }
func (l byCenter) Less(i, j int) bool {
	return abs(l.l[i]-l.center) < abs(l.l[j]-l.center)
}
func (l byCenter) Swap(i, j int) { l.l[i], l.l[j] = l.l[j], l.l[i] }

// orderMoves sorts moves in place: nearest the center first, then (stably) by the static
// evaluation after the mover plays there, best first. The evaluation is always that of
// the maximizing player, whoever moves.
func (e *Engine) orderMoves(b *c4.Board, moves []int, mover game.Player) []int {
	sort.Stable(byCenter{l: moves, center: b.Cols() / 2})

	scored := make(byScore, len(moves))
	for i, col := range moves {
		scored[i] = pair{Col: col, Score: NegInf()}
		if _, err := b.Drop(col, mover); err != nil {
			continue
		}
		scored[i].Score = e.eval.Evaluate(b, e.Player)
		b.UndoTop(col)
	}
	sort.Stable(scored)

	for i := range scored {
		moves[i] = scored[i].Col
	}
	return moves
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
