package search

import (
	"fmt"

	"github.com/gorgonia/connect4/game/c4"
)

/*
search is the one recursive procedure behind both modes. With pruning off, alpha and beta
are carried along untouched and never cut anything off.

The returned bool is false when the time ran out. Callers must then unwind immediately
without using the value: nothing is stored into the table or the trace for an unfinished
node.
*/
func (e *Engine) search(b *c4.Board, depth int, maximizing bool, alpha, beta Score, level, from int) (Score, int, bool) {
	if e.timeUp() {
		return 0, noColumn, false
	}
	e.nodes++

	var key Key
	if e.tt != nil {
		key = Key{Position: b.Key(), Depth: depth, Maximizing: maximizing, Player: e.Player}
		if ent, ok := e.tt.Lookup(key); ok && ent.usable(alpha, beta) {
			e.trace(Event{Kind: CacheHit, Level: level, Column: from, Value: ent.Value, Alpha: alpha, Beta: beta})
			return ent.Value, ent.Move, true
		}
	}

	switch b.CheckWinner() {
	case e.Player:
		e.trace(Event{Kind: Terminal, Level: level, Column: from, Value: Inf(), Alpha: alpha, Beta: beta})
		return Inf(), noColumn, true
	case e.Player.Opponent():
		e.trace(Event{Kind: Terminal, Level: level, Column: from, Value: NegInf(), Alpha: alpha, Beta: beta})
		return NegInf(), noColumn, true
	}

	moves := b.ValidMoves()
	if depth == 0 || len(moves) == 0 {
		val := e.eval.Evaluate(b, e.Player)
		e.trace(Event{Kind: Leaf, Level: level, Column: from, Value: val, Alpha: alpha, Beta: beta})
		return val, noColumn, true
	}

	mover, win := e.Player, Inf()
	if !maximizing {
		mover, win = e.Player.Opponent(), NegInf()
	}
	for _, col := range moves {
		if b.IsWinningMove(col, mover) {
			e.trace(Event{Kind: Immediate, Level: level, Column: col, Value: win, Alpha: alpha, Beta: beta})
			return win, col, true
		}
	}

	moves = e.orderMoves(b, moves, mover)
	bestMove := moves[0]
	e.trace(Event{Kind: Enter, Level: level, Column: from, Maximizing: maximizing, Alpha: alpha, Beta: beta})
	e.log("%*sENTER depth %d from %d, %d moves %v", level*2, "", depth, from, len(moves), moves)

	value := NegInf()
	if !maximizing {
		value = Inf()
	}
	origAlpha, origBeta := alpha, beta
	for _, col := range moves {
		if e.timeUp() {
			return 0, noColumn, false
		}

		if _, err := b.Drop(col, mover); err != nil {
			panic(fmt.Sprintf("%+v", err))
		}
		child, _, ok := e.search(b, depth-1, !maximizing, alpha, beta, level+1, col)
		if !b.UndoTop(col) {
			panic(fmt.Sprintf("column %d is empty after searching it", col))
		}
		if !ok {
			return 0, noColumn, false
		}

		if (maximizing && child > value) || (!maximizing && child < value) {
			value = child
			bestMove = col
		}
		e.trace(Event{Kind: Child, Level: level + 1, Column: col, Value: child, Alpha: alpha, Beta: beta})

		if !e.pruning {
			continue
		}
		if maximizing {
			alpha = maxScore(alpha, value)
		} else {
			beta = minScore(beta, value)
		}
		if alpha >= beta {
			e.trace(Event{Kind: Prune, Level: level + 1, Column: noColumn, Alpha: alpha, Beta: beta})
			e.log("%*sPRUNED after %d: a=%v b=%v", level*2, "", col, alpha, beta)
			break
		}
	}

	if e.tt != nil {
		e.tt.Store(key, Entry{Value: value, Move: bestMove, Bound: e.boundOf(value, origAlpha, origBeta)})
	}
	e.trace(Event{Kind: Exit, Level: level, Column: from, Value: value, Alpha: alpha, Beta: beta})
	return value, bestMove, true
}

// boundOf classifies a value computed under the window (alpha, beta).
func (e *Engine) boundOf(value, alpha, beta Score) Bound {
	switch {
	case !e.pruning:
		return Exact
	case value <= alpha:
		return Upper
	case value >= beta:
		return Lower
	}
	return Exact
}
