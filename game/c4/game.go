package c4

import (
	"fmt"
	"hash/fnv"

	"github.com/gorgonia/connect4/game"
)

var (
	_ game.State = &Game{}
)

// Game is a Connect 4 board plus the record of how it got there.
type Game struct {
	b          *Board
	history    []game.PlayerMove
	nextToMove game.Player
}

// New creates a new game with a board of (rows, cols). X moves first unless told otherwise.
func New(rows, cols int) *Game {
	return &Game{
		b:          NewBoard(rows, cols),
		history:    make([]game.PlayerMove, 0, rows*cols),
		nextToMove: game.X,
	}
}

// FromBoard starts a game from an existing position. The history is empty.
func FromBoard(b *Board, toMove game.Player) *Game {
	return &Game{
		b:          b,
		history:    make([]game.PlayerMove, 0, b.rows*b.cols),
		nextToMove: toMove,
	}
}

func (g *Game) BoardSize() (int, int) { return g.b.rows, g.b.cols }

// Position returns the live board. Searches may explore it, but must restore it.
func (g *Game) Position() *Board { return g.b }

func (g *Game) SetToMove(p game.Player) { g.nextToMove = p }

func (g *Game) ToMove() game.Player { return g.nextToMove }

func (g *Game) LastMove() game.PlayerMove {
	if len(g.history) > 0 {
		return g.history[len(g.history)-1]
	}
	return game.PlayerMove{Player: game.NoPlayer, Single: game.NoMove}
}

// History returns the moves played so far. It is not a copy.
func (g *Game) History() []game.PlayerMove { return g.history }

func (g *Game) MoveNumber() int { return len(g.history) }

func (g *Game) Check(m game.PlayerMove) bool {
	col := int(m.Single)
	return col >= 0 && col < g.b.cols && g.b.it[0][col] == game.None
}

// Apply drops the piece and hands the move to the opponent.
func (g *Game) Apply(m game.PlayerMove) error {
	if _, err := g.b.Drop(int(m.Single), m.Player); err != nil {
		return err
	}
	g.history = append(g.history, m)
	g.nextToMove = m.Player.Opponent()
	return nil
}

// UndoLastMove takes back the last move. It does nothing on a fresh game.
func (g *Game) UndoLastMove() {
	if len(g.history) == 0 {
		return
	}
	last := g.history[len(g.history)-1]
	if !g.b.UndoTop(int(last.Single)) {
		panic(fmt.Sprintf("history says %v was played but column is empty", last))
	}
	g.history = g.history[:len(g.history)-1]
	g.nextToMove = last.Player
}

func (g *Game) Ended() (bool, game.Player) {
	if winner := g.b.CheckWinner(); winner != game.NoPlayer {
		return true, winner
	}
	if g.b.IsFull() {
		return true, game.NoPlayer
	}
	return false, game.NoPlayer
}

func (g *Game) Reset() {
	data := g.b.Cells()
	for i := range data {
		data[i] = game.None
	}
	g.history = g.history[:0]
	g.nextToMove = game.X
}

// Hash identifies the position. Games that reached the same grid hash the same.
func (g *Game) Hash() game.Zobrist {
	h := fnv.New32a()
	h.Write([]byte(g.b.Key()))
	return game.Zobrist(h.Sum32())
}

func (g *Game) Format(s fmt.State, c rune) { g.b.Format(s, c) }
