package game

import (
	"fmt"
)

type Colour int32

const (
	None Colour = iota
	Black
	White
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		}
	case 's': // used in board games
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		}
	case 'c': // used by the console, which prints plain ASCII
		switch cl {
		case None:
			fmt.Fprint(s, ".")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		}
	}
}

// Player represents a player. It's also a colour.
//
// By convention the human sits as Black (X) and the engine as White (O), though nothing
// in the search depends on it.
type Player Colour

const (
	NoPlayer = Player(None)
	X        = Player(Black)
	O        = Player(White)
)

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// Opponent returns the other player. It panics on NoPlayer.
func (p Player) Opponent() Player {
	switch p {
	case X:
		return O
	case O:
		return X
	}
	panic("Unreachable")
}

// ParsePlayer parses "X"/"O" (or "black"/"white") into a Player.
func ParsePlayer(s string) (Player, bool) {
	switch s {
	case "X", "x", "black", "Black", "1":
		return X, true
	case "O", "o", "white", "White", "2":
		return O, true
	}
	return NoPlayer, false
}

// Single is a move, expressed as the column a piece is dropped into. -1 is "no move".
type Single int32

// NoMove is the Single returned when no move could be chosen.
const NoMove Single = -1

// IsNoMove returns true when the move does not name a column.
func (c Single) IsNoMove() bool { return c < 0 }

// PlayerMove is a tuple indicating the player and the column to drop into.
type PlayerMove struct {
	Player
	Single
}

func (p PlayerMove) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v@%d", p.Player, p.Single) }

// State is any column-drop game that implements these and is able to report back
type State interface {
	// These methods represent the game state
	BoardSize() (int, int) // returns the board size
	Hash() Zobrist         // returns the hash of the board
	ToMove() Player        // returns the next player to move
	MoveNumber() int       // returns count of moves so far that led to this point.
	LastMove() PlayerMove  // returns the last move that was made

	// Meta-game stuff
	Ended() (ended bool, winner Player) // has the game ended? if yes, then who's the winner?

	// interactions
	SetToMove(Player)        // set the next player to move
	Check(m PlayerMove) bool // check if the placement is legal
	Apply(m PlayerMove) error
	UndoLastMove()
	Reset() // reset state
}

// Zobrist is a type representing a hash of the board.
// Connect 4 boards are only ever added to, so a plain FNV hash of the cells serves.
type Zobrist uint32

// MetaState describes a game in progress, as seen by output encoders.
type MetaState interface {
	Name() string // name of the game
	GameNumber() int
	State() State
}
