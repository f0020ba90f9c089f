package c4

import (
	"fmt"
	"io"
	"strings"

	"github.com/gorgonia/connect4/game"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

const (
	DefaultRows = 6
	DefaultCols = 7

	// Connect is how many in a row wins.
	Connect = 4
)

// Board is a Connect 4 grid. Row 0 is the top row; pieces fall towards row Rows()-1.
//
// The cells live in a dense tensor; it is a row-major view into the same backing.
type Board struct {
	data *tensor.Dense
	it   [][]game.Colour
	rows int
	cols int
}

// NewBoard creates an empty board of the given size.
func NewBoard(rows, cols int) *Board {
	backing := make([]game.Colour, rows*cols)
	data := tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing))
	iter, err := native.Matrix(data)
	if err != nil {
		panic(err)
	}
	it := iter.([][]game.Colour)
	return &Board{
		data: data,
		it:   it,
		rows: rows,
		cols: cols,
	}
}

// ParseBoard reads a board drawn as rows of '.', 'X' and 'O' (top row first).
// Whitespace inside a row is ignored and blank lines are skipped.
func ParseBoard(s string) (*Board, error) {
	var rows [][]game.Colour
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), "")
		if line == "" {
			continue
		}
		row := make([]game.Colour, 0, len(line))
		for _, r := range line {
			switch r {
			case '.', '·', '_':
				row = append(row, game.None)
			case 'X', 'x':
				row = append(row, game.Black)
			case 'O', 'o':
				row = append(row, game.White)
			default:
				return nil, errors.Errorf("Unknown cell %q", r)
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, errors.Errorf("Row %d has %d cells, expected %d", len(rows), len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if len(rows) < Connect || len(rows[0]) < Connect {
		return nil, errors.Errorf("Board must be at least %dx%d", Connect, Connect)
	}

	b := NewBoard(len(rows), len(rows[0]))
	for r := range rows {
		copy(b.it[r], rows[r])
	}
	if !b.Valid() {
		return nil, errors.New("Board has a floating piece")
	}
	return b, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// At returns the colour of the cell at (row, col).
func (b *Board) At(row, col int) game.Colour { return b.it[row][col] }

// Cells returns the row-major backing of the board. It is not a copy.
func (b *Board) Cells() []game.Colour { return b.data.Data().([]game.Colour) }

// Valid reports whether every column is gravity-packed.
func (b *Board) Valid() bool {
	for col := 0; col < b.cols; col++ {
		seen := false
		for row := 0; row < b.rows; row++ {
			switch {
			case b.it[row][col] != game.None:
				seen = true
			case seen:
				return false
			}
		}
	}
	return true
}

// ValidMoves returns the columns that can still take a piece, in ascending order.
func (b *Board) ValidMoves() []int {
	moves := make([]int, 0, b.cols)
	for col := 0; col < b.cols; col++ {
		if b.it[0][col] == game.None {
			moves = append(moves, col)
		}
	}
	return moves
}

// IsFull returns true when no column can take a piece.
func (b *Board) IsFull() bool {
	for col := 0; col < b.cols; col++ {
		if b.it[0][col] == game.None {
			return false
		}
	}
	return true
}

// Drop places a piece for p in the lowest empty row of col, and returns that row.
func (b *Board) Drop(col int, p game.Player) (row int, err error) {
	m := game.PlayerMove{Player: p, Single: game.Single(col)}
	if col < 0 || col >= b.cols {
		return -1, moveError{m, "column out of range"}
	}
	if b.it[0][col] != game.None {
		return -1, moveError{m, "column is full"}
	}
	for row = b.rows - 1; row >= 0; row-- {
		if b.it[row][col] == game.None {
			b.it[row][col] = game.Colour(p)
			return row, nil
		}
	}
	return -1, moveError{m, "column is full"}
}

// UndoTop removes the topmost piece of col. It returns false if the column is empty.
func (b *Board) UndoTop(col int) bool {
	if col < 0 || col >= b.cols {
		return false
	}
	for row := 0; row < b.rows; row++ {
		if b.it[row][col] != game.None {
			b.it[row][col] = game.None
			return true
		}
	}
	return false
}

// IsWinningMove checks whether dropping into col would win for p. The board is left as it was.
func (b *Board) IsWinningMove(col int, p game.Player) bool {
	if _, err := b.Drop(col, p); err != nil {
		return false
	}
	winner := b.CheckWinner()
	b.UndoTop(col)
	return winner == p
}

// CheckWinner returns the player with four in a row, or game.NoPlayer.
func (b *Board) CheckWinner() game.Player {
	if winner := b.checkHorizontal(); winner != game.None {
		return game.Player(winner)
	}
	if winner := b.checkVertical(); winner != game.None {
		return game.Player(winner)
	}
	if winner := b.checkTLBR(); winner != game.None {
		return game.Player(winner)
	}
	return game.Player(b.checkBLTR())
}

// run returns the colour of a run of Connect cells starting at (row, col) going in (dr, dc).
func (b *Board) run(row, col, dr, dc int) game.Colour {
	c := b.it[row][col]
	if c == game.None {
		return game.None
	}
	for i := 1; i < Connect; i++ {
		if b.it[row+i*dr][col+i*dc] != c {
			return game.None
		}
	}
	return c
}

// checkHorizontal checks rightwards
func (b *Board) checkHorizontal() game.Colour {
	for row := 0; row < b.rows; row++ {
		for col := 0; col+Connect <= b.cols; col++ {
			if c := b.run(row, col, 0, 1); c != game.None {
				return c
			}
		}
	}
	return game.None
}

// checkVertical checks downwards
func (b *Board) checkVertical() game.Colour {
	for col := 0; col < b.cols; col++ {
		for row := 0; row+Connect <= b.rows; row++ {
			if c := b.run(row, col, 1, 0); c != game.None {
				return c
			}
		}
	}
	return game.None
}

func (b *Board) checkTLBR() game.Colour {
	for row := 0; row+Connect <= b.rows; row++ {
		for col := 0; col+Connect <= b.cols; col++ {
			if c := b.run(row, col, 1, 1); c != game.None {
				return c
			}
		}
	}
	return game.None
}

func (b *Board) checkBLTR() game.Colour {
	for row := Connect - 1; row < b.rows; row++ {
		for col := 0; col+Connect <= b.cols; col++ {
			if c := b.run(row, col, -1, 1); c != game.None {
				return c
			}
		}
	}
	return game.None
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	b2 := NewBoard(b.rows, b.cols)
	copy(b2.Cells(), b.Cells())
	return b2
}

// Key is a canonical snapshot of the cells, usable as a map key.
func (b *Board) Key() string {
	raw := b.Cells()
	buf := make([]byte, len(raw))
	for i, c := range raw {
		buf[i] = '0' + byte(c)
	}
	return string(buf)
}

func (b *Board) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		for _, row := range b.it {
			fmt.Fprint(s, "⎢ ")
			for _, col := range row {
				fmt.Fprintf(s, "%s ", col)
			}
			fmt.Fprint(s, "⎥\n")
		}
	}
}

// Print writes the board in plain ASCII with a column index footer.
func (b *Board) Print(w io.Writer) {
	for _, row := range b.it {
		for i, col := range row {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%c", col)
		}
		fmt.Fprintln(w)
	}
	for col := 0; col < b.cols; col++ {
		if col > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)
}
