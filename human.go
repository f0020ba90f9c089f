package connect4

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/pkg/errors"
)

// Console reads a human's input line by line, and writes prompts and messages.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewScanner(r), out: w}
}

// Printf writes a message to the console.
func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// Ask prompts and returns the next line of input, trimmed. It returns io.EOF once the
// input is exhausted.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", errors.WithStack(err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Move asks for a column until a legal one is given.
func (c *Console) Move(ctx context.Context, g *c4.Game) (game.Single, error) {
	b := g.Position()
	for {
		if err := ctx.Err(); err != nil {
			return game.NoMove, err
		}
		s, err := c.Ask(fmt.Sprintf("Enter column (0-%d): ", b.Cols()-1))
		if err != nil {
			return game.NoMove, err
		}
		col, err := strconv.Atoi(s)
		if err != nil {
			c.Printf("Please enter a valid integer!\n")
			continue
		}
		if !g.Check(game.PlayerMove{Player: g.ToMove(), Single: game.Single(col)}) {
			c.Printf("Invalid move! Try again.\n")
			continue
		}
		return game.Single(col), nil
	}
}

// FirstPlayer asks who moves first: 1 for human, 2 for the engine, anything else for a
// random pick, which is returned as game.NoPlayer.
func (c *Console) FirstPlayer(human, engine game.Player) (game.Player, error) {
	s, err := c.Ask("\nWho starts first? (1 for Human, 2 for AI, Enter for random): ")
	if err != nil {
		return game.NoPlayer, err
	}
	switch s {
	case "1":
		return human, nil
	case "2":
		return engine, nil
	}
	return game.NoPlayer, nil
}

// Mode asks which search the engine uses, until a valid answer is given: 1 for
// alpha-beta, 2 for plain minimax. An empty answer keeps pruning as it is.
func (c *Console) Mode(pruning bool) (bool, error) {
	def := "Alpha-Beta"
	if !pruning {
		def = "no pruning"
	}
	for {
		s, err := c.Ask(fmt.Sprintf("\nSearch mode? (1 for Alpha-Beta, 2 for no pruning, Enter for %s): ", def))
		if err != nil {
			return pruning, err
		}
		switch strings.ToLower(s) {
		case "":
			return pruning, nil
		case "1", "ab", "alphabeta":
			return true, nil
		case "2", "plain", "minimax":
			return false, nil
		}
		c.Printf("Invalid choice! Try again.\n")
	}
}

// Confirm asks a yes/no question. Only "y" and "yes" are a yes.
func (c *Console) Confirm(prompt string) (bool, error) {
	s, err := c.Ask(prompt + " (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
