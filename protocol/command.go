package protocol

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorgonia/connect4/encoding/tree"
	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/gorgonia/connect4/search"
	"github.com/pkg/errors"
)

// ErrGameOver is returned by play and genmove once the game has ended.
var ErrGameOver = errors.New("game is over")

// Command is anything the engine can run.
type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return Version }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	cmds := make([]string, 0, len(e.known))
	for c := range e.known {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)
	return strings.Join(cmds, "\n")
}

func quit(e *Engine) string       { e.done = true; return "" }
func clearBoard(e *Engine) string { e.g.Reset(); e.rec.Clear(); return "" }
func undo(e *Engine) string       { e.g.UndoLastMove(); return "" }

func showboard(e *Engine) string {
	var buf bytes.Buffer
	buf.WriteByte('\n')
	e.g.Position().Print(&buf)
	return strings.TrimSuffix(buf.String(), "\n")
}

func showTrace(e *Engine) string {
	if e.rec.Len() == 0 {
		return ""
	}
	return "\n" + strings.Join(tree.Render(e.rec.Lines()), "\n")
}

func dot(e *Engine, args []string) (string, error) {
	s, err := search.ToDot(e.rec.Events())
	if err != nil {
		return "", err
	}
	return "\n" + strings.TrimSuffix(s, "\n"), nil
}

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

func boardSize(e *Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("Not enough arguments for \"boardsize\"")
	}
	rows, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse first argument of boardsize")
	}
	cols, err := strconv.Atoi(args[1])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse second argument of boardsize")
	}
	if rows < c4.Connect || cols < c4.Connect {
		return "", errors.Errorf("Board must be at least %dx%d. Got %dx%d", c4.Connect, c4.Connect, rows, cols)
	}
	e.g = c4.New(rows, cols)
	e.rec.Clear()
	return "", nil
}

// play accepts "play <col>" for whoever is to move, or "play <player> <col>".
func play(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"play\"")
	}
	p := e.g.ToMove()
	if len(args) > 1 {
		var ok bool
		if p, ok = game.ParsePlayer(args[0]); !ok {
			return "", errors.Errorf("Unknown player %q", args[0])
		}
		args = args[1:]
	}
	col, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse column")
	}
	if ended, _ := e.g.Ended(); ended {
		return "", ErrGameOver
	}
	if err := e.g.Apply(game.PlayerMove{Player: p, Single: game.Single(col)}); err != nil {
		return "", err
	}
	return "", nil
}

// genmove searches for the player to move, or the given player, and plays the result.
func genmove(e *Engine, args []string) (string, error) {
	if len(args) > 0 {
		p, ok := game.ParsePlayer(args[0])
		if !ok {
			return "", errors.Errorf("Unknown player %q", args[0])
		}
		e.g.SetToMove(p)
	}
	if ended, _ := e.g.Ended(); ended {
		return "", ErrGameOver
	}
	col, err := e.generate(context.Background())
	if err != nil {
		return "", err
	}
	if err = e.g.Apply(game.PlayerMove{Player: e.g.ToMove(), Single: col}); err != nil {
		return "", err
	}
	return strconv.Itoa(int(col)), nil
}

func depth(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return strconv.Itoa(e.conf.MaxDepth), nil
	}
	d, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse depth")
	}
	if d < 1 {
		return "", errors.Errorf("Depth must be at least 1. Got %d", d)
	}
	e.conf.MaxDepth = d
	return "", nil
}

func mode(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		if e.conf.Pruning {
			return "ab", nil
		}
		return "plain", nil
	}
	switch args[0] {
	case "ab", "alphabeta":
		e.conf.Pruning = true
	case "plain", "minimax":
		e.conf.Pruning = false
	default:
		return "", errors.Errorf("Unknown mode %q. Expected ab or plain", args[0])
	}
	return "", nil
}

// timelimit accepts a Go duration ("1.5s", "200ms") or "none".
func timelimit(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		if e.conf.TimeLimit == search.NoTimeLimit {
			return "none", nil
		}
		return e.conf.TimeLimit.String(), nil
	}
	if args[0] == "none" {
		e.conf.TimeLimit = search.NoTimeLimit
		return "", nil
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse time limit")
	}
	if d < 0 {
		return "", errors.Errorf("Time limit must not be negative. Got %v", d)
	}
	e.conf.TimeLimit = d
	return "", nil
}

func status(e *Engine) string {
	ended, winner := e.g.Ended()
	switch {
	case !ended:
		return fmt.Sprintf("playing %s", e.g.ToMove())
	case winner == game.NoPlayer:
		return "draw"
	}
	return fmt.Sprintf("won %s", winner)
}

// StandardLib returns the commands an Engine understands by default.
func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),
		"clear_board":      stdlib(clearBoard),
		"showboard":        stdlib(showboard),
		"undo":             stdlib(undo),
		"trace":            stdlib(showTrace),
		"status":           stdlib(status),

		"known_command": stdlib2(knownCommand),
		"boardsize":     stdlib2(boardSize),
		"play":          stdlib2(play),
		"genmove":       stdlib2(genmove),
		"depth":         stdlib2(depth),
		"mode":          stdlib2(mode),
		"timelimit":     stdlib2(timelimit),
		"dot":           stdlib2(dot),
	}
}
