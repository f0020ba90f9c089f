package connect4

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorgonia/connect4/encoding/tree"
	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/gorgonia/connect4/search"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Arena is where two agents play.
type Arena struct {
	r    *rand.Rand
	game *c4.Game
	A, B *Agent

	// state
	currentPlayer *Agent
	records       []MoveRecord
	logger        zerolog.Logger
	out           io.Writer
	now           func() time.Time

	name       string
	gameNumber int    // which game is this in
	gameID     string // unique id of the game in progress, or of the last one

	traceDir   string
	saveTraces bool
}

// MakeArena makes an arena for a rows x cols game between a and b, who must sit as
// different players.
func MakeArena(rows, cols int, a, b *Agent, name string) Arena {
	if a.Player == b.Player || a.Player == game.NoPlayer || b.Player == game.NoPlayer {
		panic(fmt.Sprintf("agents must play different sides. Got %v and %v", a.Player, b.Player))
	}
	if name == "" {
		name = "UNKNOWN GAME"
	}
	return Arena{
		r:      rand.New(rand.NewSource(time.Now().UnixNano())),
		game:   c4.New(rows, cols),
		A:      a,
		B:      b,
		logger: zerolog.Nop(),
		out:    io.Discard,
		now:    time.Now,
		name:   name,
	}
}

func NewArena(rows, cols int, a, b *Agent, name string) *Arena {
	ar := MakeArena(rows, cols, a, b, name)
	return &ar
}

// SetLogger sets the structured logger of the arena.
func (a *Arena) SetLogger(l zerolog.Logger) { a.logger = l }

// SetOutput makes the arena narrate the game (boards, moves, results) to w.
func (a *Arena) SetOutput(w io.Writer) { a.out = w }

// SetRand sets the source of random first players and of fallback moves.
func (a *Arena) SetRand(r *rand.Rand) { a.r = r }

// SaveTraces makes the arena save the tree of every engine move into dir as it is played.
func (a *Arena) SaveTraces(dir string) {
	a.saveTraces = true
	a.traceDir = dir
}

// Play plays a game and returns the winner. If it is a draw, the returned player is
// game.NoPlayer. first is who moves first; game.NoPlayer picks at random.
//
// When an engine finds no move in time, a random legal move is played for it. When ctx is
// done the game is abandoned and ctx's error returned.
func (a *Arena) Play(ctx context.Context, first game.Player, enc OutputEncoder) (winner game.Player, err error) {
	if first == game.NoPlayer {
		first = a.A.Player
		if a.r.Intn(2) == 1 {
			first = a.B.Player
		}
		fmt.Fprintf(a.out, "Player %s starts first (random)\n", first)
	}
	a.game.Reset()
	a.game.SetToMove(first)
	a.currentPlayer = a.agentFor(first)
	a.records = a.records[:0]
	a.gameID = uuid.NewString()
	a.logger.Info().Str("game_id", a.gameID).Int("game", a.gameNumber).Stringer("first", playerStringer(first)).Msg("new game")

	var ended bool
	for ended, winner = a.game.Ended(); !ended; ended, winner = a.game.Ended() {
		if err = ctx.Err(); err != nil {
			return game.NoPlayer, errors.WithStack(err)
		}
		a.printBoard()
		moveNumber := a.game.MoveNumber() + 1

		var col game.Single
		if col, err = a.move(ctx, moveNumber); err != nil {
			return game.NoPlayer, err
		}
		if err = a.game.Apply(game.PlayerMove{Player: a.currentPlayer.Player, Single: col}); err != nil {
			return game.NoPlayer, errors.WithMessage(err, "agent made an invalid move")
		}
		a.logger.Debug().
			Str("game_id", a.gameID).
			Int("move", moveNumber).
			Str("agent", a.currentPlayer.name).
			Int32("column", int32(col)).
			Uint32("position", uint32(a.game.Hash())).
			Msg("played")

		a.switchPlayer()
		if enc != nil {
			if err = enc.Encode(a); err != nil {
				a.logger.Warn().Err(err).Msg("unable to encode state")
			}
		}
	}
	a.printBoard()

	switch {
	case winner == game.NoPlayer:
		a.A.Draw++
		a.B.Draw++
		fmt.Fprintf(a.out, "It's a tie!\n")
	case winner == a.A.Player:
		a.A.Wins++
		a.B.Loss++
		fmt.Fprintf(a.out, "%s won!\n", a.A.name)
	case winner == a.B.Player:
		a.B.Wins++
		a.A.Loss++
		fmt.Fprintf(a.out, "%s won!\n", a.B.name)
	}
	a.logger.Info().
		Str("game_id", a.gameID).
		Int("game", a.gameNumber).
		Stringer("winner", playerStringer(winner)).
		Int("moves", a.game.MoveNumber()).
		Uint32("position", uint32(a.game.Hash())).
		Msg("game over")
	return winner, nil
}

// move asks the current agent for a column. Engine moves are recorded, and saved if asked.
func (a *Arena) move(ctx context.Context, moveNumber int) (game.Single, error) {
	ag := a.currentPlayer
	if ag.IsHuman() {
		col, err := ag.Search(ctx, a.game)
		if err != nil {
			return game.NoMove, err
		}
		fmt.Fprintf(a.out, "%s played in column %d\n", ag.name, col)
		return col, nil
	}

	fmt.Fprintf(a.out, "%s is thinking...\n", ag.name)
	col, err := ag.Search(ctx, a.game)
	switch {
	case err == nil:
	case errors.Cause(err) == search.ErrNoLegalMove:
		moves := a.game.Position().ValidMoves()
		if len(moves) == 0 {
			return game.NoMove, err
		}
		col = game.Single(moves[a.r.Intn(len(moves))])
		fmt.Fprintf(a.out, "%s timed out, playing random move %d\n", ag.name, col)
		a.logger.Warn().Str("agent", ag.name).Int32("column", int32(col)).Msg("search timed out. Playing a random move")
		return col, nil
	default:
		return game.NoMove, err
	}

	res := ag.LastResult()
	mode := "with Alpha-Beta"
	if !ag.Engine.Pruning {
		mode = "without pruning"
	}
	fmt.Fprintf(a.out, "%s chose column %d (value: %v) - %s\n", ag.name, col, res.Score, mode)

	lines := ag.Lines()
	if len(lines) == 0 {
		return col, nil
	}
	a.records = append(a.records, MoveRecord{
		GameID:     a.gameID,
		MoveNumber: moveNumber,
		Player:     ag.Player,
		Column:     col,
		Result:     res,
		Lines:      lines,
	})
	if a.saveTraces {
		filename := filepath.Join(a.traceDir, fmt.Sprintf("ai_move_%d.txt", a.now().Unix()))
		if err := tree.Save(filename, lines); err != nil {
			a.logger.Warn().Err(err).Msg("unable to save tree")
		} else {
			fmt.Fprintf(a.out, "%s decision tree saved to: %s\n", ag.name, filename)
		}
	}
	return col, nil
}

// Records returns the search trees of the engine moves of the last game.
func (a *Arena) Records() []MoveRecord { return a.records }

// SaveRecords saves the tree of every engine move of the last game into dir, as
// full_game_move_<move>_col_<column>.txt. It returns the files written.
func (a *Arena) SaveRecords(dir string) ([]string, error) {
	var filenames []string
	var errs manyErr
	for _, rec := range a.records {
		filename := filepath.Join(dir, fmt.Sprintf("full_game_move_%d_col_%d.txt", rec.MoveNumber, rec.Column))
		if err := tree.Save(filename, rec.Lines); err != nil {
			errs = append(errs, err)
			continue
		}
		filenames = append(filenames, filename)
	}
	return filenames, errs.asError()
}

func (a *Arena) GameNumber() int       { return a.gameNumber }
func (a *Arena) GameID() string        { return a.gameID }
func (a *Arena) Name() string          { return a.name }
func (a *Arena) State() game.State     { return a.game }
func (a *Arena) Game() *c4.Game        { return a.game }
func (a *Arena) CurrentPlayer() *Agent { return a.currentPlayer }

func (a *Arena) printBoard() {
	if a.out == io.Discard {
		return
	}
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(a.out, "\n%s\n   %s\n%s\n", rule, strings.ToUpper(a.name), rule)
	a.game.Position().Print(a.out)
	fmt.Fprintln(a.out)
}

func (a *Arena) agentFor(p game.Player) *Agent {
	switch p {
	case a.A.Player:
		return a.A
	case a.B.Player:
		return a.B
	}
	panic(fmt.Sprintf("no agent plays %v", p))
}

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.A:
		a.currentPlayer = a.B
	case a.B:
		a.currentPlayer = a.A
	}
}

// playerStringer renders a player as X, O or None in logs.
type playerStringer game.Player

func (p playerStringer) String() string {
	if game.Player(p) == game.NoPlayer {
		return "None"
	}
	return fmt.Sprintf("%s", game.Player(p))
}
