// Package protocol implements a line oriented text protocol to play Connect 4 against the
// search engine, modelled after GTP.
//
// A command is an optional numeric id, a command name and arguments, separated by spaces.
// A successful response is "= [id] result" and a failure is "? [id] message", each followed
// by an empty line.
package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/gorgonia/connect4/search"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Version is the version of the protocol.
const Version = "1"

// Engine holds a game and the searchers that play it.
type Engine struct {
	g    *c4.Game
	conf search.Config

	known map[string]Command

	ch   chan string
	ret  chan string
	done bool

	tt        *search.TranspositionTable
	searchers map[game.Player]*search.Engine
	rec       *search.Recorder
	r         *rand.Rand
	logger    zerolog.Logger

	name, version string
}

// Option configures an Engine.
type Option func(e *Engine)

// WithCommands replaces the standard commands.
func WithCommands(known map[string]Command) Option {
	return func(e *Engine) { e.known = known }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRand sets the source of the moves played when a search finds none in time.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.r = r }
}

// New creates an Engine playing g. conf.Player is ignored: genmove searches for whoever is
// to move.
func New(g *c4.Game, conf search.Config, name, version string, opts ...Option) (*Engine, error) {
	if g == nil {
		g = c4.New(c4.DefaultRows, c4.DefaultCols)
	}
	if conf.Player == game.NoPlayer {
		conf.Player = game.O
	}
	if !conf.IsValid() {
		return nil, errors.Errorf("search config is not valid: %+v", conf)
	}
	e := &Engine{
		g:         g,
		conf:      conf,
		known:     StandardLib(),
		searchers: make(map[game.Player]*search.Engine),
		rec:       search.NewRecorder(),
		r:         rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    zerolog.Nop(),
		name:      name,
		version:   version,
	}
	for _, opt := range opts {
		opt(e)
	}
	if conf.TTCapacity > 0 {
		tt, err := search.NewTranspositionTable(conf.TTCapacity)
		if err != nil {
			return nil, err
		}
		e.tt = tt
	}
	return e, nil
}

// State returns the game being played.
func (e *Engine) State() *c4.Game { return e.g }

// Config returns the current search settings.
func (e *Engine) Config() search.Config { return e.conf }

// Start runs the engine in a goroutine. Every command sent on input gets exactly one
// response on output, except blank lines, which get none. The output channel is closed
// after quit, or when input is closed.
func (e *Engine) Start() (input chan<- string, output <-chan string) {
	e.ch = make(chan string)
	e.ret = make(chan string)
	go e.start()
	return e.ch, e.ret
}

func (e *Engine) start() {
	defer close(e.ret)
	for cmd := range e.ch {
		resp, ok := e.Exec(cmd)
		if !ok {
			continue
		}
		e.ret <- resp
		if e.done {
			return
		}
	}
}

// Serve reads commands from r and writes the responses to w, until quit or the end of r.
func (e *Engine) Serve(r io.Reader, w io.Writer) error {
	s := bufio.NewScanner(r)
	for s.Scan() {
		resp, ok := e.Exec(s.Text())
		if !ok {
			continue
		}
		if _, err := io.WriteString(w, resp); err != nil {
			return errors.WithStack(err)
		}
		if e.done {
			return nil
		}
	}
	return errors.WithStack(s.Err())
}

// Exec runs one command and returns its response. ok is false for blank lines.
func (e *Engine) Exec(cmd string) (resp string, ok bool) {
	id, x, args, err := e.parse(cmd)
	if x == nil && err == nil {
		return "", false
	}
	if err != nil {
		return handleErr(id, err), true
	}
	e.logger.Debug().Int("id", id).Str("cmd", cmd).Msg("command")
	id, result, err := x.Do(id, args, e)
	if err != nil {
		e.logger.Warn().Int("id", id).Str("cmd", cmd).Err(err).Msg("command failed")
	}
	return handleResult(id, result, err), true
}

func (e *Engine) parse(cmd string) (id int, x Command, args []string, err error) {
	cmd = preprocess(cmd)
	tokens := strings.Fields(cmd)
	id = -1
	if len(tokens) == 0 {
		return id, nil, nil, nil
	}
	if i, err := strconv.Atoi(tokens[0]); err == nil {
		// we've consumed ID
		id = i
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return id, nil, nil, nil // an id on its own is ignored
	}

	var ok bool
	if x, ok = e.known[tokens[0]]; !ok {
		return id, nil, nil, errors.Errorf("Unknown command %q", tokens[0])
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return
}

// searcher returns the search engine maximizing for p.
func (e *Engine) searcher(p game.Player) *search.Engine {
	if s, ok := e.searchers[p]; ok {
		return s
	}
	conf := e.conf
	conf.Player = p
	opts := []search.Option{search.WithTracer(e.rec), search.WithLogger(e.logger)}
	if e.tt != nil {
		opts = append(opts, search.WithTable(e.tt))
	}
	s := search.New(conf, opts...)
	e.searchers[p] = s
	return s
}

// generate picks a move for whoever is to move. A random legal move is played when the
// search ran out of time before completing a single depth. A cancelled ctx is an error.
func (e *Engine) generate(ctx context.Context) (game.Single, error) {
	b := e.g.Position()
	moves := b.ValidMoves()
	if len(moves) == 0 {
		return game.NoMove, search.ErrNoLegalMove
	}
	p := e.g.ToMove()
	res, err := e.searcher(p).ChooseMove(ctx, b, e.conf.MaxDepth, e.conf.Pruning, e.conf.TimeLimit)
	if err == nil {
		e.logger.Info().
			Stringer("score", res.Score).
			Int32("column", int32(res.Column)).
			Int("depth", res.Depth).
			Int("nodes", res.Nodes).
			Dur("elapsed", res.Elapsed).
			Msg("genmove")
		return res.Column, nil
	}
	if ctx.Err() != nil || errors.Cause(err) != search.ErrNoLegalMove {
		return game.NoMove, err
	}
	col := game.Single(moves[e.r.Intn(len(moves))])
	e.logger.Warn().Int32("column", int32(col)).Msg("search timed out. Playing a random move")
	return col, nil
}

func preprocess(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}

	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}
