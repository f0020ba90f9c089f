package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorgonia/connect4"
	"github.com/gorgonia/connect4/encoding/gif"
	"github.com/gorgonia/connect4/encoding/mjpeg"
	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/search"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	depth      = flag.Int("depth", 4, "maximum search depth")
	plain      = flag.Bool("plain", false, "search without alpha-beta pruning")
	timeLimit  = flag.Duration("timelimit", 10*time.Second, "time budget per engine move. Negative for none")
	rows       = flag.Int("rows", 6, "board rows")
	cols       = flag.Int("cols", 7, "board columns")
	ttCap      = flag.Int("tt", search.DefaultTTCapacity, "transposition table capacity. 0 disables it")
	traceDir   = flag.String("tracedir", "", "where search trees are saved")
	saveTraces = flag.Bool("savetraces", true, "save the tree of every engine move as it is played")
	logLevel   = flag.String("log-level", "warn", "log level: debug, info, warn, error")
	gifOut     = flag.String("gif", "", "record games into this GIF file")
	serve      = flag.String("serve", "", "serve a live MJPEG stream (/stream) and a websocket move feed (/ws) on this address")
	selfplay   = flag.Int("selfplay", 0, "play this many engine vs engine games instead of the menu")
	stats      = flag.String("stats", "", "dump self play statistics into this CSV file")
)

func main() {
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()

	conf := connect4.DefaultConfig()
	conf.Rows, conf.Cols = *rows, *cols
	conf.Search.MaxDepth = *depth
	conf.Search.Pruning = !*plain
	conf.Search.TimeLimit = *timeLimit
	if *timeLimit < 0 {
		conf.Search.TimeLimit = search.NoTimeLimit
	}
	conf.Search.TTCapacity = *ttCap
	conf.TraceDir = *traceDir
	conf.SaveTraces = *saveTraces
	if !conf.IsValid() {
		logger.Fatal().Interface("config", conf).Msg("invalid configuration")
	}

	var encs multiEncoder
	if *gifOut != "" {
		encs = append(encs, gifFile{Encoder: gif.NewGifEncoder(600, 600), filename: *gifOut})
	}
	var srv *http.Server
	if *serve != "" {
		stream := mjpeg.NewEncoder(600, 600)
		feed := NewEncoder(logger)
		encs = append(encs, stream, feed)

		srv = &http.Server{Addr: *serve, Handler: newRouter(stream, feed)}
	}
	if len(encs) > 0 {
		conf.OutputEncoder = encs
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if srv != nil {
		g.Go(func() error {
			logger.Info().Str("addr", srv.Addr).Msg("serving")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return errors.Wrap(err, "server stopped")
			}
			return nil
		})
	}
	g.Go(func() error {
		if srv != nil {
			defer func() {
				sctx, done := context.WithTimeout(context.Background(), time.Second)
				defer done()
				srv.Shutdown(sctx)
			}()
		}
		if *selfplay > 0 {
			return selfPlay(gctx, conf, logger)
		}
		return menu(gctx, conf, connect4.NewConsole(os.Stdin, os.Stdout), logger)
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func selfPlay(ctx context.Context, conf connect4.Config, logger zerolog.Logger) error {
	conf.SaveTraces = false
	s := connect4.NewSelfPlaySession(conf, logger)
	if err := s.PlayN(ctx, *selfplay); err != nil {
		return errors.WithMessage(err, "self play failed")
	}
	s.Summary(os.Stdout)
	if *stats == "" {
		return nil
	}
	return errors.WithMessage(s.Dump(*stats), "unable to dump statistics")
}

func menu(ctx context.Context, conf connect4.Config, console *connect4.Console, logger zerolog.Logger) error {
	session := connect4.NewHumanSession(conf, console, logger)
	rule := strings.Repeat("=", 50)
	for {
		console.Printf("\n%s\n        CONNECT 4 - TREE RECORDING DEMO\n%s\n", rule, rule)
		console.Printf("1.  Play Game with Tree Recording\n")
		console.Printf("2.  Compare Algorithms with Trees\n")
		console.Printf("3.  Show Tree Recording Info\n")
		console.Printf("4.  Exit\n")

		choice, err := console.Ask("\nChoose an option (1-4): ")
		if err != nil {
			return nil // end of input
		}
		switch choice {
		case "1":
			if err := play(ctx, session, console); err != nil {
				return err
			}
		case "2":
			if err := compare(ctx, conf, console); err != nil {
				return err
			}
		case "3":
			connect4.TreeInfo(os.Stdout)
		case "4":
			console.Printf("Goodbye!\n")
			return nil
		default:
			console.Printf("Invalid choice!\n")
		}
	}
}

func play(ctx context.Context, s *connect4.Session, console *connect4.Console) error {
	console.Printf("Welcome to Connect 4 with Tree Recording!\n")
	console.Printf("  . = empty cell\n  X = You (Human)\n  O = AI\n")
	if s.Config().SaveTraces {
		console.Printf("All AI moves will have decision trees saved!\n")
	}

	pruning, err := console.Mode(s.Config().Search.Pruning)
	if err != nil {
		return err
	}
	s.SetPruning(pruning)

	first, err := console.FirstPlayer(game.X, game.O)
	if err != nil {
		return err
	}
	winner, err := s.PlayOne(ctx, first)
	if err != nil {
		return err
	}
	switch winner {
	case game.X:
		console.Printf("You won! Congratulations!\n")
	case game.O:
		console.Printf("AI won!\n")
	}

	if len(s.Records()) == 0 {
		return nil
	}
	ok, err := console.Confirm("\nSave all game trees?")
	if err != nil || !ok {
		return err
	}
	files, err := s.SaveRecords(s.Config().TraceDir)
	for _, f := range files {
		console.Printf("Saved tree to: %s\n", f)
	}
	return err
}

func compare(ctx context.Context, conf connect4.Config, console *connect4.Console) error {
	console.Printf("\nAlgorithm Comparison with Tree Recording\n%s\n", strings.Repeat("=", 50))
	sconf := conf.Search
	sconf.MaxDepth = 3
	sconf.TimeLimit = 5 * time.Second

	c, err := connect4.Compare(ctx, connect4.ComparePosition(), sconf)
	if err != nil {
		return err
	}
	c.Report(os.Stdout)
	ab, plain, err := c.Save(conf.TraceDir, time.Now())
	if err != nil {
		return err
	}
	console.Printf("Alpha-Beta tree saved to: %s\nNo-Pruning tree saved to: %s\n", ab, plain)
	return nil
}
