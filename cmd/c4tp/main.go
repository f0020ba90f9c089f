// Command c4tp speaks the Connect 4 text protocol on stdin and stdout.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gorgonia/connect4/game/c4"
	"github.com/gorgonia/connect4/protocol"
	"github.com/gorgonia/connect4/search"
	"github.com/rs/zerolog"
)

const version = "0.1"

var (
	depth     = flag.Int("depth", 6, "maximum search depth")
	plain     = flag.Bool("plain", false, "search without alpha-beta pruning")
	timeLimit = flag.Duration("timelimit", 5*time.Second, "time budget per genmove. Negative for none")
	rows      = flag.Int("rows", c4.DefaultRows, "board rows")
	cols      = flag.Int("cols", c4.DefaultCols, "board columns")
	logLevel  = flag.String("log-level", "info", "log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	// stdout carries the protocol
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()

	conf := search.DefaultConfig()
	conf.MaxDepth = *depth
	conf.Pruning = !*plain
	conf.TimeLimit = *timeLimit
	if *timeLimit < 0 {
		conf.TimeLimit = search.NoTimeLimit
	}

	e, err := protocol.New(c4.New(*rows, *cols), conf, "connect4", version, protocol.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to start")
	}
	if err = e.Serve(os.Stdin, os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("stopped")
	}
}
