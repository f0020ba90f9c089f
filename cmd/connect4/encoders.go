package main

import (
	"os"

	"github.com/gorgonia/connect4"
	"github.com/gorgonia/connect4/encoding/gif"
	"github.com/gorgonia/connect4/game"
	"github.com/pkg/errors"
)

// multiEncoder sends every state to all of its encoders.
type multiEncoder []connect4.OutputEncoder

func (m multiEncoder) Encode(ms game.MetaState) error {
	for _, enc := range m {
		if err := enc.Encode(ms); err != nil {
			return err
		}
	}
	return nil
}

func (m multiEncoder) Flush() error {
	for _, enc := range m {
		if err := enc.Flush(); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// gifFile rewrites filename with every frame so far on each Flush.
type gifFile struct {
	*gif.Encoder
	filename string
}

func (g gifFile) Flush() error {
	f, err := os.Create(g.filename)
	if err != nil {
		return errors.WithStack(err)
	}
	g.Writer = f
	if err = g.Encoder.Flush(); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}
