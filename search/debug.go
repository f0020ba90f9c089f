//go:build debug
// +build debug

package search

import (
	"bytes"
	"fmt"
)

// lumberjack keeps a verbose per-node log of the search. It only exists in debug builds.
type lumberjack struct {
	*bytes.Buffer
}

func makeLumberJack() lumberjack {
	return lumberjack{
		Buffer: new(bytes.Buffer),
	}
}

func (l *lumberjack) log(msg string, args ...interface{}) {
	fmt.Fprintf(l.Buffer, msg, args...)
	l.WriteByte('\n')
}

func (l *lumberjack) Reset() { l.Buffer.Reset() }

func (l lumberjack) Log() string { return l.String() }
