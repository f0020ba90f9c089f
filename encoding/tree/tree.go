// Package tree writes search traces as indented text trees.
package tree

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/gorgonia/connect4/search"
	"github.com/pkg/errors"
)

const (
	branch = "├── "
	pipe   = "│ "
)

// Render returns one string per line. Level 0 is not indented; a line at level n > 0 is
// prefixed by n-1 pipes and a branch.
func Render(lines []search.Line) []string {
	retVal := make([]string, len(lines))
	var sb strings.Builder
	for i, l := range lines {
		if l.Level <= 0 {
			retVal[i] = l.Text
			continue
		}
		sb.Reset()
		for j := 1; j < l.Level; j++ {
			sb.WriteString(pipe)
		}
		sb.WriteString(branch)
		sb.WriteString(l.Text)
		retVal[i] = sb.String()
	}
	return retVal
}

// Encode writes the rendered lines to w, each terminated by a newline.
func Encode(w io.Writer, lines []search.Line) error {
	bw := bufio.NewWriter(w)
	for _, l := range Render(lines) {
		if _, err := bw.WriteString(l); err != nil {
			return errors.WithStack(err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(bw.Flush())
}

// Save writes the rendered lines into filename, replacing it if it exists.
func Save(filename string, lines []search.Line) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "Unable to save tree to %q", filename)
	}
	if err = Encode(f, lines); err != nil {
		f.Close()
		return errors.Wrapf(err, "Unable to save tree to %q", filename)
	}
	return errors.WithStack(f.Close())
}
