package connect4

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorgonia/connect4/encoding/tree"
	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/gorgonia/connect4/search"
	"github.com/pkg/errors"
)

// ComparePosition is the position both modes are compared on: X in the center, O on top of
// it, X next to it.
func ComparePosition() *c4.Board {
	b := c4.NewBoard(c4.DefaultRows, c4.DefaultCols)
	b.Drop(3, game.X)
	b.Drop(3, game.O)
	b.Drop(4, game.X)
	return b
}

// Trial is one search of a comparison.
type Trial struct {
	search.Result
	Lines []search.Line
}

// Comparison is the outcome of searching the same position with and without pruning.
type Comparison struct {
	Board     *c4.Board
	AlphaBeta Trial
	Plain     Trial
}

// Speedup is how many times faster the pruned search was. It is 0 if the pruned search
// took no measurable time.
func (c Comparison) Speedup() float64 {
	if c.AlphaBeta.Elapsed <= 0 {
		return 0
	}
	return float64(c.Plain.Elapsed) / float64(c.AlphaBeta.Elapsed)
}

// NodeReduction is the percentage of trace lines pruning saved.
func (c Comparison) NodeReduction() float64 {
	if len(c.Plain.Lines) == 0 || len(c.AlphaBeta.Lines) == 0 {
		return 0
	}
	return (1 - float64(len(c.AlphaBeta.Lines))/float64(len(c.Plain.Lines))) * 100
}

// Compare searches b for conf.Player with alpha-beta and then with plain minimax, each
// with its own fresh transposition table and tracer. conf.Pruning is ignored. The
// comparison keeps a copy of b.
func Compare(ctx context.Context, b *c4.Board, conf search.Config) (Comparison, error) {
	retVal := Comparison{Board: b.Clone()}
	for _, pruning := range []bool{true, false} {
		rec := search.NewRecorder()
		e := search.New(conf, search.WithTracer(rec))
		res, err := e.ChooseMove(ctx, b, conf.MaxDepth, pruning, conf.TimeLimit)
		if err != nil {
			return retVal, errors.WithMessage(err, fmt.Sprintf("search with pruning %t failed", pruning))
		}
		t := Trial{Result: res, Lines: rec.Lines()}
		if pruning {
			retVal.AlphaBeta = t
		} else {
			retVal.Plain = t
		}
	}
	return retVal, nil
}

// Report writes the comparison in a human readable form.
func (c Comparison) Report(w io.Writer) {
	fmt.Fprintf(w, "Test board position:\n")
	c.Board.Print(w)
	for i, t := range []struct {
		name string
		Trial
	}{{"With Alpha-Beta Pruning", c.AlphaBeta}, {"Without Alpha-Beta Pruning", c.Plain}} {
		fmt.Fprintf(w, "\n%d. %s:\n", i+1, t.name)
		fmt.Fprintf(w, "   Result: %v, Move: %d\n", t.Score, t.Column)
		fmt.Fprintf(w, "   Time: %.3f seconds\n", t.Elapsed.Seconds())
		fmt.Fprintf(w, "   Nodes visited: %d\n", t.Nodes)
		fmt.Fprintf(w, "   Nodes in tree: %d\n", len(t.Lines))
	}
	fmt.Fprintf(w, "\nComparison Results:\n")
	if s := c.Speedup(); s > 0 {
		fmt.Fprintf(w, "   Speed improvement: %.2fx faster with Alpha-Beta\n", s)
	}
	if len(c.Plain.Lines) > 0 && len(c.AlphaBeta.Lines) > 0 {
		fmt.Fprintf(w, "   Node reduction: %.2f%% with Alpha-Beta\n", c.NodeReduction())
	}
}

// Save writes both trees into dir, as alphabeta_tree_<unix>.txt and nopruning_tree_<unix>.txt.
func (c Comparison) Save(dir string, now time.Time) (ab, plain string, err error) {
	ab = filepath.Join(dir, fmt.Sprintf("alphabeta_tree_%d.txt", now.Unix()))
	if err = tree.Save(ab, c.AlphaBeta.Lines); err != nil {
		return "", "", err
	}
	plain = filepath.Join(dir, fmt.Sprintf("nopruning_tree_%d.txt", now.Unix()))
	if err = tree.Save(plain, c.Plain.Lines); err != nil {
		return ab, "", err
	}
	return ab, plain, nil
}

var treeInfo = []string{
	"Tree Recording captures the complete decision process:",
	"",
	"What gets recorded:",
	"  • ENTER nodes - When algorithm enters a new state",
	"  • LEAF nodes - Terminal or depth-limited positions",
	"  • TERMINAL nodes - Win/loss/draw states",
	"  • IMMEDIATE nodes - Winning moves found",
	"  • TT-HIT nodes - Transposition table cache hits",
	"  • PRUNED branches - Alpha-Beta cutoffs",
	"  • EXIT nodes - Returning from recursive calls",
	"",
	"Information captured:",
	"  • Node type and level",
	"  • Move column",
	"  • Value (score)",
	"  • Alpha-Beta bounds",
	"",
	"Files are saved as text with tree visualization",
}

// TreeInfo writes what the saved search trees contain.
func TreeInfo(w io.Writer) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\n        TREE RECORDING INFORMATION\n%s\n", rule, rule)
	for _, l := range treeInfo {
		fmt.Fprintln(w, l)
	}
}
