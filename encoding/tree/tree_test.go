package tree

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorgonia/connect4/game/c4"
	"github.com/gorgonia/connect4/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	lines := []search.Line{
		{Level: 0, Text: "ENTER | col=None | val=MAX (a=-inf, b=inf)"},
		{Level: 1, Text: "LEAF | col=3 | val=6 (a=-inf, b=inf)"},
		{Level: 2, Text: "PRUNED | a=6 | b=3"},
		{Level: 3, Text: "deep"},
	}
	expected := []string{
		"ENTER | col=None | val=MAX (a=-inf, b=inf)",
		"├── LEAF | col=3 | val=6 (a=-inf, b=inf)",
		"│ ├── PRUNED | a=6 | b=3",
		"│ │ ├── deep",
	}
	assert.Equal(t, expected, Render(lines))
	assert.Empty(t, Render(nil))
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []search.Line{{Level: 0, Text: "a"}, {Level: 1, Text: "b"}}))
	assert.Equal(t, "a\n├── b\n", buf.String())
}

func TestSave(t *testing.T) {
	rec := search.NewRecorder()
	conf := search.DefaultConfig()
	conf.MaxDepth = 2
	conf.TimeLimit = search.NoTimeLimit
	e := search.New(conf, search.WithTracer(rec))
	_, err := e.Choose(context.Background(), c4.NewBoard(c4.DefaultRows, c4.DefaultCols))
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "tree.txt")
	require.NoError(t, Save(filename, rec.Lines()))

	bs, err := os.ReadFile(filename)
	require.NoError(t, err)
	got := strings.Split(strings.TrimSuffix(string(bs), "\n"), "\n")
	require.Len(t, got, rec.Len())
	assert.True(t, strings.HasPrefix(got[0], "ENTER | col=None | val=MAX"))
	assert.True(t, strings.HasPrefix(got[len(got)-1], "EXIT | col=None"))

	assert.Error(t, Save(filepath.Join(t.TempDir(), "missing", "tree.txt"), nil))
}
