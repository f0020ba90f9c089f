package connect4

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics(t *testing.T) {
	s := makeStatistics()
	a := NewEngineAgent("A", game.X, search.DefaultConfig())
	b := NewEngineAgent("B", game.O, search.DefaultConfig())

	// A wins, draws, then loses
	for _, res := range []struct{ aw, al, d float32 }{{1, 0, 0}, {1, 0, 1}, {1, 1, 1}} {
		a.Wins, a.Loss, a.Draw = res.aw, res.al, res.d
		b.Wins, b.Loss, b.Draw = res.al, res.aw, res.d
		s.update(a)
		s.update(b)
	}
	assert.Equal(t, []string{"A", "B"}, s.Creation)
	assert.InDeltaSlice(t, []float32{1, 0.5, 1.0 / 3}, s.WinRates("A"), 1e-6)
	assert.InDeltaSlice(t, []float32{0, 0, 1.0 / 3}, s.WinRates("B"), 1e-6)
	assert.Nil(t, s.WinRates("C"))

	filename := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, s.Dump(filename))
	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	expected := [][]string{
		{"A", "B"},
		{"1.000", ""},
		{"0.500", ""},
		{"0.333", ""},
		{"", "0.000"},
		{"", "0.000"},
		{"", "0.333"},
	}
	assert.Equal(t, expected, records)
}
