package gif

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meta struct {
	g *c4.Game
}

func (m meta) Name() string      { return "Connect 4" }
func (m meta) GameNumber() int   { return 0 }
func (m meta) State() game.State { return m.g }

func TestEncoder(t *testing.T) {
	g := c4.New(c4.DefaultRows, c4.DefaultCols)
	enc := NewGifEncoder(500, 500)

	assert.Error(t, enc.Flush(), "no writer")

	for _, col := range []game.Single{0, 1, 0, 1, 0, 1, 0} {
		require.NoError(t, g.Apply(game.PlayerMove{Player: g.ToMove(), Single: col}))
		require.NoError(t, enc.Encode(meta{g}))
	}
	assert.Equal(t, 7, enc.Frames())

	var buf bytes.Buffer
	enc.Writer = &buf
	require.NoError(t, enc.Flush())

	decoded, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 7)
	assert.Equal(t, 0, decoded.Delay[0])
	assert.Equal(t, endDelay, decoded.Delay[6])
}
