package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorgonia/connect4/game"
	"github.com/gorgonia/connect4/game/c4"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meta struct {
	g *c4.Game
}

func (m meta) Name() string      { return "Connect 4" }
func (m meta) GameNumber() int   { return 2 }
func (m meta) State() game.State { return m.g }

func TestEncoder(t *testing.T) {
	enc := NewEncoder(zerolog.Nop())
	srv := httptest.NewServer(enc)
	defer srv.Close()

	g := c4.New(c4.DefaultRows, c4.DefaultCols)
	for _, col := range []game.Single{0, 1, 0, 1, 0, 1, 0} {
		require.NoError(t, g.Apply(game.PlayerMove{Player: g.ToMove(), Single: col}))
		require.NoError(t, enc.Encode(meta{g}))
	}

	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer c.Close()

	var m move
	require.NoError(t, c.ReadJSON(&m))
	assert.Equal(t, move{Game: 2, Player: "X", Column: 0}, m)
	for i := 1; i < 7; i++ {
		require.NoError(t, c.ReadJSON(&m))
	}
	assert.Equal(t, move{Game: 2, Player: "X", Column: 0}, m)

	var result info
	require.NoError(t, c.ReadJSON(&result))
	assert.Equal(t, info{Game: 2, Winner: "X"}, result)
}

func TestEncoder_NoListener(t *testing.T) {
	enc := NewEncoder(zerolog.Nop())
	g := c4.New(c4.DefaultRows, c4.DefaultCols)
	for i := 0; i < 100; i++ {
		require.NoError(t, g.Apply(game.PlayerMove{Player: g.ToMove(), Single: game.Single(i % 7)}))
		require.NoError(t, enc.Encode(meta{g}))
		g.UndoLastMove()
	}
	assert.Len(t, enc.msgs, cap(enc.msgs))
}
