package main

import (
	"net/http"

	"github.com/gorgonia/connect4/game"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type move struct {
	Game   int         `json:"game"`
	Player string      `json:"player"`
	Column game.Single `json:"column"`
}

type info struct {
	Game   int    `json:"game"`
	Winner string `json:"winner"`
}

// Encoder is a structure that sends every move and result to websocket clients as JSON.
// It implements connect4.OutputEncoder. Messages are dropped while nobody listens.
type Encoder struct {
	msgs   chan interface{}
	logger zerolog.Logger
}

var upgrader = websocket.Upgrader{} // use default options

func (enc *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		enc.logger.Warn().Err(err).Msg("upgrade")
		return
	}
	defer c.Close()
	for {
		select {
		case msg := <-enc.msgs:
			if err = c.WriteJSON(msg); err != nil {
				enc.logger.Warn().Err(err).Msg("write")
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

func NewEncoder(logger zerolog.Logger) *Encoder {
	return &Encoder{
		msgs:   make(chan interface{}, 64),
		logger: logger,
	}
}

// Encode a game
func (enc *Encoder) Encode(ms game.MetaState) error {
	g := ms.State()
	last := g.LastMove()
	enc.send(move{
		Game:   ms.GameNumber(),
		Player: playerName(last.Player),
		Column: last.Single,
	})
	if ended, winner := g.Ended(); ended {
		enc.send(info{
			Game:   ms.GameNumber(),
			Winner: playerName(winner),
		})
	}
	return nil
}

func (enc *Encoder) send(msg interface{}) {
	select {
	case enc.msgs <- msg:
	default:
	}
}

// Flush ...
func (enc *Encoder) Flush() error { return nil }

func playerName(p game.Player) string {
	switch p {
	case game.X:
		return "X"
	case game.O:
		return "O"
	}
	return ""
}
