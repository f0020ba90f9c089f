package connect4

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// Statistics are the cumulative results of every agent, one entry per game played.
type Statistics struct {
	Creation []string
	Wins     map[string][]float32
	Losses   map[string][]float32
	Draws    map[string][]float32
}

func makeStatistics() Statistics {
	return Statistics{
		Creation: make([]string, 0, 64),
		Wins:     make(map[string][]float32),
		Losses:   make(map[string][]float32),
		Draws:    make(map[string][]float32),
	}
}

func (s *Statistics) update(A *Agent) {
	aname := A.name

	if _, ok := s.Wins[aname]; !ok {
		s.Creation = append(s.Creation, aname)
	}

	s.Wins[aname] = append(s.Wins[aname], A.Wins)
	s.Losses[aname] = append(s.Losses[aname], A.Loss)
	s.Draws[aname] = append(s.Draws[aname], A.Draw)
}

// WinRates returns the win rate of the agent after each game.
func (s *Statistics) WinRates(agent string) []float32 {
	wins := s.Wins[agent]
	if len(wins) == 0 {
		return nil
	}
	rates := make([]float32, len(wins))
	total := make([]float32, len(wins))
	copy(rates, wins)
	copy(total, wins)
	vecf32.Add(total, s.Losses[agent])
	vecf32.Add(total, s.Draws[agent])
	vecf32.Div(rates, total)
	return rates
}

// Dump writes the win rates as CSV: a header of agent names, then one row per game
// per agent, with only that agent's column filled in.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(s.Creation); err != nil {
		return errors.WithStack(err)
	}
	var records [][]string
	for i, agent := range s.Creation {
		for _, winRate := range s.WinRates(agent) {
			record := make([]string, len(s.Creation))
			record[i] = strconv.FormatFloat(float64(winRate), 'f', 3, 32)
			records = append(records, record)
		}
	}
	if err := w.WriteAll(records); err != nil {
		return errors.WithStack(err)
	}
	w.Flush()
	return errors.WithStack(w.Error())
}
