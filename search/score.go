package search

import (
	"strconv"

	"github.com/chewxy/math32"
)

// Score is a heuristic value, always from the maximizing player's point of view.
// Wins and losses are +Inf and -Inf.
type Score float32

func Inf() Score    { return Score(math32.Inf(1)) }
func NegInf() Score { return Score(math32.Inf(-1)) }

// IsInf reports whether s is an infinity, according to sign (see math32.IsInf).
func (s Score) IsInf(sign int) bool { return math32.IsInf(float32(s), sign) }

func (s Score) String() string {
	switch {
	case s.IsInf(1):
		return "inf"
	case s.IsInf(-1):
		return "-inf"
	}
	return strconv.FormatFloat(float64(s), 'f', -1, 32)
}

func maxScore(a, b Score) Score {
	if b > a {
		return b
	}
	return a
}

func minScore(a, b Score) Score {
	if b < a {
		return b
	}
	return a
}
