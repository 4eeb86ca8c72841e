package game

import (
	"fmt"
	"math"

	"github.com/tokonoma/hexstack/board"
)

const (
	// FiniteThreshold separates heuristic scores from decided ones.
	FiniteThreshold = 500.0
	// WinBaseline is the score of a position already won.
	WinBaseline = 1000.0
)

// Score is an evaluation from White's point of view. Values with magnitude
// below FiniteThreshold are heuristic; ±(WinBaseline - N) means the sign's
// side wins in N plies.
type Score float32

const Even Score = 0

// Finite wraps a heuristic value. It panics if v is not below the threshold.
func Finite(v float32) Score {
	if math.Abs(float64(v)) >= FiniteThreshold {
		panic(fmt.Sprintf("heuristic value %v out of finite range", v))
	}
	return Score(v)
}

// WinNow is the score of a position already won by the given player.
func WinNow(winner board.Player) Score {
	return Score(WinBaseline * winner.Multiplier())
}

func (s Score) IsFinite() bool {
	return math.Abs(float64(s)) < FiniteThreshold
}

// Propagate ages a decided score by one ply as it moves up the tree, so that
// quicker wins are preferred and slower losses are preferred.
func (s Score) Propagate() Score {
	switch {
	case s.IsFinite():
		return s
	case s > 0:
		return s - 1
	default:
		return s + 1
	}
}

// MovesToWin is the number of plies until the decided outcome. It panics on
// a finite score.
func (s Score) MovesToWin() int {
	if s.IsFinite() {
		panic("MovesToWin on a finite score")
	}
	return int(math.Round(WinBaseline - math.Abs(float64(s))))
}

// Winner returns the side a decided score favours.
func (s Score) Winner() (board.Player, bool) {
	if s.IsFinite() {
		return board.White, false
	}
	if s > 0 {
		return board.White, true
	}
	return board.Black, true
}

// Better reports whether s is strictly preferable to other for p.
func (s Score) Better(other Score, p board.Player) bool {
	if p == board.White {
		return s > other
	}
	return s < other
}

func (s Score) String() string {
	if s.IsFinite() {
		return fmt.Sprintf("%.3f", float32(s))
	}
	sign := '+'
	if s < 0 {
		sign = '-'
	}
	return fmt.Sprintf("%c∞ (%d)", sign, s.MovesToWin())
}
