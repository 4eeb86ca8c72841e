// Package stats accumulates game results and game lengths for the
// automatic game runner.
package stats

import (
	"fmt"
	"math"

	"github.com/tokonoma/hexstack/board"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford).
type Statistic struct {
	n    int
	last float64
	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.n++
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
}

// Merge folds o into s as if all of o's values had been pushed.
func (s *Statistic) Merge(o *Statistic) {
	if o.n == 0 {
		return
	}
	if s.n == 0 {
		*s = *o
		return
	}
	n := s.n + o.n
	delta := o.mean - s.mean
	s.m2 += o.m2 + delta*delta*float64(s.n)*float64(o.n)/float64(n)
	s.mean += delta * float64(o.n) / float64(n)
	s.n = n
	s.last = o.last
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Last() float64 {
	return s.last
}

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Iterations() int {
	return s.n
}

// Outcomes tallies finished games from White's point of view. A White
// win counts 1, a draw 0.5 and a Black win 0.
type Outcomes struct {
	WhiteWins int `yaml:"white_wins"`
	BlackWins int `yaml:"black_wins"`
	Draws     int `yaml:"draws"`

	score Statistic
}

// Record adds one game. won is false for a draw.
func (o *Outcomes) Record(winner board.Player, won bool) {
	switch {
	case !won:
		o.Draws++
		o.score.Push(0.5)
	case winner == board.White:
		o.WhiteWins++
		o.score.Push(1)
	default:
		o.BlackWins++
		o.score.Push(0)
	}
}

func (o *Outcomes) Merge(other *Outcomes) {
	o.WhiteWins += other.WhiteWins
	o.BlackWins += other.BlackWins
	o.Draws += other.Draws
	o.score.Merge(&other.score)
}

func (o *Outcomes) Games() int {
	return o.WhiteWins + o.BlackWins + o.Draws
}

// WhiteScore is White's mean score per game.
func (o *Outcomes) WhiteScore() float64 {
	return o.score.Mean()
}

// Interval returns the bounds of White's mean score at the given
// confidence, in percent.
func (o *Outcomes) Interval(confidence float64) (float64, float64) {
	half := ZVal(confidence) * o.score.StandardError()
	lo := math.Max(0, o.score.Mean()-half)
	hi := math.Min(1, o.score.Mean()+half)
	return lo, hi
}

func (o *Outcomes) String() string {
	lo, hi := o.Interval(95)
	return fmt.Sprintf("+%d =%d -%d  white %.3f [%.3f, %.3f]",
		o.WhiteWins, o.Draws, o.BlackWins, o.WhiteScore(), lo, hi)
}
