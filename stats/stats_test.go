package stats

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/tokonoma/hexstack/board"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		lengths []int
		mean    float64
		stdev   float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, l := range c.lengths {
			s.Push(float64(l))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Iterations(), len(c.lengths))
	}
}

func TestMergeMatchesSinglePass(t *testing.T) {
	is := is.New(t)
	values := []float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}
	var whole, left, right Statistic
	for i, v := range values {
		whole.Push(v)
		if i < 4 {
			left.Push(v)
		} else {
			right.Push(v)
		}
	}
	left.Merge(&right)
	is.Equal(left.Iterations(), whole.Iterations())
	is.True(FuzzyEqual(left.Mean(), whole.Mean()))
	is.True(FuzzyEqual(left.Variance(), whole.Variance()))

	var empty Statistic
	empty.Merge(&whole)
	is.True(FuzzyEqual(empty.Mean(), whole.Mean()))
}

func TestZVal(t *testing.T) {
	assert.InDelta(t, 1.959964, ZVal(95), 1e-5)
	assert.InDelta(t, 2.575829, ZVal(99), 1e-5)
}

func TestOutcomes(t *testing.T) {
	is := is.New(t)
	var o Outcomes
	o.Record(board.White, true)
	o.Record(board.White, true)
	o.Record(board.Black, true)
	o.Record(board.White, false)
	is.Equal(o.Games(), 4)
	is.Equal(o.WhiteWins, 2)
	is.Equal(o.BlackWins, 1)
	is.Equal(o.Draws, 1)
	is.True(FuzzyEqual(o.WhiteScore(), 0.625))

	lo, hi := o.Interval(95)
	is.True(lo >= 0 && lo < 0.625)
	is.True(hi <= 1 && hi > 0.625)

	var more Outcomes
	more.Record(board.Black, true)
	o.Merge(&more)
	is.Equal(o.Games(), 5)
	is.True(FuzzyEqual(o.WhiteScore(), 0.5))
}
