package board

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestSetGetAllSpecies(t *testing.T) {
	is := is.New(t)
	var pm PieceMap
	tile := MustXY(0, 0)
	for _, s := range AllSpecies {
		pm.Set(tile, s)
		got, ok := pm.Get(tile)
		is.True(ok)
		is.Equal(got, s)
		is.Equal(pm.Count(), 1)
		is.Equal(pm.LocateSpecies(s), tile.Mask())
	}
	pm.ClearTile(tile)
	_, ok := pm.Get(tile)
	is.True(!ok)
	is.True(pm.IsEmpty())
}

func TestStackingRoundTrip(t *testing.T) {
	is := is.New(t)
	var pm PieceMap
	tile := MustXY(1, -1)
	for _, tall := range Talls {
		pm.Set(tile, Flat)
		pm.Toss(tile, Lone(tall))
		s, _ := pm.Get(tile)
		is.Equal(s, Stack(tall))

		pulled := pm.PullMovingPiece(tile)
		is.Equal(pulled, Lone(tall))
		s, ok := pm.Get(tile)
		is.True(ok)
		is.Equal(s, Flat)
	}
}

func TestPullLonePieces(t *testing.T) {
	is := is.New(t)
	var pm PieceMap
	pm.Set(MustXY(0, 0), LoneStar)
	pm.Set(MustXY(0, 1), Flat)
	is.Equal(pm.PullMovingPiece(MustXY(0, 0)), LoneStar)
	is.Equal(pm.PullMovingPiece(MustXY(0, 1)), Flat)
	is.True(pm.IsEmpty())
}

func TestInvalidTossesPanic(t *testing.T) {
	cases := map[string]func(pm *PieceMap){
		"flat-on-flat":  func(pm *PieceMap) { pm.Toss(MustXY(0, 0), Flat) },
		"flat-on-stack": func(pm *PieceMap) { pm.Toss(MustXY(0, 1), Flat) },
		"tall-on-stack": func(pm *PieceMap) { pm.Toss(MustXY(0, 1), LoneHand) },
		"stack":         func(pm *PieceMap) { pm.Toss(MustXY(1, 1), StackHand) },
		"pull-empty":    func(pm *PieceMap) { pm.PullMovingPiece(MustXY(2, 0)) },
	}
	for name, fn := range cases {
		var pm PieceMap
		pm.Set(MustXY(0, 0), Flat)
		pm.Set(MustXY(0, 1), StackBlind)
		assert.Panics(t, func() { fn(&pm) }, name)
	}
}

func TestLocateSpeciesPartitions(t *testing.T) {
	is := is.New(t)
	var pm PieceMap
	for i, tile := range AllTiles {
		pm.Set(tile, AllSpecies[i%NumSpecies])
	}
	var union BitSet
	total := 0
	for _, s := range AllSpecies {
		loc := pm.LocateSpecies(s)
		is.Equal(union&loc, EmptySet)
		union |= loc
		total += loc.Count()
	}
	is.Equal(union, pm.Occupied())
	is.Equal(total, NumTiles)

	counts := pm.SpeciesCounts()
	is.Equal(counts[Flat], 5)
	is.Equal(counts[StackStar], 4)
	is.Equal(pm.LocateTalls(Hand), pm.LocateSpecies(LoneHand)|pm.LocateSpecies(StackHand))
}

func TestKillAndMask(t *testing.T) {
	is := is.New(t)
	var pm PieceMap
	pm.Set(MustXY(0, 0), StackHand)
	pm.Set(MustXY(1, 0), Flat)
	pm.Set(MustXY(-1, 0), LoneStar)

	killMask := MustXY(0, 0).Mask() | MustXY(-1, 0).Mask()
	before := pm
	killed := pm.Kill(killMask)
	is.Equal(killed, before.Mask(killMask))
	is.Equal(killed.Count(), 2)
	is.Equal(pm.Count(), 1)
	s, _ := killed.Get(MustXY(0, 0))
	is.Equal(s, StackHand)
	_, ok := pm.Get(MustXY(0, 0))
	is.True(!ok)
}

func TestViableTallDestinations(t *testing.T) {
	is := is.New(t)
	var pm PieceMap
	pm.Set(MustXY(0, 0), Flat)
	pm.Set(MustXY(1, 0), LoneBlind)
	pm.Set(MustXY(-1, 0), StackStar)
	viable := pm.ViableTallDestinations()
	is.True(viable.Has(MustXY(0, 0)))
	is.True(!viable.Has(MustXY(1, 0)))
	is.True(!viable.Has(MustXY(-1, 0)))
	is.Equal(viable.Count(), NumTiles-2)
}

func TestFlip(t *testing.T) {
	is := is.New(t)
	var pm PieceMap
	pm.Set(MustXY(0, 3), StackHand)
	pm.Set(MustXY(-2, 3), Flat)
	flipped := pm.Flip()
	s, ok := flipped.Get(MustXY(0, -3))
	is.True(ok)
	is.Equal(s, StackHand)
	s, _ = flipped.Get(MustXY(2, -3))
	is.Equal(s, Flat)
	is.Equal(flipped.Flip(), pm)
}

func TestSpeciesText(t *testing.T) {
	is := is.New(t)
	for _, s := range AllSpecies {
		back, err := ParseSpecies(s.String())
		is.NoErr(err)
		is.Equal(back, s)
	}
	p, err := ParsePiece("bFS")
	is.NoErr(err)
	is.Equal(p, Piece{Color: Black, Species: StackStar})
	is.Equal(p.String(), "bFS")
	_, err = ParsePiece("xF")
	is.True(err != nil)
	assert.InDelta(t, 4.8, StackBlind.Value(), 1e-5)
	is.Equal(LoneHand.Value(), float32(2))
	is.Equal(StackBlind.ToLone(), LoneBlind)
}
