package board

import (
	"math/bits"
	"strings"
)

// BitSet is a set of tiles, one bit per tile id.
type BitSet uint64

// BoardMask holds every valid tile.
var BoardMask = func() BitSet {
	var b BitSet
	for _, t := range AllTiles {
		b |= t.Mask()
	}
	return b
}()

const (
	EmptySet BitSet = 0
	m               = RowStride
)

// Offsets are written from White's point of view; Black subtracts them.
var (
	flatOffsets  = []int{1, m, -m + 1}
	handOffsets  = []int{2, -m, m - 1, -1}
	blindOffsets = []int{2 * m, -2*m + 2, -m, m - 1, -2}
	starOffsets  = []int{-2*m + 1, 2*m - 1, m + 1, -m - 1, m - 2, -m + 2}
)

func offsetsFor(s Species) []int {
	if s == Flat {
		return flatOffsets
	}
	switch s.Tall() {
	case Hand:
		return handOffsets
	case Blind:
		return blindOffsets
	case Star:
		return starOffsets
	}
	panic("no offsets for species " + s.String())
}

func shift(b BitSet, s int) BitSet {
	if s >= 0 {
		return b << uint(s)
	}
	return b >> uint(-s)
}

// MoveDestinations returns every cell a piece of the given species and
// color could reach from any member of b, ignoring occupancy. Stacks move
// like their tall piece.
func (b BitSet) MoveDestinations(color Player, s Species) BitSet {
	var out BitSet
	for _, off := range offsetsFor(s) {
		if color == Black {
			off = -off
		}
		out |= shift(b, off)
	}
	return out & BoardMask
}

func (b BitSet) Has(t Tile) bool {
	return b&t.Mask() != 0
}

func (b BitSet) With(t Tile) BitSet {
	return b | t.Mask()
}

func (b BitSet) Without(t Tile) BitSet {
	return b &^ t.Mask()
}

// Complement is the set of valid tiles missing from b.
func (b BitSet) Complement() BitSet {
	return ^b & BoardMask
}

func (b BitSet) Count() int {
	return bits.OnesCount64(uint64(b & BoardMask))
}

func (b BitSet) IsEmpty() bool {
	return b&BoardMask == 0
}

// PopTile removes and returns the lowest tile in b. b must not be empty.
func (b *BitSet) PopTile() Tile {
	t := Tile(bits.TrailingZeros64(uint64(*b)))
	*b &= *b - 1
	return t
}

// Tiles lists the members of b in ascending bit order.
func (b BitSet) Tiles() []Tile {
	b &= BoardMask
	tiles := make([]Tile, 0, b.Count())
	for b != 0 {
		tiles = append(tiles, b.PopTile())
	}
	return tiles
}

func (b BitSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, t := range b.Tiles() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// DoubleCounter tracks which cells were added at least twice.
type DoubleCounter struct {
	once  BitSet
	twice BitSet
}

func (d *DoubleCounter) Add(b BitSet) {
	d.twice |= d.once & b
	d.once |= b
}

func (d *DoubleCounter) Doubles() BitSet {
	return d.twice
}
