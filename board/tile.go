package board

import (
	"fmt"
	"strings"
)

const (
	// RowStride is the distance in bits between two consecutive x columns.
	RowStride = 12

	ShortRadius = 2
	Radius      = 3

	NumTiles = 29
)

// A Tile is a cell of the hex board, stored as its bit index
// (x+2)*RowStride + (y+3). Only 29 of the 64 possible values are valid.
type Tile uint8

// FromXYZ returns the tile at the axial coordinates, or false if the point
// lies outside the board. It panics if x+y+z != 0.
func FromXYZ(x, y, z int) (Tile, bool) {
	if x+y+z != 0 {
		panic(fmt.Sprintf("incorrect axial coords (%d,%d,%d)", x, y, z))
	}
	if x < -ShortRadius || x > ShortRadius ||
		y < -Radius || y > Radius ||
		z < -Radius || z > Radius {
		return 0, false
	}
	return Tile((x+ShortRadius)*RowStride + (y + Radius)), true
}

// MustXYZ is FromXYZ for coordinates known to be on the board.
func MustXYZ(x, y, z int) Tile {
	t, ok := FromXYZ(x, y, z)
	if !ok {
		panic(fmt.Sprintf("(%d,%d,%d) is off the board", x, y, z))
	}
	return t
}

// MustXY is MustXYZ with z derived from x and y.
func MustXY(x, y int) Tile {
	return MustXYZ(x, y, -x-y)
}

func (t Tile) X() int { return int(t)/RowStride - ShortRadius }
func (t Tile) Y() int { return int(t)%RowStride - Radius }
func (t Tile) Z() int { return -t.X() - t.Y() }

// Mask returns the singleton set holding t.
func (t Tile) Mask() BitSet {
	return BitSet(1) << t
}

// Antipode is the 180° rotation of t about the center cell.
func (t Tile) Antipode() Tile {
	return MustXYZ(-t.X(), -t.Y(), -t.Z())
}

// Mirror reflects t across the x axis, swapping y and z.
func (t Tile) Mirror() Tile {
	return MustXYZ(t.X(), t.Z(), t.Y())
}

// House returns the corner that belongs to the given player. A lone enemy
// flat standing on it wins the game for the enemy.
func House(p Player) Tile {
	if p == White {
		return MustXYZ(0, -3, 3)
	}
	return MustXYZ(0, 3, -3)
}

// AllTiles lists the valid tiles in ascending bit order.
var AllTiles = func() []Tile {
	tiles := make([]Tile, 0, NumTiles)
	for x := -ShortRadius; x <= ShortRadius; x++ {
		for y := -Radius; y <= Radius; y++ {
			if t, ok := FromXYZ(x, y, -x-y); ok {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}()

const rowLetters = "abcde"

// columnOffset relates a tile's displayed digit to its y coordinate:
// digit = offset - y.
func columnOffset(x int) int {
	switch {
	case x <= 0:
		return 4
	case x == 1:
		return 3
	default:
		return 2
	}
}

// rowLength is the number of tiles in the row at x.
func rowLength(x int) int {
	return 2*Radius + 1 - abs(x)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// String renders a tile as a row letter followed by a 1-based digit, e.g. "c4".
func (t Tile) String() string {
	x := t.X()
	return fmt.Sprintf("%c%d", rowLetters[x+ShortRadius], columnOffset(x)-t.Y())
}

// ParseTile is the inverse of Tile.String.
func ParseTile(s string) (Tile, error) {
	if len(s) != 2 {
		return 0, &ParseError{Input: s, Err: ErrWrongLength}
	}
	row := strings.IndexByte(rowLetters, lower(s[0]))
	if row < 0 {
		return 0, &ParseError{Input: s, Err: ErrBadRow}
	}
	x := row - ShortRadius
	digit := int(s[1]) - '0'
	if digit < 1 || digit > rowLength(x) {
		return 0, &ParseError{Input: s, Err: ErrBadColumn}
	}
	y := columnOffset(x) - digit
	t, ok := FromXYZ(x, y, -x-y)
	if !ok {
		return 0, &ParseError{Input: s, Err: ErrBadColumn}
	}
	return t, nil
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
