// Package game holds the rules engine: positions, move generation, captures,
// terminal detection and the static evaluator.
package game

import (
	"encoding/binary"

	"github.com/cespare/xxhash"

	"github.com/tokonoma/hexstack/board"
)

// Position is a complete game state. It is a plain value: assigning it
// clones it.
type Position struct {
	toPlay board.Player
	pieces [2]board.PieceMap
}

type placement struct {
	x, y    int
	species board.Species
}

// Black's starting layout; White's is its point reflection.
var setupLayout = []placement{
	{0, board.Radius, board.Stack(board.Hand)},
	{1, board.Radius - 1, board.Stack(board.Star)},
	{0, board.Radius - 1, board.Stack(board.Blind)},
	{-1, board.Radius, board.Stack(board.Blind)},
	{2, board.Radius - 2, board.Stack(board.Hand)},
	{-2, board.Radius, board.Flat},
}

// Setup returns the standard starting position, White to move.
func Setup() Position {
	var pos Position
	for _, p := range setupLayout {
		t := board.MustXY(p.x, p.y)
		pos.pieces[board.Black].Set(t, p.species)
		pos.pieces[board.White].Set(t.Antipode(), p.species)
	}
	pos.toPlay = board.White
	return pos
}

func (p Position) ToPlay() board.Player {
	return p.toPlay
}

func (p Position) Pieces(color board.Player) board.PieceMap {
	return p.pieces[color]
}

// PieceAt returns the piece on t, if any. Legal play never puts both colors
// on one cell; White is reported first if an edited position does.
func (p Position) PieceAt(t board.Tile) (board.Piece, bool) {
	for _, c := range board.Players {
		if s, ok := p.pieces[c].Get(t); ok {
			return board.Piece{Color: c, Species: s}, true
		}
	}
	return board.Piece{}, false
}

// Paint is the editor primitive: it clears t for both colors and, when
// brush is non-nil, puts the brush there.
func (p *Position) Paint(t board.Tile, brush *board.Piece) {
	p.pieces[board.White].ClearTile(t)
	p.pieces[board.Black].ClearTile(t)
	if brush != nil {
		p.pieces[brush.Color].Set(t, brush.Species)
	}
}

// FlipToMove hands the move to the other side without moving anything.
func (p *Position) FlipToMove() {
	p.toPlay = p.toPlay.Flip()
}

// Mirror reflects every piece across the x axis. The side to move is kept.
func (p *Position) Mirror() {
	var mirrored [2]board.PieceMap
	for c, pm := range p.pieces {
		for _, e := range pm.Entries() {
			mirrored[c].Set(e.Tile.Mirror(), e.Species)
		}
	}
	p.pieces = mirrored
}

// Hash is a structural hash of the bitplanes and the side to move. Equal
// positions hash equally.
func (p Position) Hash() uint64 {
	var buf [7 * 8]byte
	off := 0
	for _, c := range board.Players {
		flats, t0, t1 := p.pieces[c].Planes()
		for _, plane := range [3]board.BitSet{flats, t0, t1} {
			binary.LittleEndian.PutUint64(buf[off:], uint64(plane))
			off += 8
		}
	}
	binary.LittleEndian.PutUint64(buf[off:], uint64(p.toPlay))
	return xxhash.Sum64(buf[:])
}
