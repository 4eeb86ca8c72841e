package game

import (
	"github.com/tokonoma/hexstack/board"
)

// ApplyReport describes what a move did beyond translating the piece.
type ApplyReport struct {
	Kills board.PieceMap
}

func (r ApplyReport) HasCaptured() bool {
	return !r.Kills.IsEmpty()
}

// ValidMoves lists the legal moves of the side to move.
func (p Position) ValidMoves() []board.Ply {
	return p.ValidMovesFor(p.toPlay)
}

// ValidMovesFor lists the moves color could make if it were on move.
// Pieces are visited in tile order and so are their destinations.
func (p Position) ValidMovesFor(color board.Player) []board.Ply {
	own := p.pieces[color]
	oppFree := p.pieces[color.Flip()].Occupied().Complement()
	tallDest := oppFree & own.ViableTallDestinations()
	flatDest := oppFree & own.Occupied().Complement()

	var moves []board.Ply
	for _, e := range own.Entries() {
		allowed := tallDest
		if e.Species == board.Flat {
			allowed = flatDest
		}
		dests := e.Tile.Mask().MoveDestinations(color, e.Species) & allowed
		for dests != 0 {
			moves = append(moves, board.Ply{From: e.Tile, To: dests.PopTile()})
		}
	}
	return moves
}

// countMoves is len(ValidMovesFor(color)) without the allocation.
func (p Position) countMoves(color board.Player) int {
	own := p.pieces[color]
	oppFree := p.pieces[color.Flip()].Occupied().Complement()
	tallDest := oppFree & own.ViableTallDestinations()
	flatDest := oppFree & own.Occupied().Complement()

	n := 0
	for _, s := range board.AllSpecies {
		allowed := tallDest
		if s == board.Flat {
			allowed = flatDest
		}
		from := own.LocateSpecies(s)
		for from != 0 {
			t := from.PopTile()
			n += (t.Mask().MoveDestinations(color, s) & allowed).Count()
		}
	}
	return n
}

// DoubleAttackMap is the set of cells reached by at least two of the
// attacker's pieces.
func (p Position) DoubleAttackMap(attacker board.Player) board.BitSet {
	var dc board.DoubleCounter
	for _, e := range p.pieces[attacker].Entries() {
		dc.Add(e.Tile.Mask().MoveDestinations(attacker, e.Species))
	}
	return dc.Doubles()
}

func (p *Position) stageTranslate(ply board.Ply) board.Species {
	own := &p.pieces[p.toPlay]
	moving := own.PullMovingPiece(ply.From)
	own.Toss(ply.To, moving)
	return moving
}

func (p *Position) stageAttackScan(attacker board.Player) board.PieceMap {
	return p.pieces[attacker.Flip()].Kill(p.DoubleAttackMap(attacker))
}

// ApplyMove plays ply for the side to move: the piece is translated, every
// enemy piece on a cell the mover now attacks twice is removed, and the
// move passes to the opponent. The ply must come from ValidMoves; anything
// else may panic or corrupt the position.
func (p *Position) ApplyMove(ply board.Ply) ApplyReport {
	p.stageTranslate(ply)
	kills := p.stageAttackScan(p.toPlay)
	p.toPlay = p.toPlay.Flip()
	return ApplyReport{Kills: kills}
}

// IsWonHome detects a house capture: a lone enemy flat on a player's house.
func (p Position) IsWonHome() (board.Player, bool) {
	for _, defender := range board.Players {
		attacker := defender.Flip()
		if s, ok := p.pieces[attacker].Get(board.House(defender)); ok && s == board.Flat {
			return attacker, true
		}
	}
	return board.White, false
}

// IsWon reports the winner of a decided position. A house capture is
// checked first; otherwise a side to move without legal moves has lost.
func (p Position) IsWon() (board.Player, bool) {
	if w, ok := p.IsWonHome(); ok {
		return w, true
	}
	if p.countMoves(p.toPlay) == 0 {
		return p.toPlay.Flip(), true
	}
	return board.White, false
}
