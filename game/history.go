package game

import (
	"fmt"
	"strings"

	"github.com/tokonoma/hexstack/board"
)

// Captured counts the enemy pieces one side has taken, by species code.
type Captured [board.NumSpecies]uint8

func (c *Captured) Extend(species ...board.Species) {
	for _, s := range species {
		c[s]++
	}
}

func (c Captured) Count() int {
	n := 0
	for _, k := range c {
		n += int(k)
	}
	return n
}

// Value is the material worth of everything captured.
func (c Captured) Value() float32 {
	var v float32
	for s, k := range c {
		v += board.Species(s).Value() * float32(k)
	}
	return v
}

func (c Captured) String() string {
	var parts []string
	for s, k := range c {
		if k > 0 {
			parts = append(parts, fmt.Sprintf("%vx%d", board.Species(s), k))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// HistoryEntry records a played move with enough context to display it
// and to step back to the position before it.
type HistoryEntry struct {
	Ply         board.Ply
	StateBefore Position
	StateAfter  Position
	// MovedPiece is what actually travelled: the tall for a stack move.
	MovedPiece board.Species
	// Disambiguate is set when another piece of the same kind could have
	// reached the same destination.
	Disambiguate  bool
	Kills         []board.Entry
	CapturedAfter [2]Captured
}

// Mover is the side that played the entry.
func (h HistoryEntry) Mover() board.Player {
	return h.StateBefore.ToPlay()
}

// String is the compact move notation: piece letter, destination (with the
// origin when ambiguous) and one '*' per capture.
func (h HistoryEntry) String() string {
	var sb strings.Builder
	sb.WriteByte(h.MovedPiece.Letter())
	if h.Disambiguate {
		sb.WriteString(h.Ply.From.String())
	}
	sb.WriteString(h.Ply.To.String())
	sb.WriteString(strings.Repeat("*", len(h.Kills)))
	return sb.String()
}

// ComputeHistoryEntry describes what playing ply from p does. The ply must
// be legal in p.
func (p Position) ComputeHistoryEntry(ply board.Ply, capturedBefore [2]Captured) HistoryEntry {
	active := p.toPlay
	moves := p.ValidMoves()

	probe := p
	moved := probe.pieces[active].PullMovingPiece(ply.From)

	matching := 0
	for _, m := range moves {
		if m.To != ply.To {
			continue
		}
		if s, ok := p.pieces[active].Get(m.From); ok && s.ToLone() == moved {
			matching++
		}
	}
	if matching == 0 {
		panic(fmt.Sprintf("no legal move matches %v %v", moved, ply))
	}

	after := p
	report := after.ApplyMove(ply)
	kills := report.Kills.Entries()

	capturedAfter := capturedBefore
	for _, k := range kills {
		capturedAfter[active].Extend(k.Species)
	}

	return HistoryEntry{
		Ply:           ply,
		StateBefore:   p,
		StateAfter:    after,
		MovedPiece:    moved,
		Disambiguate:  matching > 1,
		Kills:         kills,
		CapturedAfter: capturedAfter,
	}
}
