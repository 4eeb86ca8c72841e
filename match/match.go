// Package match tracks a game in progress: the current position, the moves
// played so far, captures and the opening each side chose.
package match

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/tokonoma/hexstack/board"
	"github.com/tokonoma/hexstack/game"
)

var (
	ErrGameOver         = errors.New("game is over")
	ErrIllegalMove      = errors.New("illegal move")
	ErrNonStandardSetup = errors.New("game did not start from the standard setup")
	ErrNotEnoughMoves   = errors.New("not enough moves played")
)

// Ply index in the history after which each side's half opening is known.
var halfOpeningPly = [2]int{2, 3}

type halfOpeningResult struct {
	opening *HalfOpening
	err     error
}

type MatchState struct {
	state      game.Position
	validMoves []board.Ply
	winner     board.Player
	won        bool
	history    []game.HistoryEntry

	halfOpenings [2]halfOpeningResult
}

// Setup starts a match from the standard position.
func Setup() *MatchState {
	return SetupFrom(game.Setup())
}

// SetupFrom starts a match from an arbitrary position.
func SetupFrom(pos game.Position) *MatchState {
	ms := &MatchState{state: pos}
	ms.refresh()
	return ms
}

func (ms *MatchState) refresh() {
	ms.validMoves = ms.state.ValidMoves()
	ms.winner, ms.won = ms.state.IsWon()
	for _, p := range board.Players {
		op, err := ms.detectHalfOpening(p)
		ms.halfOpenings[p] = halfOpeningResult{opening: op, err: err}
	}
}

func (ms *MatchState) State() game.Position {
	return ms.state
}

func (ms *MatchState) ToPlay() board.Player {
	return ms.state.ToPlay()
}

func (ms *MatchState) ValidMoves() []board.Ply {
	return ms.validMoves
}

func (ms *MatchState) IsWon() (board.Player, bool) {
	return ms.winner, ms.won
}

func (ms *MatchState) History() []game.HistoryEntry {
	return ms.history
}

func (ms *MatchState) Pieces(color board.Player) board.PieceMap {
	return ms.state.Pieces(color)
}

// ApplyMove plays ply for the side to move and records it.
func (ms *MatchState) ApplyMove(ply board.Ply) error {
	if ms.won {
		return ErrGameOver
	}
	if !slices.Contains(ms.validMoves, ply) {
		return fmt.Errorf("%v: %w", ply, ErrIllegalMove)
	}
	entry := ms.state.ComputeHistoryEntry(ply, ms.CurrentCaptured())
	ms.history = append(ms.history, entry)
	ms.state.ApplyMove(ply)
	ms.refresh()

	log.Debug().Str("ply", ply.String()).Str("notation", entry.String()).
		Int("kills", len(entry.Kills)).Msg("applied-move")
	return nil
}

// UndoMoves takes back up to n moves.
func (ms *MatchState) UndoMoves(n int) int {
	undone := 0
	for ; undone < n && len(ms.history) > 0; undone++ {
		last := ms.history[len(ms.history)-1]
		ms.history = ms.history[:len(ms.history)-1]
		ms.state = last.StateBefore
	}
	ms.refresh()
	return undone
}

// CurrentCaptured returns what each side has captured so far.
func (ms *MatchState) CurrentCaptured() [2]game.Captured {
	if len(ms.history) == 0 {
		return [2]game.Captured{}
	}
	return ms.history[len(ms.history)-1].CapturedAfter
}

// HalfOpening returns the named opening player chose. A nil opening with
// a nil error means the player's first two moves have no name.
func (ms *MatchState) HalfOpening(player board.Player) (*HalfOpening, error) {
	r := ms.halfOpenings[player]
	return r.opening, r.err
}

func (ms *MatchState) beginningState() game.Position {
	if len(ms.history) > 0 {
		return ms.history[0].StateBefore
	}
	return ms.state
}

func (ms *MatchState) detectHalfOpening(player board.Player) (*HalfOpening, error) {
	if ms.beginningState() != game.Setup() {
		return nil, ErrNonStandardSetup
	}
	idx := halfOpeningPly[player]
	if len(ms.history) <= idx {
		return nil, ErrNotEnoughMoves
	}
	return LookupHalfOpening(player, ms.history[idx].StateAfter.Pieces(player))
}
