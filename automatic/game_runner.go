// Package automatic plays computer-vs-computer games, mostly to survey
// how the first moves of the game fare.
package automatic

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tokonoma/hexstack/board"
	"github.com/tokonoma/hexstack/bot"
	"github.com/tokonoma/hexstack/match"
)

// DefaultMaxPlies is how long a game may run before it is scored a draw.
const DefaultMaxPlies = 100

type DrawReason int

const (
	NotDrawn DrawReason = iota
	DrawByLength
	DrawByRepetition
)

func (d DrawReason) String() string {
	switch d {
	case DrawByLength:
		return "length"
	case DrawByRepetition:
		return "repetition"
	}
	return ""
}

// GameResult is the outcome of one automatic game.
type GameResult struct {
	Match  *match.MatchState
	Plies  int
	Drawn  DrawReason
	Winner board.Player
}

// Decided tells whether someone won.
func (g GameResult) Decided() bool {
	return g.Drawn == NotDrawn
}

// GameRunner plays one bot against another. Index 0 plays White.
type GameRunner struct {
	bots     [2]*bot.Bot
	maxPlies int
	// Draw when a position with the same side to move shows up a third
	// time.
	repetitionDraws bool
}

// NewGameRunner makes a runner with a fresh bot per side.
func NewGameRunner(levels [2]bot.Level, tablePower int) *GameRunner {
	return &GameRunner{
		bots:     [2]*bot.Bot{bot.NewBot(levels[0], tablePower), bot.NewBot(levels[1], tablePower)},
		maxPlies: DefaultMaxPlies,
	}
}

func (r *GameRunner) SetMaxPlies(n int) {
	r.maxPlies = n
}

func (r *GameRunner) SetRepetitionDraws(b bool) {
	r.repetitionDraws = b
}

// PlayGame plays ms out to the end and returns how it finished. ms is
// modified in place. Plies already in ms's history count toward the limit.
func (r *GameRunner) PlayGame(ctx context.Context, ms *match.MatchState) (GameResult, error) {
	seen := map[uint64]int{ms.State().Hash(): 1}
	result := GameResult{Match: ms}
	for {
		result.Plies = len(ms.History())
		if winner, won := ms.IsWon(); won {
			result.Winner = winner
			return result, nil
		}
		if result.Plies >= r.maxPlies {
			result.Drawn = DrawByLength
			return result, nil
		}
		b := r.bots[ms.ToPlay()]
		ply, err := b.BestMove(ctx, ms.State())
		if err != nil {
			if errors.Is(err, bot.ErrNoMoves) {
				return result, fmt.Errorf("bot found no move in an undecided game: %w", err)
			}
			return result, err
		}
		if err := ms.ApplyMove(ply); err != nil {
			return result, err
		}
		if r.repetitionDraws {
			h := ms.State().Hash()
			seen[h]++
			if seen[h] >= 3 {
				result.Plies = len(ms.History())
				result.Drawn = DrawByRepetition
				log.Debug().Int("plies", result.Plies).Msg("repetition-draw")
				return result, nil
			}
		}
	}
}
