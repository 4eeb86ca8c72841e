// Package bot implements computer opponents of graded strength on top of
// the alpha-beta searcher.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/tokonoma/hexstack/alphabeta"
	"github.com/tokonoma/hexstack/board"
	"github.com/tokonoma/hexstack/game"
)

var ErrNoMoves = errors.New("no moves to choose from")

// Level describes how strong a bot plays. A bot searches Depth plies but
// blunders into a shallower search with BlunderProbability, possibly
// several times in a row.
type Level struct {
	Name               string
	Description        string
	Depth              int
	BlunderProbability float64
}

var Levels = []Level{
	{"gibberish", "Random moves.", 0, 0},
	{"noob", "Poor player.", 1, 0.2},
	{"decent", "Solid player.", 2, 0.2},
	{"sharp", "Serious challenge.", 3, 0.4},
	{"tough", "Very strong.", 5, 0.4},
	{"grandmaster", "Unbelievable.", 6, 0.2},
}

// Perfect is a bot that never blunders.
func Perfect(depth int) Level {
	return Level{
		Name:        fmt.Sprintf("perfect-%d", depth),
		Description: fmt.Sprintf("Perfect %d-plies.", depth),
		Depth:       depth,
	}
}

// ParseLevel accepts a level name or "perfect-N".
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := lo.Find(Levels, func(l Level) bool { return l.Name == s }); ok {
		return l, nil
	}
	if rest, ok := strings.CutPrefix(s, "perfect-"); ok {
		d, err := strconv.Atoi(rest)
		if err != nil || d < 0 {
			return Level{}, fmt.Errorf("bad depth in level %q", s)
		}
		return Perfect(d), nil
	}
	return Level{}, fmt.Errorf("unknown bot level %q", s)
}

// Bot picks moves for whichever side is to move. It keeps one
// transposition table for its lifetime, so reuse a bot across the moves of
// a game. A Bot is not safe for concurrent use.
type Bot struct {
	level          Level
	tt             *alphabeta.TranspositionTable
	lastUsedDepth  int
	lastCandidates []alphabeta.ScoredPly
}

// NewBot creates a bot whose table holds 2^tablePower entries.
func NewBot(level Level, tablePower int) *Bot {
	return &Bot{
		level: level,
		tt:    alphabeta.NewTranspositionTable(tablePower),
	}
}

// NewBotWithTable lets the caller size and share the table.
func NewBotWithTable(level Level, tt *alphabeta.TranspositionTable) *Bot {
	return &Bot{level: level, tt: tt}
}

func (b *Bot) Level() Level {
	return b.level
}

func (b *Bot) Table() *alphabeta.TranspositionTable {
	return b.tt
}

// LastUsedDepth is the depth of the most recent search, after blunders.
func (b *Bot) LastUsedDepth() int {
	return b.lastUsedDepth
}

// LastCandidates is the ranked move list of the most recent search.
func (b *Bot) LastCandidates() []alphabeta.ScoredPly {
	return b.lastCandidates
}

func (b *Bot) rollDepth() int {
	depth := b.level.Depth
	for depth > 0 && frand.Float64() < b.level.BlunderProbability {
		depth--
	}
	return depth
}

// BestMove searches pos and returns the move it likes best. The search
// itself cannot be interrupted; ctx is checked before it starts.
func (b *Bot) BestMove(ctx context.Context, pos game.Position) (board.Ply, error) {
	if err := ctx.Err(); err != nil {
		return board.Ply{}, err
	}
	depth := b.rollDepth()
	b.lastUsedDepth = depth
	scored := alphabeta.MovesWithScore(pos, depth, b.tt)
	b.lastCandidates = scored
	if len(scored) == 0 {
		return board.Ply{}, ErrNoMoves
	}

	log.Debug().Str("level", b.level.Name).Int("depth", depth).
		Str("best", scored[0].String()).
		Int("nodes", lo.SumBy(scored, func(sp alphabeta.ScoredPly) int { return sp.Result.Nodes })).
		Msg("bot-move")
	return scored[0].Ply, nil
}
