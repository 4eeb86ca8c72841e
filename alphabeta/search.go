// Package alphabeta searches game trees with fail-hard alpha-beta, a
// caller-owned transposition table and a capture-driven quiescence
// extension.
package alphabeta

import (
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/tokonoma/hexstack/board"
	"github.com/tokonoma/hexstack/game"
)

var (
	// MaxQuiescenceDepth bounds how many capturing moves in a row may be
	// searched without consuming depth.
	MaxQuiescenceDepth = 2
	// OrderingReduction is how much shallower the move-ordering lookahead
	// is than the node being ordered.
	OrderingReduction = 2
)

// DefaultTablePower sizes the table created when a caller passes none.
const DefaultTablePower = 18

// EvalResult is a node's score and the number of nodes examined to get it,
// not counting pruned branches.
type EvalResult struct {
	Score game.Score
	Nodes int
}

func immediate(s game.Score) EvalResult {
	return EvalResult{Score: s, Nodes: 1}
}

// ScoredPly is a root move with the evaluation of the position it leads to.
type ScoredPly struct {
	Ply    board.Ply
	Result EvalResult
}

func (sp ScoredPly) String() string {
	return sp.Ply.String() + " " + sp.Result.Score.String()
}

// Eval searches pos with a full window.
func Eval(pos game.Position, depth int, tt *TranspositionTable) EvalResult {
	return EvalAlphaBeta(pos, depth, game.WinNow(board.Black), game.WinNow(board.White), tt, 0)
}

// EvalAlphaBeta scores pos at the given depth. White maximizes and Black
// minimizes. Captures extend the search by one ply while qdepth is below
// MaxQuiescenceDepth. Every child result is stored in tt.
func EvalAlphaBeta(pos game.Position, depth int, alpha, beta game.Score,
	tt *TranspositionTable, qdepth int) EvalResult {

	if score, ok := tt.Lookup(pos, depth); ok {
		return EvalResult{Score: score, Nodes: 1}
	}

	heuristic := pos.EvalHeuristic()
	if !heuristic.IsFinite() {
		return immediate(heuristic)
	}
	if depth == 0 {
		return immediate(heuristic)
	}

	toPlay := pos.ToPlay()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return immediate(game.WinNow(toPlay.Flip()))
	}
	if depth >= OrderingReduction && depth > 1 {
		moves = orderMoves(pos, moves, depth-OrderingReduction, alpha, beta, tt, qdepth)
	}

	value := game.WinNow(toPlay.Flip())
	nodes := 1
	for _, m := range moves {
		child := pos
		report := child.ApplyMove(m)

		subDepth, subQDepth := depth-1, qdepth
		if qdepth < MaxQuiescenceDepth && report.HasCaptured() {
			subDepth, subQDepth = depth, qdepth+1
		}

		childHash := child.Hash()
		sub := EvalAlphaBeta(child, subDepth, alpha, beta, tt, subQDepth)
		tt.insert(childHash, child, subDepth, sub.Score)

		subScore := sub.Score.Propagate()
		nodes += sub.Nodes

		if toPlay == board.White {
			value = max(value, subScore)
			if value >= beta {
				break
			}
			alpha = max(alpha, value)
		} else {
			value = min(value, subScore)
			if value <= alpha {
				break
			}
			beta = min(beta, value)
		}
	}
	return EvalResult{Score: value, Nodes: nodes}
}

// orderMoves sorts moves best-first for the side to move using a reduced
// depth lookahead.
func orderMoves(pos game.Position, moves []board.Ply, depth int,
	alpha, beta game.Score, tt *TranspositionTable, qdepth int) []board.Ply {

	scored := lo.Map(moves, func(m board.Ply, _ int) ScoredPly {
		child := pos
		child.ApplyMove(m)
		return ScoredPly{Ply: m, Result: EvalAlphaBeta(child, depth, alpha, beta, tt, qdepth)}
	})
	sortBestFirst(scored, pos.ToPlay())
	return lo.Map(scored, func(sp ScoredPly, _ int) board.Ply { return sp.Ply })
}

func sortBestFirst(scored []ScoredPly, toPlay board.Player) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Result.Score.Better(scored[j].Result.Score, toPlay)
	})
}

// MovesWithScore evaluates every legal move of pos at depth-1 and returns
// them best-first for the side to move. Equal scores come out in random
// order. At depth 0 the moves are only shuffled; a decided position yields
// no moves. A nil tt gets a fresh table.
func MovesWithScore(pos game.Position, depth int, tt *TranspositionTable) []ScoredPly {
	moves := pos.ValidMoves()
	if depth == 0 {
		scored := lo.Map(moves, func(m board.Ply, _ int) ScoredPly {
			return ScoredPly{Ply: m, Result: EvalResult{Score: game.Even}}
		})
		frand.Shuffle(len(scored), func(i, j int) { scored[i], scored[j] = scored[j], scored[i] })
		return scored
	}

	if !pos.EvalHeuristic().IsFinite() {
		return nil
	}
	if tt == nil {
		tt = NewTranspositionTable(DefaultTablePower)
	}

	scored := make([]ScoredPly, 0, len(moves))
	totalNodes := 0
	for _, m := range moves {
		child := pos
		child.ApplyMove(m)
		res := Eval(child, depth-1, tt)
		totalNodes += res.Nodes
		scored = append(scored, ScoredPly{Ply: m, Result: res})
	}
	frand.Shuffle(len(scored), func(i, j int) { scored[i], scored[j] = scored[j], scored[i] })
	sortBestFirst(scored, pos.ToPlay())

	stats := tt.Stats()
	log.Debug().Int("depth", depth).Int("moves", len(scored)).
		Int("nodes", totalNodes).
		Uint64("tt-hits", stats.Hits).
		Uint64("tt-lookups", stats.Lookups).
		Msg("moves-with-score")
	return scored
}
