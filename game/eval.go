package game

import (
	"github.com/tokonoma/hexstack/board"
)

const (
	mobilityWeight = 0.1
	tempoBonus     = 0.5

	maxFlatSteps = 5
	noPassedFlat = 8
)

var (
	passedFlatOnMove  = [maxFlatSteps + 1]float32{200, 200, 30, 10, 5, 1}
	passedFlatWaiting = [maxFlatSteps + 1]float32{200, 100, 25, 7, 3, 0.5}
)

// EvalHeuristic is the static evaluation. Decided positions return a win
// sentinel; the rest combine material, mobility, passed flats and tempo.
func (p Position) EvalHeuristic() Score {
	if w, ok := p.IsWonHome(); ok {
		return WinNow(w)
	}
	whiteMoves := p.countMoves(board.White)
	blackMoves := p.countMoves(board.Black)
	if p.toPlay == board.White && whiteMoves == 0 {
		return WinNow(board.Black)
	}
	if p.toPlay == board.Black && blackMoves == 0 {
		return WinNow(board.White)
	}

	var v float32
	for _, color := range board.Players {
		v += color.Multiplier() * p.material(color)
	}
	v += mobilityWeight * float32(whiteMoves-blackMoves)
	v += p.passedFlatScore(board.White) - p.passedFlatScore(board.Black)
	v += tempoBonus * p.toPlay.Multiplier()
	return Finite(v)
}

// material sums piece values, skipping pieces the opponent attacks twice
// since they are lost on the next ply anyway.
func (p Position) material(color board.Player) float32 {
	safe := p.pieces[color].Mask(^p.DoubleAttackMap(color.Flip()))
	var total float32
	for _, s := range board.AllSpecies {
		if n := safe.LocateSpecies(s).Count(); n > 0 {
			total += s.Value() * float32(n)
		}
	}
	return total
}

// passedFlatDistance estimates how many plies a lone flat of player needs
// to reach the enemy house. The flats' frontier and the house's frontier
// take turns diffusing. Enemy pieces block, except on the house itself.
// The player's own pieces do not block, so a flat may walk through them.
func (p Position) passedFlatDistance(player board.Player) int {
	opp := player.Flip()
	house := board.House(opp).Mask()
	walkable := p.pieces[opp].Occupied().Complement() | house

	flats := p.pieces[player].LocateLoneFlats()
	if flats.IsEmpty() {
		return noPassedFlat
	}
	target := house
	for d := 0; d <= maxFlatSteps; d++ {
		if target&flats != 0 {
			return d
		}
		if d%2 == 0 {
			flats = flats.MoveDestinations(player, board.Flat) & walkable
		} else {
			target = target.MoveDestinations(opp, board.Flat) & walkable
		}
	}
	return noPassedFlat
}

func (p Position) passedFlatScore(player board.Player) float32 {
	d := p.passedFlatDistance(player)
	if d > maxFlatSteps {
		return 0
	}
	if p.toPlay == player {
		return passedFlatOnMove[d]
	}
	return passedFlatWaiting[d]
}
