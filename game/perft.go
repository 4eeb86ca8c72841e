package game

// Perft counts the leaf positions reachable in exactly depth plies. Decided
// positions are leaves.
func Perft(p Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	if _, won := p.IsWonHome(); won {
		return 1
	}
	moves := p.ValidMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		child := p
		child.ApplyMove(m)
		nodes += Perft(child, depth-1)
	}
	return nodes
}

// Divide reports Perft for each root move.
func Divide(p Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for _, m := range p.ValidMoves() {
		child := p
		child.ApplyMove(m)
		out[m.String()] = Perft(child, depth-1)
	}
	return out
}
