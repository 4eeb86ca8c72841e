package board

// Player is one of the two sides. White moves first.
type Player uint8

const (
	White Player = iota
	Black
)

// Players lists both sides in index order.
var Players = [2]Player{White, Black}

func (p Player) Flip() Player {
	return p ^ 1
}

// Multiplier is +1 for White and -1 for Black; scores favour White.
func (p Player) Multiplier() float32 {
	if p == White {
		return 1
	}
	return -1
}

func (p Player) String() string {
	if p == White {
		return "white"
	}
	return "black"
}

// ParsePlayer accepts "white"/"w" and "black"/"b".
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "white", "w", "White", "W":
		return White, nil
	case "black", "b", "Black", "B":
		return Black, nil
	}
	return White, &ParseError{Input: s, Err: ErrBadPlayer}
}
