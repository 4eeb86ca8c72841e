package board

// Ply is a single move of one piece.
type Ply struct {
	From Tile
	To   Tile
}

func (p Ply) String() string {
	return p.From.String() + p.To.String()
}

// ParsePly reads two concatenated tile labels, e.g. "d6b5".
func ParsePly(s string) (Ply, error) {
	if len(s) != 4 {
		return Ply{}, &ParseError{Input: s, Err: ErrWrongLength}
	}
	from, err := ParseTile(s[:2])
	if err != nil {
		return Ply{}, err
	}
	to, err := ParseTile(s[2:])
	if err != nil {
		return Ply{}, err
	}
	return Ply{From: from, To: to}, nil
}

// MustParsePly panics on malformed input. Meant for tables and tests.
func MustParsePly(s string) Ply {
	p, err := ParsePly(s)
	if err != nil {
		panic(err)
	}
	return p
}
