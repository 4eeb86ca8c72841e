package board

import "strings"

// Tall is one of the three tall piece kinds.
type Tall uint8

const (
	NoTall Tall = iota
	Hand
	Blind
	Star
)

var Talls = [3]Tall{Hand, Blind, Star}

// Bits returns the two tall bitplane bits encoding t.
func (t Tall) Bits() (t0, t1 bool) {
	return t&2 != 0, t&1 != 0
}

func tallFromBits(t0, t1 bool) Tall {
	var t Tall
	if t0 {
		t |= 2
	}
	if t1 {
		t |= 1
	}
	return t
}

func (t Tall) Value() float32 {
	switch t {
	case Hand:
		return 2.0
	case Blind, Star:
		return 3.0
	}
	return 0
}

func (t Tall) Letter() byte {
	return " ABS"[t]
}

func (t Tall) String() string {
	switch t {
	case Hand:
		return "hand"
	case Blind:
		return "blind"
	case Star:
		return "star"
	}
	return "none"
}

// Species is what can stand on a cell for one color: a flat, a lone tall,
// or a tall stacked on a flat. The numeric value doubles as a compact code.
type Species uint8

const (
	Flat Species = iota
	LoneHand
	LoneBlind
	LoneStar
	StackHand
	StackBlind
	StackStar

	NumSpecies = 7
)

// AllSpecies lists every species in code order.
var AllSpecies = [NumSpecies]Species{
	Flat, LoneHand, LoneBlind, LoneStar, StackHand, StackBlind, StackStar,
}

const flatValue = 2.0
const stackPenalty = 0.2

func Lone(t Tall) Species {
	return Species(t)
}

func Stack(t Tall) Species {
	return Species(t) + 3
}

func (s Species) IsLone() bool  { return s >= LoneHand && s <= LoneStar }
func (s Species) IsStack() bool { return s >= StackHand && s <= StackStar }

// HasFlat is true for a flat and for a stack.
func (s Species) HasFlat() bool {
	return s == Flat || s.IsStack()
}

// Tall returns the tall component, NoTall for a flat.
func (s Species) Tall() Tall {
	switch {
	case s.IsLone():
		return Tall(s)
	case s.IsStack():
		return Tall(s - 3)
	}
	return NoTall
}

// ToLone drops the flat from a stack. It is the identity otherwise.
func (s Species) ToLone() Species {
	if s.IsStack() {
		return s - 3
	}
	return s
}

func (s Species) Value() float32 {
	switch {
	case s == Flat:
		return flatValue
	case s.IsLone():
		return s.Tall().Value()
	default:
		return flatValue + s.Tall().Value() - stackPenalty
	}
}

// Letter is the single-character notation used in move history.
func (s Species) Letter() byte {
	if s == Flat {
		return 'F'
	}
	return s.Tall().Letter()
}

func (s Species) String() string {
	switch {
	case s == Flat:
		return "F"
	case s.IsStack():
		return "F" + string(s.Tall().Letter())
	default:
		return string(s.Tall().Letter())
	}
}

// ParseSpecies is the inverse of Species.String.
func ParseSpecies(s string) (Species, error) {
	for _, sp := range AllSpecies {
		if strings.EqualFold(sp.String(), s) {
			return sp, nil
		}
	}
	return Flat, &ParseError{Input: s, Err: ErrBadPiece}
}

// Piece is a species of a given color.
type Piece struct {
	Color   Player
	Species Species
}

func (p Piece) String() string {
	return string("wb"[p.Color]) + p.Species.String()
}

// ParsePiece reads a color letter followed by a species, e.g. "wF" or "bFS".
func ParsePiece(s string) (Piece, error) {
	if len(s) < 2 {
		return Piece{}, &ParseError{Input: s, Err: ErrWrongLength}
	}
	color, err := ParsePlayer(s[:1])
	if err != nil {
		return Piece{}, &ParseError{Input: s, Err: ErrBadPiece}
	}
	sp, err := ParseSpecies(s[1:])
	if err != nil {
		return Piece{}, &ParseError{Input: s, Err: ErrBadPiece}
	}
	return Piece{Color: color, Species: sp}, nil
}
