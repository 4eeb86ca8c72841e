package match

import (
	"fmt"
	"slices"
	"sync"

	"github.com/tokonoma/hexstack/board"
	"github.com/tokonoma/hexstack/game"
)

// HalfOpening names a pair of first moves for one side. It is identified
// by the resulting layout of that side's pieces, whatever the opponent did
// in between.
type HalfOpening struct {
	Name          string
	WhiteMoves    [2]board.Ply
	WhitePosition board.PieceMap
}

func (h *HalfOpening) String() string {
	if h.Name == "" {
		return "[Anonymous]"
	}
	return h.Name
}

// newHalfOpening replays the two white moves from the setup with Black
// answering its first legal move.
func newHalfOpening(name string, first, second board.Ply) (*HalfOpening, error) {
	pos := game.Setup()
	if !slices.Contains(pos.ValidMoves(), first) {
		return nil, fmt.Errorf("half opening %s: %v: %w", name, first, ErrIllegalMove)
	}
	pos.ApplyMove(first)
	replies := pos.ValidMoves()
	if len(replies) == 0 {
		return nil, fmt.Errorf("half opening %s: black has no reply", name)
	}
	pos.ApplyMove(replies[0])
	if !slices.Contains(pos.ValidMoves(), second) {
		return nil, fmt.Errorf("half opening %s: %v: %w", name, second, ErrIllegalMove)
	}
	pos.ApplyMove(second)
	return &HalfOpening{
		Name:          name,
		WhiteMoves:    [2]board.Ply{first, second},
		WhitePosition: pos.Pieces(board.White),
	}, nil
}

type openingDef struct {
	name          string
	first, second string
}

var openingDefs = []openingDef{
	{"Devil", "d6b5", "a5a3"},
	{"Magician", "b6a4", "c7c5"},
	{"Hermit", "b6c5", "a5a3"},
	{"Chariot", "c7c5", "a5a3"},
	{"Emperor", "b6a4", "a5a3"},
	{"Hierophant", "d6b5", "c7c5"},
	{"Sun", "d6b5", "b6a4"},
	{"Moon", "d6b5", "b6c5"},
	{"Fool", "d6b5", "c6e4"},
	{"Hanged Man", "b6a4", "c6e4"},
	{"Judgement", "b6c5", "c6e4"},
	{"Lovers", "d6b5", "c6a4"},
	{"Empress", "c7c5", "c6e4"},
	{"Seal", "c7c5", "c5d5"},
}

type openingBook struct {
	all []*HalfOpening
	// Keyed by White's layout, and by its flip for Black.
	byColor [2]map[board.PieceMap]*HalfOpening
}

var loadBook = sync.OnceValues(func() (*openingBook, error) {
	book := &openingBook{}
	for c := range book.byColor {
		book.byColor[c] = make(map[board.PieceMap]*HalfOpening)
	}
	for _, def := range openingDefs {
		first, err := board.ParsePly(def.first)
		if err != nil {
			return nil, err
		}
		second, err := board.ParsePly(def.second)
		if err != nil {
			return nil, err
		}
		ho, err := newHalfOpening(def.name, first, second)
		if err != nil {
			return nil, err
		}
		keys := [2]board.PieceMap{ho.WhitePosition, ho.WhitePosition.Flip()}
		for c, key := range keys {
			if dup, ok := book.byColor[c][key]; ok {
				return nil, fmt.Errorf("duplicate half opening: %s and %s", dup.Name, ho.Name)
			}
			book.byColor[c][key] = ho
		}
		book.all = append(book.all, ho)
	}
	return book, nil
})

// HalfOpenings lists the named half openings in table order.
func HalfOpenings() ([]*HalfOpening, error) {
	book, err := loadBook()
	if err != nil {
		return nil, err
	}
	return book.all, nil
}

// LookupHalfOpening finds the half opening matching a player's pieces. A
// nil result with no error means the layout has no name.
func LookupHalfOpening(player board.Player, pieces board.PieceMap) (*HalfOpening, error) {
	book, err := loadBook()
	if err != nil {
		return nil, err
	}
	return book.byColor[player][pieces], nil
}
