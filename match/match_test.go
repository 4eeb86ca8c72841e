package match

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/tokonoma/hexstack/board"
	"github.com/tokonoma/hexstack/game"
)

func tile(label string) board.Tile {
	t, err := board.ParseTile(label)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOpeningBookLoads(t *testing.T) {
	is := is.New(t)
	all, err := HalfOpenings()
	is.NoErr(err)
	is.Equal(len(all), 14)
	is.Equal(all[0].Name, "Devil")
}

func TestDevilOpening(t *testing.T) {
	is := is.New(t)
	ms := Setup()
	is.NoErr(ms.ApplyMove(board.MustParsePly("d6b5")))
	is.NoErr(ms.ApplyMove(ms.ValidMoves()[0]))
	is.NoErr(ms.ApplyMove(board.MustParsePly("a5a3")))

	white := ms.Pieces(board.White)
	want := map[string]board.Species{
		"d6": board.Flat,
		"b5": board.LoneBlind,
		"a5": board.Flat,
		"a3": board.LoneHand,
		"c7": board.StackHand,
		"b6": board.StackStar,
		"c6": board.StackBlind,
		"e5": board.Flat,
	}
	is.Equal(white.Count(), len(want))
	for label, species := range want {
		s, ok := white.Get(tile(label))
		is.True(ok)
		is.Equal(s, species)
	}

	op, err := ms.HalfOpening(board.White)
	is.NoErr(err)
	is.True(op != nil)
	is.Equal(op.Name, "Devil")
	is.Equal(op.WhitePosition, white)

	_, err = ms.HalfOpening(board.Black)
	is.True(errors.Is(err, ErrNotEnoughMoves))
}

func TestHistoryNotation(t *testing.T) {
	is := is.New(t)
	ms := Setup()
	is.NoErr(ms.ApplyMove(board.MustParsePly("d6b5")))
	is.NoErr(ms.ApplyMove(ms.ValidMoves()[0]))
	is.NoErr(ms.ApplyMove(board.MustParsePly("a5a3")))
	h := ms.History()
	is.Equal(len(h), 3)
	is.Equal(h[0].String(), "Bb5")
	is.Equal(h[0].MovedPiece, board.LoneBlind)
	is.Equal(h[1].Mover(), board.Black)
	is.Equal(h[2].String(), "Aa3")
}

func TestBlackHalfOpening(t *testing.T) {
	is := is.New(t)
	ms := Setup()
	is.NoErr(ms.ApplyMove(ms.ValidMoves()[0]))
	// Black mirrors the Devil.
	is.NoErr(ms.ApplyMove(board.MustParsePly("b1d2")))
	is.NoErr(ms.ApplyMove(ms.ValidMoves()[0]))
	is.NoErr(ms.ApplyMove(board.MustParsePly("e1e3")))

	op, err := ms.HalfOpening(board.Black)
	is.NoErr(err)
	is.True(op != nil)
	is.Equal(op.Name, "Devil")
}

func TestUnnamedOpening(t *testing.T) {
	is := is.New(t)
	ms := Setup()
	for i := 0; i < 3; i++ {
		is.NoErr(ms.ApplyMove(ms.ValidMoves()[len(ms.ValidMoves())-1]))
	}
	op, err := ms.HalfOpening(board.White)
	is.NoErr(err)
	is.Equal(op, nil)
}

func TestNonStandardSetup(t *testing.T) {
	is := is.New(t)
	pos := game.Setup()
	pos.Paint(tile("c4"), &board.Piece{Color: board.White, Species: board.Flat})
	ms := SetupFrom(pos)
	_, err := ms.HalfOpening(board.White)
	is.True(errors.Is(err, ErrNonStandardSetup))
}

func TestIllegalAndFinishedGames(t *testing.T) {
	is := is.New(t)
	ms := Setup()
	err := ms.ApplyMove(board.MustParsePly("c4c3"))
	is.True(errors.Is(err, ErrIllegalMove))
	is.Equal(len(ms.History()), 0)

	pos := game.Setup()
	pos.Paint(board.House(board.White), &board.Piece{Color: board.Black, Species: board.Flat})
	ms = SetupFrom(pos)
	w, won := ms.IsWon()
	is.True(won)
	is.Equal(w, board.Black)
	is.True(errors.Is(ms.ApplyMove(ms.ValidMoves()[0]), ErrGameOver))
}

func TestUndo(t *testing.T) {
	is := is.New(t)
	ms := Setup()
	start := ms.State()
	is.NoErr(ms.ApplyMove(board.MustParsePly("d6b5")))
	afterOne := ms.State()
	is.NoErr(ms.ApplyMove(ms.ValidMoves()[0]))

	is.Equal(ms.UndoMoves(1), 1)
	is.Equal(ms.State(), afterOne)
	is.Equal(ms.ToPlay(), board.Black)

	is.Equal(ms.UndoMoves(5), 1)
	is.Equal(ms.State(), start)
	is.Equal(len(ms.History()), 0)
	is.Equal(ms.CurrentCaptured(), [2]game.Captured{})
	is.Equal(len(ms.ValidMoves()), len(start.ValidMoves()))
}
