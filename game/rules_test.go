package game

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/tokonoma/hexstack/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func tile(label string) board.Tile {
	t, err := board.ParseTile(label)
	if err != nil {
		panic(err)
	}
	return t
}

func paint(pos *Position, label string, color board.Player, s board.Species) {
	pos.Paint(tile(label), &board.Piece{Color: color, Species: s})
}

func TestSetup(t *testing.T) {
	is := is.New(t)
	pos := Setup()
	is.Equal(pos.ToPlay(), board.White)
	is.Equal(pos.Pieces(board.White).Count(), 6)
	is.Equal(pos.Pieces(board.Black).Count(), 6)
	is.Equal(pos.Pieces(board.White).Occupied()&pos.Pieces(board.Black).Occupied(), board.EmptySet)
	is.Equal(pos.Pieces(board.White), pos.Pieces(board.Black).Flip())

	s, ok := pos.Pieces(board.White).Get(tile("d6"))
	is.True(ok)
	is.Equal(s, board.StackBlind)
	s, _ = pos.Pieces(board.White).Get(tile("a5"))
	is.Equal(s, board.StackHand)
	s, _ = pos.Pieces(board.Black).Get(tile("a1"))
	is.Equal(s, board.Flat)

	_, won := pos.IsWon()
	is.True(!won)
	is.True(pos.EvalHeuristic().IsFinite())
}

func TestSetupSymmetry(t *testing.T) {
	is := is.New(t)
	pos := Setup()
	white := pos.ValidMovesFor(board.White)
	black := pos.ValidMovesFor(board.Black)
	is.True(len(white) > 0)
	is.Equal(len(white), len(black))

	mirrored := map[board.Ply]bool{}
	for _, m := range black {
		mirrored[board.Ply{From: m.From.Antipode(), To: m.To.Antipode()}] = true
	}
	for _, m := range white {
		is.True(mirrored[m])
	}
	is.Equal(pos.DoubleAttackMap(board.White).Count(), pos.DoubleAttackMap(board.Black).Count())
}

func TestValidMovesOrder(t *testing.T) {
	is := is.New(t)
	moves := Setup().ValidMoves()
	for i := 1; i < len(moves); i++ {
		prev, cur := moves[i-1], moves[i]
		is.True(prev.From < cur.From || (prev.From == cur.From && prev.To < cur.To))
	}
}

func TestCapture(t *testing.T) {
	is := is.New(t)
	var pos Position
	paint(&pos, "c5", board.White, board.Flat)
	paint(&pos, "b5", board.White, board.Flat)
	paint(&pos, "c4", board.Black, board.LoneHand)
	paint(&pos, "e1", board.Black, board.Flat)

	ply := board.MustParsePly("b5b4")
	entry := pos.ComputeHistoryEntry(ply, [2]Captured{})
	report := pos.ApplyMove(ply)

	is.True(report.HasCaptured())
	is.Equal(report.Kills.Occupied(), tile("c4").Mask())
	is.Equal(pos.Pieces(board.Black).Count(), 1)
	is.Equal(pos.ToPlay(), board.Black)

	is.True(entry.Disambiguate)
	is.Equal(entry.String(), "Fb5b4*")
	is.Equal(entry.CapturedAfter[board.White].Count(), 1)
	is.Equal(entry.CapturedAfter[board.White][board.LoneHand], uint8(1))
	is.Equal(entry.StateAfter, pos)
}

func TestNoCaptureOnSingleAttack(t *testing.T) {
	is := is.New(t)
	var pos Position
	paint(&pos, "b5", board.White, board.Flat)
	paint(&pos, "c4", board.Black, board.LoneHand)
	report := pos.ApplyMove(board.MustParsePly("b5b4"))
	is.True(!report.HasCaptured())
	is.Equal(pos.Pieces(board.Black).Count(), 1)
}

// Plays random games and checks that each capture removes exactly the
// enemy pieces standing on cells the mover attacks twice.
func TestCaptureProperty(t *testing.T) {
	is := is.New(t)
	for game := 0; game < 50; game++ {
		pos := Setup()
		for ply := 0; ply < 80; ply++ {
			if _, won := pos.IsWon(); won {
				break
			}
			moves := pos.ValidMoves()
			m := moves[frand.Intn(len(moves))]
			mover := pos.ToPlay()

			translated := pos
			translated.stageTranslate(m)
			doubles := translated.DoubleAttackMap(mover)
			oppBefore := pos.Pieces(mover.Flip())

			pos.ApplyMove(m)
			is.Equal(pos.Pieces(mover.Flip()), oppBefore.Mask(^doubles))
			is.Equal(pos.Pieces(board.White).Occupied()&pos.Pieces(board.Black).Occupied(), board.EmptySet)
		}
	}
}

func TestStackingMoves(t *testing.T) {
	is := is.New(t)
	var pos Position
	paint(&pos, "c4", board.White, board.Flat)
	paint(&pos, "c6", board.White, board.LoneHand)
	paint(&pos, "a1", board.Black, board.Flat)

	stackUp := board.MustParsePly("c6c4")
	is.True(containsPly(pos.ValidMoves(), stackUp))
	pos.ApplyMove(stackUp)
	s, _ := pos.Pieces(board.White).Get(tile("c4"))
	is.Equal(s, board.StackHand)
	is.Equal(pos.Pieces(board.White).Count(), 1)

	pos.FlipToMove()
	leave := board.MustParsePly("c4c2")
	is.True(containsPly(pos.ValidMoves(), leave))
	pos.ApplyMove(leave)
	s, _ = pos.Pieces(board.White).Get(tile("c4"))
	is.Equal(s, board.Flat)
	s, _ = pos.Pieces(board.White).Get(tile("c2"))
	is.Equal(s, board.LoneHand)
}

func TestFlatsCannotStack(t *testing.T) {
	is := is.New(t)
	var pos Position
	paint(&pos, "c4", board.White, board.Flat)
	paint(&pos, "c5", board.White, board.Flat)
	paint(&pos, "a1", board.Black, board.Flat)
	is.True(!containsPly(pos.ValidMoves(), board.MustParsePly("c5c4")))
}

func TestHouseCapture(t *testing.T) {
	is := is.New(t)
	pos := Setup()
	pos.Paint(board.House(board.White), &board.Piece{Color: board.Black, Species: board.Flat})
	is.True(len(pos.ValidMoves()) > 0)
	w, won := pos.IsWon()
	is.True(won)
	is.Equal(w, board.Black)
	is.Equal(pos.EvalHeuristic(), WinNow(board.Black))

	// A stacked flat does not count.
	pos.Paint(board.House(board.White), &board.Piece{Color: board.Black, Species: board.StackHand})
	_, won = pos.IsWonHome()
	is.True(!won)
}

func TestNoMovesLoses(t *testing.T) {
	is := is.New(t)
	var pos Position
	paint(&pos, "e1", board.White, board.Flat)
	paint(&pos, "d1", board.Black, board.Flat)
	is.Equal(len(pos.ValidMoves()), 0)
	w, won := pos.IsWon()
	is.True(won)
	is.Equal(w, board.Black)
	is.Equal(pos.EvalHeuristic(), WinNow(board.Black))
}

func TestPaintAndHash(t *testing.T) {
	is := is.New(t)
	a := Setup()
	b := Setup()
	is.Equal(a, b)
	is.Equal(a.Hash(), b.Hash())

	b.FlipToMove()
	is.True(a != b)
	is.True(a.Hash() != b.Hash())
	b.FlipToMove()

	b.Paint(tile("c4"), &board.Piece{Color: board.Black, Species: board.LoneStar})
	is.True(a.Hash() != b.Hash())
	piece, ok := b.PieceAt(tile("c4"))
	is.True(ok)
	is.Equal(piece.String(), "bS")
	b.Paint(tile("c4"), nil)
	is.Equal(a, b)
}

func TestMirror(t *testing.T) {
	is := is.New(t)
	orig := Setup()
	orig.Paint(tile("a5"), &board.Piece{Color: board.Black, Species: board.StackBlind})
	pos := orig
	pos.Mirror()
	is.Equal(pos.ToPlay(), orig.ToPlay())
	for _, c := range board.Players {
		is.Equal(pos.Pieces(c).Count(), orig.Pieces(c).Count())
		for _, e := range orig.Pieces(c).Entries() {
			p, ok := pos.PieceAt(e.Tile.Mirror())
			is.True(ok)
			is.Equal(p, board.Piece{Color: c, Species: e.Species})
		}
	}
	pos.Mirror()
	is.Equal(pos, orig)
}

func TestPerft(t *testing.T) {
	is := is.New(t)
	pos := Setup()
	is.Equal(Perft(pos, 1), uint64(len(pos.ValidMoves())))
	var sum uint64
	for _, n := range Divide(pos, 2) {
		sum += n
	}
	is.Equal(Perft(pos, 2), sum)
}

func containsPly(moves []board.Ply, p board.Ply) bool {
	for _, m := range moves {
		if m == p {
			return true
		}
	}
	return false
}

func benchPosition() Position {
	pos := Setup()
	for _, m := range []string{"d6b5", "b1d2", "a5a3"} {
		pos.ApplyMove(board.MustParsePly(m))
	}
	return pos
}

var (
	benchSinkPos   Position
	benchSinkMoves []board.Ply
	benchSinkMap   board.PieceMap
)

func BenchmarkCopyPosition(b *testing.B) {
	pos := benchPosition()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSinkPos = pos
	}
}

func BenchmarkValidMoves(b *testing.B) {
	pos := benchPosition()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSinkMoves = pos.ValidMoves()
	}
}

func BenchmarkApplyMove(b *testing.B) {
	pos := benchPosition()
	m := pos.ValidMoves()[0]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		child := pos
		child.ApplyMove(m)
		benchSinkPos = child
	}
}

func BenchmarkStageTranslate(b *testing.B) {
	pos := benchPosition()
	m := pos.ValidMoves()[0]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		child := pos
		child.stageTranslate(m)
		benchSinkPos = child
	}
}

func BenchmarkStageAttackScan(b *testing.B) {
	pos := benchPosition()
	pos.stageTranslate(pos.ValidMoves()[0])
	mover := pos.ToPlay()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		child := pos
		benchSinkMap = child.stageAttackScan(mover)
	}
}
