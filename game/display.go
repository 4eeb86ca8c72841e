package game

import (
	"fmt"
	"strings"

	"github.com/tokonoma/hexstack/board"
)

const cellWidth = 4

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

func cellText(p Position, t board.Tile) string {
	piece, ok := p.PieceAt(t)
	if !ok {
		return "."
	}
	return piece.String()
}

// ToDisplayText draws the board one row per letter, digits increasing to
// the right, with a few facts about the position alongside.
func (p Position) ToDisplayText() string {
	var lines []string
	header := "  "
	for d := 1; d <= 7; d++ {
		header += fmt.Sprintf("%-*d", cellWidth, d)
	}
	lines = append(lines, header)

	for row := 0; row < 5; row++ {
		x := row - board.ShortRadius
		n := 7 - abs(x)
		var sb strings.Builder
		sb.WriteByte("abcde"[row])
		sb.WriteByte(' ')
		sb.WriteString(strings.Repeat(" ", abs(x)*cellWidth/2))
		for d := 1; d <= n; d++ {
			t, err := board.ParseTile(fmt.Sprintf("%c%d", "abcde"[row], d))
			if err != nil {
				panic(err)
			}
			sb.WriteString(fmt.Sprintf("%-*s", cellWidth, cellText(p, t)))
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	for i := range lines {
		lines[i] += strings.Repeat(" ", width-len(lines[i]))
	}
	addText(lines, 1, 4, "to move: "+p.toPlay.String())
	addText(lines, 2, 4, fmt.Sprintf("white pieces: %d", p.pieces[board.White].Count()))
	addText(lines, 3, 4, fmt.Sprintf("black pieces: %d", p.pieces[board.Black].Count()))
	if w, ok := p.IsWon(); ok {
		addText(lines, 4, 4, "winner: "+w.String())
	}
	return strings.Join(lines, "\n") + "\n"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
