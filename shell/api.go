package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/tokonoma/hexstack/alphabeta"
	"github.com/tokonoma/hexstack/board"
	"github.com/tokonoma/hexstack/bot"
	"github.com/tokonoma/hexstack/config"
	"github.com/tokonoma/hexstack/match"
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.match = match.Setup()
	sc.tt.Clear()
	return sc.show(cmd)
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	sb.WriteString(sc.match.State().ToDisplayText())
	captured := sc.match.CurrentCaptured()
	for _, p := range board.Players {
		counts := sc.match.State().Pieces(p).SpeciesCounts()
		var onBoard []string
		for s, n := range counts {
			if n > 0 {
				onBoard = append(onBoard, fmt.Sprintf("%vx%d", board.Species(s), n))
			}
		}
		fmt.Fprintf(&sb, "%v pieces: %v\n", p, strings.Join(onBoard, " "))
		fmt.Fprintf(&sb, "%v captured: %v (worth %.1f)\n", p, captured[p], captured[p].Value())
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	moves := sc.match.ValidMoves()
	if len(moves) == 0 {
		return msg("no moves"), nil
	}
	pos := sc.match.State()
	captured := sc.match.CurrentCaptured()
	notations := lo.Map(moves, func(ply board.Ply, _ int) string {
		return fmt.Sprintf("%v (%v)", ply, pos.ComputeHistoryEntry(ply, captured))
	})
	return msg(fmt.Sprintf("%d moves: %s", len(moves), strings.Join(notations, ", "))), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <ply>, e.g. play d6b5")
	}
	ply, err := board.ParsePly(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.match.ApplyMove(ply); err != nil {
		return nil, err
	}
	return sc.afterMove()
}

func (sc *ShellController) afterMove() (*Response, error) {
	h := sc.match.History()
	last := h[len(h)-1]
	resp, err := sc.show(nil)
	if err != nil {
		return nil, err
	}
	resp.message = fmt.Sprintf("%d. %v\n%s", len(h), last, resp.message)
	return resp, nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	n, err := cmd.intArg(0, 1)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, errors.New("undo needs a positive number of moves")
	}
	undone := sc.match.UndoMoves(n)
	resp, err := sc.show(cmd)
	if err != nil {
		return nil, err
	}
	resp.message = fmt.Sprintf("undid %d moves\n%s", undone, resp.message)
	return resp, nil
}

func (sc *ShellController) gen(cmd *shellcmd) (*Response, error) {
	depth, err := cmd.intArg(0, 2)
	if err != nil {
		return nil, err
	}
	n, err := cmd.intArg(1, 10)
	if err != nil {
		return nil, err
	}
	if depth < 0 || n < 1 {
		return nil, errors.New("usage: gen [depth] [n]")
	}
	scored := alphabeta.MovesWithScore(sc.match.State(), depth, sc.tt)
	if len(scored) == 0 {
		return msg("the game is decided"), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-4s %-8s %-12s %s\n", "#", "Ply", "Score", "Nodes")
	for i, sp := range scored[:min(n, len(scored))] {
		fmt.Fprintf(&sb, "%-4d %-8v %-12v %d\n", i+1, sp.Ply, sp.Result.Score, sp.Result.Nodes)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) botPlay(cmd *shellcmd) (*Response, error) {
	levelName := sc.config.GetString(config.ConfigBotLevel)
	if len(cmd.args) > 0 {
		levelName = cmd.args[0]
	}
	level, err := bot.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if sc.bot == nil || sc.bot.Level() != level {
		sc.bot = bot.NewBotWithTable(level, sc.tt)
	}
	if _, won := sc.match.IsWon(); won {
		return nil, match.ErrGameOver
	}
	ply, err := sc.bot.BestMove(context.Background(), sc.match.State())
	if err != nil {
		return nil, err
	}
	if err := sc.match.ApplyMove(ply); err != nil {
		return nil, err
	}
	resp, err := sc.afterMove()
	if err != nil {
		return nil, err
	}
	resp.message = fmt.Sprintf("%v searched %d plies\n%s", level.Name, sc.bot.LastUsedDepth(), resp.message)
	return resp, nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	pos := sc.match.State()
	out := fmt.Sprintf("heuristic: %v", pos.EvalHeuristic())
	if len(cmd.args) > 0 {
		depth, err := cmd.intArg(0, 0)
		if err != nil {
			return nil, err
		}
		res := alphabeta.Eval(pos, depth, sc.tt)
		out += fmt.Sprintf("\ndepth %d: %v (%d nodes)", depth, res.Score, res.Nodes)
	}
	return msg(out), nil
}

func (sc *ShellController) attacks(cmd *shellcmd) (*Response, error) {
	attacker := sc.match.ToPlay()
	if len(cmd.args) > 0 {
		p, err := board.ParsePlayer(cmd.args[0])
		if err != nil {
			return nil, err
		}
		attacker = p
	}
	return msg(fmt.Sprintf("%v attacks twice: %v", attacker,
		sc.match.State().DoubleAttackMap(attacker))), nil
}

// paint edits the board. The edited position starts a new match.
func (sc *ShellController) paint(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: paint <tile> <piece|empty>, e.g. paint c4 wFS")
	}
	t, err := board.ParseTile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	var brush *board.Piece
	if cmd.args[1] != "empty" {
		p, err := board.ParsePiece(cmd.args[1])
		if err != nil {
			return nil, err
		}
		brush = &p
	}
	pos := sc.match.State()
	pos.Paint(t, brush)
	sc.match = match.SetupFrom(pos)
	return sc.show(cmd)
}

func (sc *ShellController) flip(cmd *shellcmd) (*Response, error) {
	pos := sc.match.State()
	pos.FlipToMove()
	sc.match = match.SetupFrom(pos)
	return sc.show(cmd)
}

func (sc *ShellController) mirror(cmd *shellcmd) (*Response, error) {
	pos := sc.match.State()
	pos.Mirror()
	sc.match = match.SetupFrom(pos)
	return sc.show(cmd)
}

func (sc *ShellController) opening(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	for _, p := range board.Players {
		op, err := sc.match.HalfOpening(p)
		switch {
		case errors.Is(err, match.ErrNonStandardSetup), errors.Is(err, match.ErrNotEnoughMoves):
			fmt.Fprintf(&sb, "%v: %v\n", p, err)
		case err != nil:
			return nil, err
		case op == nil:
			fmt.Fprintf(&sb, "%v: no named opening\n", p)
		default:
			fmt.Fprintf(&sb, "%v: %v (%v %v)\n", p, op, op.WhiteMoves[0], op.WhiteMoves[1])
		}
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	h := sc.match.History()
	if len(h) == 0 {
		return msg("no moves played"), nil
	}
	var sb strings.Builder
	for i := 0; i < len(h); i += 2 {
		fmt.Fprintf(&sb, "%3d. %-10v", i/2+1, h[i])
		if i+1 < len(h) {
			fmt.Fprintf(&sb, " %v", h[i+1])
		}
		sb.WriteString("\n")
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) ttStats(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 && cmd.args[0] == "clear" {
		sc.tt.Clear()
		return msg("table cleared"), nil
	}
	out, err := yaml.Marshal(sc.tt.Stats())
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(string(out), "\n")), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		settings := sc.config.SanitizedSettings()
		keys := lo.Keys(settings)
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteString("Settings:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %v\n", k, settings[k])
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	key := cmd.args[0]
	if !lo.Contains(config.AdjustableSettings, key) {
		return nil, fmt.Errorf("no such setting: %v", key)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%v: %v", key, sc.config.Get(key))), nil
	}
	value := cmd.args[1]
	if key == config.ConfigBotLevel {
		if _, err := bot.ParseLevel(value); err != nil {
			return nil, err
		}
	}
	sc.config.Lock()
	sc.config.Set(key, value)
	sc.config.Unlock()
	return msg("set " + key + " to " + value), nil
}
