package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/tokonoma/hexstack/alphabeta"
	"github.com/tokonoma/hexstack/bot"
	"github.com/tokonoma/hexstack/config"
	"github.com/tokonoma/hexstack/match"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("quit")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// extractFields splits a line into a command, its positional arguments
// and its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: map[string]string{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if i+1 >= len(fields) {
				return nil, errWrongOptionSyntax
			}
			cmd.options[f[1:]] = fields[i+1]
			i++
			continue
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

func (c *shellcmd) intArg(idx int, def int) (int, error) {
	if idx >= len(c.args) {
		return def, nil
	}
	return strconv.Atoi(c.args[idx])
}

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	match *match.MatchState
	// The shell's own table, shared by gen and eval and the bot.
	tt  *alphabeta.TranspositionTable
	bot *bot.Bot
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mhexstack>\033[0m ",
		HistoryFile:     "/tmp/hexstack-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc := newController(cfg)
	sc.l = l
	return sc, nil
}

// newController builds everything but the terminal.
func newController(cfg *config.Config) *ShellController {
	tt := &alphabeta.TranspositionTable{}
	tt.Reset(cfg.GetFloat64(config.ConfigTTMemoryFraction))
	return &ShellController{
		config: cfg,
		match:  match.Setup(),
		tt:     tt,
	}
}

func (sc *ShellController) handle(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "quit":
		return nil, errQuit
	case "help", "h":
		return sc.help(cmd)
	case "new", "n":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves", "m":
		return sc.moves(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "gen", "g":
		return sc.gen(cmd)
	case "bot", "b":
		return sc.botPlay(cmd)
	case "eval", "e":
		return sc.eval(cmd)
	case "attacks":
		return sc.attacks(cmd)
	case "paint":
		return sc.paint(cmd)
	case "flip":
		return sc.flip(cmd)
	case "mirror":
		return sc.mirror(cmd)
	case "opening":
		return sc.opening(cmd)
	case "history":
		return sc.history(cmd)
	case "tt":
		return sc.ttStats(cmd)
	case "set":
		return sc.set(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// Execute runs a single command line, as given on the program's command
// line.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.handle(line)
	if errors.Is(err, errQuit) {
		sig <- syscall.SIGINT
		return
	}
	if err != nil {
		sc.showError(err)
	} else if resp != nil {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.handle(line)
		if errors.Is(err, errQuit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
		} else if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("exiting-readline-loop")
}

func (sc *ShellController) Cleanup() {
	log.Debug().Interface("tt", sc.tt.Stats()).Msg("shell-cleanup")
}
