// Package shell is an interactive console for setting up positions and
// looking at the moves the generator finds for them.
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

	"github.com/wordsmithgame/wordsmith/board"
	"github.com/wordsmithgame/wordsmith/cache"
	"github.com/wordsmithgame/wordsmith/config"
	"github.com/wordsmithgame/wordsmith/gaddag"
	"github.com/wordsmithgame/wordsmith/move"
	"github.com/wordsmithgame/wordsmith/movegen"
	"github.com/wordsmithgame/wordsmith/tilemapping"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format for option")
	errNoLexicon         = errors.New("no lexicon loaded; use the lexicon command")
	errExit              = errors.New("exit")
)

// boolOptions are options that take no value.
var boolOptions = map[string]bool{
	"yaml": true,
}

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	cfg     *config.Config
	gaddags *cache.Cache[*gaddag.Gaddag]

	lexicon string
	gen     *movegen.GordonGenerator
	board   *board.GameBoard
	rack    *tilemapping.Rack

	curPlays []*move.Move
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController creates a console that reads from the terminal.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc := newController(cfg, os.Stderr)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mwordsmith>\033[0m ",
		HistoryFile:     "/tmp/wordsmith_readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc, nil
}

func newController(cfg *config.Config, out io.Writer) *ShellController {
	return &ShellController{
		out:     out,
		cfg:     cfg,
		gaddags: cache.New(cfg, gaddag.CacheLoadFunc),
		board:   board.NewBoard(),
		rack:    tilemapping.NewRack(),
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its arguments and its
// options. Options look like -name value, except for boolOptions.
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
		if !strings.HasPrefix(f, "-") || len(f) == 1 {
			cmd.args = append(cmd.args, f)
			continue
		}
		name := f[1:]
		if boolOptions[name] {
			cmd.options[name] = "true"
			continue
		}
		if i == len(fields)-1 {
			return nil, errWrongOptionSyntax
		}
		cmd.options[name] = fields[i+1]
		i++
	}
	return cmd, nil
}

func (c *shellcmd) intArg(idx int, defaultI int) (int, error) {
	if idx >= len(c.args) {
		return defaultI, nil
	}
	return strconv.Atoi(c.args[idx])
}

func (c *shellcmd) intOption(key string, defaultI int) (int, error) {
	v, ok := c.options[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

// Execute runs one line of input and prints what it has to say.
func (sc *ShellController) Execute(line string) error {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil
	}
	if err != nil {
		return err
	}
	resp, err := sc.dispatch(cmd)
	if err != nil {
		return err
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		err = sc.Execute(strings.TrimSpace(line))
		if err == errExit {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	log.Debug().Str("cmd", cmd.cmd).Strs("args", cmd.args).Msg("dispatch")
	switch cmd.cmd {
	case "exit":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "lexicon":
		return sc.setLexicon(cmd)
	case "new":
		return sc.newGame(cmd)
	case "place":
		return sc.place(cmd)
	case "rack":
		return sc.setRack(cmd)
	case "gen":
		return sc.generate(cmd)
	case "play":
		return sc.play(cmd)
	case "board":
		return msg(sc.board.ToDisplayText()), nil
	case "cgp":
		return sc.loadCGP(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	default:
		return nil, fmt.Errorf("command %v not found", strconv.Quote(cmd.cmd))
	}
}
