package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/wordsmithgame/wordsmith/automatic"
	"github.com/wordsmithgame/wordsmith/board"
	"github.com/wordsmithgame/wordsmith/cgp"
	"github.com/wordsmithgame/wordsmith/config"
	"github.com/wordsmithgame/wordsmith/move"
	"github.com/wordsmithgame/wordsmith/movegen"
	"github.com/wordsmithgame/wordsmith/tilemapping"
)

const defaultNumPlays = 15

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

// yamlPlay is how a generated play looks in gen -yaml output.
type yamlPlay struct {
	Rank  int    `yaml:"rank"`
	Move  string `yaml:"move"`
	Word  string `yaml:"word"`
	Score int    `yaml:"score"`
	Leave string `yaml:"leave"`
	Bingo bool   `yaml:"bingo,omitempty"`
}

func moveTableHeader() string {
	return "     Move                Leave    Score"
}

func MoveTableRow(idx int, m *move.Move) string {
	return fmt.Sprintf("%3d: %-20s%-9s%-6d", idx+1,
		m.ShortDescription(), m.LeaveString(), m.Score())
}

func (sc *ShellController) setLexicon(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		if sc.lexicon == "" {
			return msg("No lexicon loaded."), nil
		}
		return msg("Lexicon: " + sc.lexicon), nil
	}
	if err := sc.loadLexicon(cmd.args[0]); err != nil {
		return nil, err
	}
	return msg("Loaded lexicon " + sc.lexicon), nil
}

func (sc *ShellController) loadLexicon(name string) error {
	gd, err := sc.gaddags.Get(name)
	if err != nil {
		return fmt.Errorf("loading lexicon %v: %w", name, err)
	}
	sc.lexicon = name
	sc.gen = movegen.NewGordonGenerator(gd)
	sc.gen.SetMaxNodes(sc.cfg.GetInt(config.ConfigMaxSearchNodes))
	sc.curPlays = nil
	return nil
}

// ensureLexicon loads the default lexicon if none was picked.
func (sc *ShellController) ensureLexicon() error {
	if sc.gen != nil {
		return nil
	}
	name := sc.cfg.GetString(config.ConfigDefaultLexicon)
	if name == "" {
		return errNoLexicon
	}
	log.Info().Str("lexicon", name).Msg("loading default lexicon")
	return sc.loadLexicon(name)
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.board.Clear()
	sc.rack.Clear()
	sc.curPlays = nil
	return msg("New game."), nil
}

func (sc *ShellController) place(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: place COORDS WORD, e.g. place 8H RAIN")
	}
	row, col, vertical, err := move.ParseBoardGameCoords(cmd.args[0])
	if err != nil {
		return nil, err
	}
	dir := board.HorizontalDirection
	if vertical {
		dir = board.VerticalDirection
	}
	if err := sc.board.PlaceWord(row, col, dir, cmd.args[1]); err != nil {
		return nil, err
	}
	sc.curPlays = nil
	return msg(sc.board.ToDisplayText()), nil
}

func (sc *ShellController) setRack(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg("Rack: " + sc.rack.String()), nil
	}
	rack, err := tilemapping.RackFromString(strings.ToUpper(cmd.args[0]))
	if err != nil {
		return nil, err
	}
	sc.rack = rack
	sc.curPlays = nil
	return msg("Rack: " + sc.rack.String()), nil
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	numPlays, err := cmd.intArg(0, defaultNumPlays)
	if err != nil {
		return nil, err
	}
	if numPlays <= 0 {
		return nil, errors.New("number of plays must be positive")
	}
	if err := sc.ensureLexicon(); err != nil {
		return nil, err
	}
	plays := sc.gen.GenAll(sc.board, sc.rack)
	sc.curPlays = movegen.TopN(plays, numPlays)
	for _, p := range sc.curPlays {
		leave, err := tilemapping.Leave(sc.rack.Tiles(), p.RackTiles(), false)
		if err != nil {
			return nil, err
		}
		p.SetLeave(leave)
	}

	var sb strings.Builder
	if cmd.options["yaml"] == "true" {
		out, err := yaml.Marshal(lo.Map(sc.curPlays, func(p *move.Move, i int) yamlPlay {
			return yamlPlay{
				Rank:  i + 1,
				Move:  p.ShortDescription(),
				Word:  p.Word(),
				Score: p.Score(),
				Leave: p.LeaveString(),
				Bingo: p.IsBingo(),
			}
		}))
		if err != nil {
			return nil, err
		}
		sb.Write(out)
	} else {
		sb.WriteString(moveTableHeader() + "\n")
		for i, p := range sc.curPlays {
			sb.WriteString(MoveTableRow(i, p) + "\n")
		}
	}
	fmt.Fprintf(&sb, "Showing %d of %d plays.", len(sc.curPlays), len(plays))
	if sc.gen.Truncated() {
		sb.WriteString(" The search was cut short.")
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play N, where N is a number from the gen list")
	}
	idx, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if idx < 1 || idx > len(sc.curPlays) {
		return nil, fmt.Errorf("no play numbered %d; run gen first", idx)
	}
	m := sc.curPlays[idx-1]
	if err := m.Apply(sc.board, sc.rack); err != nil {
		return nil, err
	}
	sc.curPlays = nil
	return msg(fmt.Sprintf("%v\nPlayed %v for %d points. Rack: %v",
		sc.board.ToDisplayText(), m.ShortDescription(), m.Score(), sc.rack.String())), nil
}

// loadCGP sets up the board and rack from a position string, or shows the
// current position as one.
func (sc *ShellController) loadCGP(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		pos := &cgp.Position{
			Board:   sc.board,
			Racks:   [2]*tilemapping.Rack{sc.rack, nil},
			Opcodes: map[string]string{},
		}
		if sc.lexicon != "" {
			pos.Opcodes["lex"] = sc.lexicon
		}
		return msg(pos.String()), nil
	}
	pos, err := cgp.ParseCGP(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	if lex := pos.Lexicon(); lex != "" && lex != sc.lexicon {
		if err := sc.loadLexicon(lex); err != nil {
			return nil, err
		}
	}
	sc.board = pos.Board
	sc.rack = pos.Racks[0]
	sc.curPlays = nil
	return msg(sc.board.ToDisplayText() + "\nRack: " + sc.rack.String()), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	numGames, err := cmd.intArg(0, sc.cfg.GetInt(config.ConfigAutoplayGames))
	if err != nil {
		return nil, err
	}
	threads, err := cmd.intOption("threads", sc.cfg.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	if err := sc.ensureLexicon(); err != nil {
		return nil, err
	}
	gd, err := sc.gaddags.Get(sc.lexicon)
	if err != nil {
		return nil, err
	}
	summary, err := automatic.StartCompVCompStaticGames(context.Background(), sc.cfg,
		gd, numGames, threads, cmd.options["file"])
	if err != nil {
		return nil, err
	}
	hist, err := summary.ScoreHistogram()
	if err != nil {
		return nil, err
	}
	out := fmt.Sprintf(
		"Played %d games, %d turns in %v.\nMean score: %.2f  Stdev: %.2f\nPositions/sec: %.1f",
		summary.Games, summary.Turns, summary.Elapsed, summary.MeanScore,
		summary.StdevScore, summary.PositionsPerSecond)
	if hist != "" {
		out += "\n" + strings.TrimRight(hist, "\n")
	}
	return msg(out), nil
}
