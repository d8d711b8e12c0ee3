// Package cgp reads and writes positions in the compact one-line format
// "ROWS RACKS SCORES NZERO [OPS]", e.g.
//
//	15/15/15/15/15/15/15/7RAIN4/15/15/15/15/15/15/15 ENTS/ 0/0 0 lex NWL20;
//
// Rows are separated by /; a number is a run of empty squares and a
// lowercase letter is a blank. Racks and scores are given for both players,
// the player on turn first. NZERO is the count of scoreless turns in a row.
package cgp

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/wordsmithgame/wordsmith/board"
	"github.com/wordsmithgame/wordsmith/tilemapping"
)

var ErrBadRow = errors.New("bad board row")

// Position is a parsed position.
type Position struct {
	Board          *board.GameBoard
	Racks          [2]*tilemapping.Rack
	Scores         [2]int
	ScorelessTurns int
	// Opcodes are the trailing operations, such as lex or gid.
	Opcodes map[string]string
}

// Lexicon is the lexicon named by the lex operation, if any.
func (p *Position) Lexicon() string {
	return p.Opcodes["lex"]
}

// ParseCGP parses a position string.
func ParseCGP(cgpstr string) (*Position, error) {
	fields := strings.SplitN(strings.TrimSpace(cgpstr), " ", 5)
	if len(fields) < 4 {
		return nil, errors.New("must have at least 4 space-separated fields")
	}
	rows := strings.Split(fields[0], "/")
	if len(rows) != board.BoardDim {
		return nil, fmt.Errorf("need %d rows, got %d", board.BoardDim, len(rows))
	}

	playerRacks := strings.Split(fields[1], "/")
	playerScores := strings.Split(fields[2], "/")
	if len(playerRacks) != len(playerScores) {
		return nil, errors.New("player racks and scores do not match")
	}
	if len(playerRacks) != 2 {
		return nil, errors.New("only 2-player games are supported")
	}

	pos := &Position{Board: board.NewBoard(), Opcodes: map[string]string{}}
	for i := range playerRacks {
		rack, err := tilemapping.RackFromString(playerRacks[i])
		if err != nil {
			return nil, err
		}
		pos.Racks[i] = rack
		pos.Scores[i], err = strconv.Atoi(playerScores[i])
		if err != nil {
			return nil, err
		}
	}

	var err error
	pos.ScorelessTurns, err = strconv.Atoi(fields[3])
	if err != nil {
		return nil, err
	}

	if len(fields) == 5 {
		for _, op := range strings.Split(fields[4], ";") {
			op := strings.TrimSpace(op)
			if len(op) == 0 {
				continue
			}
			opWithParams := strings.SplitN(op, " ", 2)
			if len(opWithParams) != 2 {
				return nil, fmt.Errorf("wrong number of arguments for %v operation", opWithParams[0])
			}
			pos.Opcodes[opWithParams[0]] = strings.TrimSpace(opWithParams[1])
		}
	}

	for i, row := range rows {
		tiles, err := rowToTiles(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		for j, t := range tiles {
			if t != tilemapping.EmptyTile {
				pos.Board.PlaceTile(i, j, t)
			}
		}
	}
	log.Debug().Int("tiles", pos.Board.TilesPlayed()).Msg("parsed cgp")
	return pos, nil
}

func rowToTiles(row string) ([]tilemapping.Tile, error) {
	tiles := make([]tilemapping.Tile, 0, board.BoardDim)
	lastN := 0
	flush := func() {
		for ; lastN > 0; lastN-- {
			tiles = append(tiles, tilemapping.EmptyTile)
		}
	}
	for _, rn := range row {
		if rn >= '0' && rn <= '9' {
			lastN = lastN*10 + int(rn-'0')
			continue
		}
		flush()
		t, err := tilemapping.TileFromRune(rn)
		if err != nil {
			return nil, err
		}
		if !t.IsDesignated() {
			return nil, fmt.Errorf("%w: undesignated blank in %v", ErrBadRow, row)
		}
		tiles = append(tiles, t)
	}
	flush()
	if len(tiles) != board.BoardDim {
		return nil, fmt.Errorf("%w: %v has %d squares", ErrBadRow, row, len(tiles))
	}
	return tiles, nil
}

// BoardToCGP writes the board part of a position.
func BoardToCGP(b *board.GameBoard) string {
	var sb strings.Builder
	for i := 0; i < board.BoardDim; i++ {
		if i > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for j := 0; j < board.BoardDim; j++ {
			t, ok := b.GetTile(i, j)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteRune(t.UserVisible())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	return sb.String()
}

// String writes the position back out. Operations come out sorted by name.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(BoardToCGP(p.Board))
	sb.WriteByte(' ')
	for i, r := range p.Racks {
		if i > 0 {
			sb.WriteByte('/')
		}
		if r != nil {
			sb.WriteString(r.String())
		}
	}
	fmt.Fprintf(&sb, " %d/%d %d", p.Scores[0], p.Scores[1], p.ScorelessTurns)
	names := lo.Keys(p.Opcodes)
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&sb, " %s %s;", name, p.Opcodes[name])
	}
	return sb.String()
}
