package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/wordsmithgame/wordsmith/board"
	"github.com/wordsmithgame/wordsmith/tilemapping"
)

// MoveType is a type of move; a play, an exchange or a pass.
type MoveType uint8

const (
	MoveTypePlay MoveType = iota
	MoveTypeExchange
	MoveTypePass
)

var ErrTileNotOnRack = errors.New("tile not on rack")

// Provenance says where a tile of a play came from.
type Provenance uint8

const (
	FromRack Provenance = iota
	FromBoard
)

// PlayedTile is one slot of a play. Blanks are always designated.
type PlayedTile struct {
	Tile tilemapping.Tile
	From Provenance
}

// PositionedTile is a PlayedTile along with the square it occupies.
type PositionedTile struct {
	board.Pos
	PlayedTile
}

// Move is a move. Plays have a score, position and direction; exchanges
// and passes only have tiles and a leave.
type Move struct {
	action      MoveType
	score       int
	coords      string
	tiles       []PlayedTile
	leave       []tilemapping.Tile
	start       board.Pos
	anchor      board.Pos
	dir         board.BoardDirection
	tilesPlayed int
}

var reVertical, reHorizontal *regexp.Regexp

func init() {
	reVertical = regexp.MustCompile(`^(?P<col>[A-Z])(?P<row>[0-9]+)$`)
	reHorizontal = regexp.MustCompile(`^(?P<row>[0-9]+)(?P<col>[A-Z])$`)
}

// NewScoringMove creates a scoring *Move and returns it. tiles are the
// contiguous slots of the main word starting at start; the move keeps its
// own copy of them.
func NewScoringMove(score int, tiles []PlayedTile, dir board.BoardDirection,
	start board.Pos, anchor board.Pos) *Move {

	cp := make([]PlayedTile, len(tiles))
	copy(cp, tiles)
	tilesPlayed := 0
	for _, t := range cp {
		if t.From == FromRack {
			tilesPlayed++
		}
	}
	return &Move{
		action:      MoveTypePlay,
		score:       score,
		tiles:       cp,
		start:       start,
		anchor:      anchor,
		dir:         dir,
		tilesPlayed: tilesPlayed,
		coords:      ToBoardGameCoords(start.Row, start.Col, dir == board.VerticalDirection),
	}
}

// NewScoringMoveSimple takes in user-visible strings. A '.' plays through
// the tile already on the board, as does any letter on an occupied square.
// Lowercase letters are blanks. Mostly for tests and the shell.
func NewScoringMoveSimple(score int, coords string, word string,
	b *board.GameBoard) (*Move, error) {

	row, col, vertical, err := ParseBoardGameCoords(coords)
	if err != nil {
		return nil, err
	}
	dir := board.HorizontalDirection
	if vertical {
		dir = board.VerticalDirection
	}
	start := board.Pos{Row: row, Col: col}
	tiles := make([]PlayedTile, 0, len(word))
	p := start
	anchor := start
	anchorSet := false
	for _, r := range word {
		if !p.InBounds() {
			return nil, fmt.Errorf("play %v %v does not fit on the board", coords, word)
		}
		onBoard, occupied := b.GetTile(p.Row, p.Col)
		switch {
		case occupied:
			if r != tilemapping.ASCIIPlayedThrough && onBoard.Letter() != byte(strings.ToUpper(string(r))[0]) {
				return nil, fmt.Errorf("square %v holds %v, not %c", p, onBoard, r)
			}
			tiles = append(tiles, PlayedTile{onBoard, FromBoard})
		case r == tilemapping.ASCIIPlayedThrough:
			return nil, fmt.Errorf("no tile to play through at %v", p)
		default:
			t, err := tilemapping.TileFromRune(r)
			if err != nil {
				return nil, err
			}
			if !t.IsDesignated() {
				return nil, fmt.Errorf("blank in %v must be designated", word)
			}
			if !anchorSet {
				anchor, anchorSet = p, true
			}
			tiles = append(tiles, PlayedTile{t, FromRack})
		}
		p = p.Step(dir, 1)
	}
	return NewScoringMove(score, tiles, dir, start, anchor), nil
}

// NewExchangeMove creates an exchange.
func NewExchangeMove(tiles []tilemapping.Tile, leave []tilemapping.Tile) *Move {
	played := make([]PlayedTile, len(tiles))
	for i, t := range tiles {
		played[i] = PlayedTile{t, FromRack}
	}
	return &Move{
		action:      MoveTypeExchange,
		tiles:       played,
		leave:       leave,
		tilesPlayed: len(tiles), // tiles exchanged, really..
	}
}

// NewPassMove creates a pass with the given leave.
func NewPassMove(leave []tilemapping.Tile) *Move {
	return &Move{
		action: MoveTypePass,
		leave:  leave,
	}
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	switch m.action {
	case MoveTypePlay:
		return fmt.Sprintf("<action: play word: %v %v score: %v tp: %v leave: %v>",
			m.coords, m.TilesString(), m.score, m.tilesPlayed, m.LeaveString())
	case MoveTypePass:
		return fmt.Sprintf("<action: pass leave: %v>", m.LeaveString())
	case MoveTypeExchange:
		return fmt.Sprintf("<action: exchange %v tp: %v leave: %v>",
			m.TilesString(), m.tilesPlayed, m.LeaveString())
	}
	return "<Unhandled move>"
}

// TilesString is the short play string: played-through tiles are
// shown as '.'.
func (m *Move) TilesString() string {
	var sb strings.Builder
	for _, t := range m.tiles {
		if t.From == FromBoard {
			sb.WriteByte(tilemapping.ASCIIPlayedThrough)
		} else {
			sb.WriteRune(t.Tile.UserVisible())
		}
	}
	return sb.String()
}

func (m *Move) LeaveString() string {
	return tilemapping.TilesToString(m.leave)
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m *Move) ShortDescription() string {
	switch m.action {
	case MoveTypePlay:
		return fmt.Sprintf("%v %v", m.coords, m.TilesString())
	case MoveTypePass:
		return "(Pass)"
	case MoveTypeExchange:
		return fmt.Sprintf("(exch %v)", m.TilesString())
	}
	return "UNHANDLED"
}

func (m *Move) Action() MoveType {
	return m.action
}

func (m *Move) Score() int {
	return m.score
}

// TilesPlayed returns the number of tiles played (or exchanged) by this move.
func (m *Move) TilesPlayed() int {
	return m.tilesPlayed
}

// IsBingo is true when all seven tiles of a rack were played.
func (m *Move) IsBingo() bool {
	return m.action == MoveTypePlay && m.tilesPlayed == tilemapping.RackTileLimit
}

func (m *Move) Direction() board.BoardDirection {
	return m.dir
}

// Start is the square of the first tile of the main word.
func (m *Move) Start() board.Pos {
	return m.start
}

// Anchor is the anchor square the play was generated from.
func (m *Move) Anchor() board.Pos {
	return m.anchor
}

func (m *Move) BoardCoords() string {
	return m.coords
}

func (m *Move) CoordsAndVertical() (int, int, bool) {
	return m.start.Row, m.start.Col, m.dir == board.VerticalDirection
}

// Tiles returns the slots of the play. It must not be modified.
func (m *Move) Tiles() []PlayedTile {
	return m.tiles
}

// RackTiles returns the tiles that came off the rack, in board order.
func (m *Move) RackTiles() []tilemapping.Tile {
	return lo.FilterMap(m.tiles, func(t PlayedTile, _ int) (tilemapping.Tile, bool) {
		return t.Tile, t.From == FromRack
	})
}

// TilePositions returns every slot of the main word with its square.
func (m *Move) TilePositions() []PositionedTile {
	ret := make([]PositionedTile, len(m.tiles))
	for i, t := range m.tiles {
		ret[i] = PositionedTile{m.start.Step(m.dir, i), t}
	}
	return ret
}

// Word is the full main word, blanks in lowercase.
func (m *Move) Word() string {
	var sb strings.Builder
	for _, t := range m.tiles {
		sb.WriteRune(t.Tile.UserVisible())
	}
	return sb.String()
}

func (m *Move) Leave() []tilemapping.Tile {
	return m.leave
}

func (m *Move) SetLeave(leave []tilemapping.Tile) {
	m.leave = leave
}

// UniqueKey identifies a play by its direction, origin and tiles. Two plays
// with the same key place the same tiles on the same squares.
func (m *Move) UniqueKey() string {
	var sb strings.Builder
	sb.Grow(len(m.tiles) + 8)
	sb.WriteByte(byte('0' + m.action))
	sb.WriteString(m.coords)
	sb.WriteByte(' ')
	for _, t := range m.tiles {
		sb.WriteByte(byte(t.Tile))
	}
	return sb.String()
}

// Equals compares two moves, ignoring the anchor and the leave.
func (m *Move) Equals(o *Move) bool {
	if m.action != o.action || m.score != o.score || m.dir != o.dir ||
		m.start != o.start || len(m.tiles) != len(o.tiles) {
		return false
	}
	for i := range m.tiles {
		if m.tiles[i] != o.tiles[i] {
			return false
		}
	}
	return true
}

// Apply places the rack tiles of a play onto the board and takes them off
// the rack. Nothing changes if a tile is missing from the rack or a square
// is not empty.
func (m *Move) Apply(b *board.GameBoard, rack *tilemapping.Rack) error {
	if m.action != MoveTypePlay {
		return fmt.Errorf("cannot apply a %v to the board", m.ShortDescription())
	}
	check := rack.Copy()
	for _, pt := range m.TilePositions() {
		if pt.From == FromBoard {
			continue
		}
		if b.HasTile(pt.Row, pt.Col) || !pt.InBounds() {
			return fmt.Errorf("square %v is not available", pt.Pos)
		}
		if !check.RemoveTile(pt.Tile) {
			return fmt.Errorf("%w: %v", ErrTileNotOnRack, pt.Tile)
		}
	}
	for _, pt := range m.TilePositions() {
		if pt.From == FromRack {
			b.PlaceTile(pt.Row, pt.Col, pt.Tile)
		}
	}
	rack.CopyFrom(check)
	return nil
}

// ToBoardGameCoords converts the row, col, and orientation of the play to
// a coordinate like 5F or G4.
func ToBoardGameCoords(row int, col int, vertical bool) string {
	colCoords := string(rune('A' + col))
	rowCoords := strconv.Itoa(int(row + 1))
	var coords string
	if vertical {
		coords = colCoords + rowCoords
	} else {
		coords = rowCoords + colCoords
	}
	return coords
}

// FromBoardGameCoords does the inverse operation of ToBoardGameCoords above.
func FromBoardGameCoords(c string) (int, int, bool) {
	vMatches := reVertical.FindStringSubmatch(c)
	var row, col int
	var vertical bool
	if len(vMatches) == 3 {
		// It's vertical
		row, _ = strconv.Atoi(vMatches[2])
		col = int(vMatches[1][0] - 'A')
		vertical = true
		return row - 1, col, vertical
	}
	hMatches := reHorizontal.FindStringSubmatch(c)
	if len(hMatches) == 3 {
		row, _ = strconv.Atoi(hMatches[1])
		col = int(hMatches[2][0] - 'A')
		vertical = false
		return row - 1, col, vertical
	}

	return 0, 0, false
}

// ParseBoardGameCoords is FromBoardGameCoords for user input; it rejects
// coordinates that are malformed or off the board.
func ParseBoardGameCoords(c string) (int, int, bool, error) {
	c = strings.ToUpper(c)
	if !reVertical.MatchString(c) && !reHorizontal.MatchString(c) {
		return 0, 0, false, fmt.Errorf("malformed coordinates %v", c)
	}
	row, col, vertical := FromBoardGameCoords(c)
	if !(board.Pos{Row: row, Col: col}).InBounds() {
		return 0, 0, false, fmt.Errorf("coordinates %v are off the board", c)
	}
	return row, col, vertical, nil
}
