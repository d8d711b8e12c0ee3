package board

import (
	"errors"
	"fmt"

	"github.com/wordsmithgame/wordsmith/tilemapping"
)

// BoardDim is the number of rows (and columns) of every board.
const BoardDim = 15

// CenterSquare is where the first play must go.
var CenterSquare = Pos{BoardDim / 2, BoardDim / 2}

var ErrBadLayout = errors.New("bad board layout")

type BoardDirection uint8

func (bd BoardDirection) String() string {
	if bd == HorizontalDirection {
		return "(horizontal)"
	} else if bd == VerticalDirection {
		return "(vertical)"
	}
	return "none"
}

const (
	HorizontalDirection BoardDirection = iota
	VerticalDirection
)

// Other is the perpendicular direction.
func (bd BoardDirection) Other() BoardDirection {
	if bd == HorizontalDirection {
		return VerticalDirection
	}
	return HorizontalDirection
}

// Pos is a square on the board, 0-indexed.
type Pos struct {
	Row int
	Col int
}

// Step moves n squares along dir. n may be negative.
func (p Pos) Step(dir BoardDirection, n int) Pos {
	if dir == HorizontalDirection {
		return Pos{p.Row, p.Col + n}
	}
	return Pos{p.Row + n, p.Col}
}

// InBounds is true if the position is on the board.
func (p Pos) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardDim && p.Col >= 0 && p.Col < BoardDim
}

// BoardTile is an occupied square.
type BoardTile struct {
	Pos
	Tile tilemapping.Tile
}

type layout [BoardDim][BoardDim]BonusSquare

// A GameBoard is the main board structure. Tiles are stored by value; the
// bonus layout is immutable and shared between a board and its copies.
type GameBoard struct {
	squares     [BoardDim][BoardDim]tilemapping.Tile
	bonuses     *layout
	tilesPlayed int
}

var standardLayout *layout

func init() {
	l, err := parseLayout(StandardLayout)
	if err != nil {
		panic(err)
	}
	standardLayout = l
}

func parseLayout(desc []string) (*layout, error) {
	if len(desc) != BoardDim {
		return nil, fmt.Errorf("%w: %d rows", ErrBadLayout, len(desc))
	}
	l := &layout{}
	for i, s := range desc {
		row := []rune(s)
		if len(row) != BoardDim {
			return nil, fmt.Errorf("%w: row %d has %d squares", ErrBadLayout, i+1, len(row))
		}
		for j, c := range row {
			b := BonusSquare(c)
			if !b.valid() {
				return nil, fmt.Errorf("%w: unknown bonus %q", ErrBadLayout, c)
			}
			l[i][j] = b
		}
	}
	return l, nil
}

// NewBoard returns an empty board with the standard layout.
func NewBoard() *GameBoard {
	return &GameBoard{bonuses: standardLayout}
}

// MakeBoard creates an empty board from a description string.
func MakeBoard(desc []string) (*GameBoard, error) {
	l, err := parseLayout(desc)
	if err != nil {
		return nil, err
	}
	return &GameBoard{bonuses: l}, nil
}

// Dim is the dimension of the board.
func (g *GameBoard) Dim() int {
	return BoardDim
}

func (g *GameBoard) PosExists(row int, col int) bool {
	return row >= 0 && row < BoardDim && col >= 0 && col < BoardDim
}

// GetBonus returns the bonus square at row, col, or NoBonus when off the
// board.
func (g *GameBoard) GetBonus(row int, col int) BonusSquare {
	if !g.PosExists(row, col) {
		return NoBonus
	}
	return g.bonuses[row][col]
}

// GetTile returns the tile at row, col. The second return value is false if
// the square is empty or off the board.
func (g *GameBoard) GetTile(row int, col int) (tilemapping.Tile, bool) {
	if !g.PosExists(row, col) {
		return tilemapping.EmptyTile, false
	}
	t := g.squares[row][col]
	return t, t != tilemapping.EmptyTile
}

// GetLetter returns the tile at row, col, or the empty tile when the square
// is empty or off the board.
func (g *GameBoard) GetLetter(row int, col int) tilemapping.Tile {
	if !g.PosExists(row, col) {
		return tilemapping.EmptyTile
	}
	return g.squares[row][col]
}

// HasTile is true if the square at row, col holds a tile.
func (g *GameBoard) HasTile(row int, col int) bool {
	return g.GetLetter(row, col) != tilemapping.EmptyTile
}

// PlaceTile puts a tile on an empty square. It returns false if the square
// is off the board or occupied, or if the tile is empty or an undesignated
// blank.
func (g *GameBoard) PlaceTile(row int, col int, t tilemapping.Tile) bool {
	if !g.PosExists(row, col) || !t.IsDesignated() {
		return false
	}
	if g.squares[row][col] != tilemapping.EmptyTile {
		return false
	}
	g.squares[row][col] = t
	g.tilesPlayed++
	return true
}

// PlaceWord places the tiles of word starting at row, col and going in dir.
// Lowercase letters are blanks; a '.' (or a letter matching the tile
// already there) plays through an occupied square. Nothing is placed if the
// word does not fit.
func (g *GameBoard) PlaceWord(row int, col int, dir BoardDirection, word string) error {
	type placement struct {
		p Pos
		t tilemapping.Tile
	}
	var toPlace []placement
	p := Pos{row, col}
	for _, r := range word {
		if !p.InBounds() {
			return fmt.Errorf("word %v does not fit on the board", word)
		}
		existing := g.squares[p.Row][p.Col]
		if r == tilemapping.ASCIIPlayedThrough {
			if existing == tilemapping.EmptyTile {
				return fmt.Errorf("no tile to play through at %v", p)
			}
			p = p.Step(dir, 1)
			continue
		}
		t, err := tilemapping.TileFromRune(r)
		if err != nil {
			return err
		}
		if !t.IsDesignated() {
			return fmt.Errorf("blank in %v must be designated", word)
		}
		if existing != tilemapping.EmptyTile {
			if existing.Letter() != t.Letter() {
				return fmt.Errorf("square %v is already occupied by %v", p, existing)
			}
		} else {
			toPlace = append(toPlace, placement{p, t})
		}
		p = p.Step(dir, 1)
	}
	for _, pl := range toPlace {
		g.PlaceTile(pl.p.Row, pl.p.Col, pl.t)
	}
	return nil
}

// IsEmpty returns if the board is empty.
func (g *GameBoard) IsEmpty() bool {
	return g.tilesPlayed == 0
}

// TilesPlayed is the number of tiles on the board.
func (g *GameBoard) TilesPlayed() int {
	return g.tilesPlayed
}

// Tiles returns every tile on the board in row-major order.
func (g *GameBoard) Tiles() []BoardTile {
	tiles := make([]BoardTile, 0, g.tilesPlayed)
	for i := 0; i < BoardDim; i++ {
		for j := 0; j < BoardDim; j++ {
			if g.squares[i][j] != tilemapping.EmptyTile {
				tiles = append(tiles, BoardTile{Pos{i, j}, g.squares[i][j]})
			}
		}
	}
	return tiles
}

// Copy returns a deep copy of the tiles. The bonus layout is shared.
func (g *GameBoard) Copy() *GameBoard {
	n := *g
	return &n
}

// CopyFrom copies the squares and layout of other into this board.
func (g *GameBoard) CopyFrom(other *GameBoard) {
	*g = *other
}

// Clear clears the board.
func (g *GameBoard) Clear() {
	g.squares = [BoardDim][BoardDim]tilemapping.Tile{}
	g.tilesPlayed = 0
}
