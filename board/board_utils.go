package board

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wordsmithgame/wordsmith/tilemapping"
)

// TilesInPlay are the tiles found in a plaintext board.
type TilesInPlay struct {
	OnBoard []tilemapping.Tile
	Rack1   []tilemapping.Tile
	Rack2   []tilemapping.Tile
}

var boardPlaintextRegex = regexp.MustCompile(`\|(.+)\|`)
var userRackRegex = regexp.MustCompile(`(?U).+\s+([A-Z\?]*)\s+-?[0-9]+`)

func (g *GameBoard) squareDisplayString(row int, col int) string {
	t := g.squares[row][col]
	if t != tilemapping.EmptyTile {
		return string(t.UserVisible())
	}
	if b := g.bonuses[row][col]; b != NoBonus {
		return b.displayString()
	}
	return " "
}

func (g *GameBoard) ToDisplayText() string {
	var str strings.Builder
	n := g.Dim()
	row := "   "
	for i := 0; i < n; i++ {
		row = row + fmt.Sprintf("%c", 'A'+i) + " "
	}
	str.WriteString(row + "\n")
	str.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	for i := 0; i < n; i++ {
		row := fmt.Sprintf("%2d|", i+1)
		for j := 0; j < n; j++ {
			row = row + g.squareDisplayString(i, j) + " "
		}
		row = row + "|"
		str.WriteString(row + "\n")
	}
	str.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	return "\n" + str.String()
}

// setFromPlaintext sets the board from the given plaintext board.
// It returns a list of all played tiles so that the caller can reconcile
// the tile bag appropriately.
func (g *GameBoard) setFromPlaintext(qText string) (*TilesInPlay, error) {
	g.Clear()
	tilesInPlay := &TilesInPlay{}
	// Rows are the parts between the pipes; letters sit on even columns.
	result := boardPlaintextRegex.FindAllStringSubmatch(qText, -1)
	if len(result) != BoardDim {
		return nil, fmt.Errorf("expected %d board rows, found %d", BoardDim, len(result))
	}
	for i := range result {
		// result[i][1] has the string
		j := -1
		for _, ch := range result[i][1] {
			j++
			if j%2 != 0 {
				continue
			}
			letter, err := tilemapping.TileFromRune(ch)
			if err != nil || !letter.IsDesignated() {
				// a space or another board marker.
				continue
			}
			g.PlaceTile(i, j/2, letter)
			tilesInPlay.OnBoard = append(tilesInPlay.OnBoard, letter)
		}
	}
	userRacks := userRackRegex.FindAllStringSubmatch(qText, -1)
	for i := range userRacks {
		if i > 1 { // only the first two lines that match
			break
		}
		rackTiles, err := tilemapping.ToTiles(userRacks[i][1])
		if err != nil {
			return nil, err
		}
		if i == 0 {
			tilesInPlay.Rack1 = rackTiles
		} else if i == 1 {
			tilesInPlay.Rack2 = rackTiles
		}
	}
	return tilesInPlay, nil
}
