package tilemapping

import (
	"errors"
	"fmt"
)

// RackTileLimit is the maximum number of tiles on a rack.
const RackTileLimit = 7

var (
	ErrRackFull       = errors.New("rack is full")
	ErrNotEnoughTiles = errors.New("not enough tiles in the bag")
)

// Rack is a machine-friendly representation of a user's rack. Letter
// presence is answered by a 26-bit mask; the tiles themselves live in a
// small fixed array so that blanks can be tracked and removed by value.
type Rack struct {
	tiles     [RackTileLimit]Tile
	numTiles  uint8
	numBlanks uint8
	// mask has bit L set iff at least one non-blank L is on the rack.
	mask LetterSet
}

// NewRack creates an empty rack.
func NewRack() *Rack {
	return &Rack{}
}

// RackFromString creates a Rack from a user-visible string, e.g. "AEINST?".
// Designated (lowercase) blanks go on the rack undesignated.
func RackFromString(rack string) (*Rack, error) {
	tiles, err := ToTiles(rack)
	if err != nil {
		return nil, err
	}
	r := &Rack{}
	for _, t := range tiles {
		if !r.AddTile(t) {
			return nil, fmt.Errorf("%w: %v", ErrRackFull, rack)
		}
	}
	return r, nil
}

// String returns a user-visible version of this rack.
func (r *Rack) String() string {
	return TilesToString(r.Tiles())
}

// Copy returns a deep copy of this rack.
func (r *Rack) Copy() *Rack {
	n := *r
	return &n
}

// CopyFrom makes this rack identical to other.
func (r *Rack) CopyFrom(other *Rack) {
	*r = *other
}

// Clear empties the rack.
func (r *Rack) Clear() {
	*r = Rack{}
}

// Tiles returns a view of the tiles on the rack. The slice must not be
// modified or retained across rack mutations.
func (r *Rack) Tiles() []Tile {
	return r.tiles[:r.numTiles]
}

// NumTiles returns the current number of tiles on this rack.
func (r *Rack) NumTiles() int {
	return int(r.numTiles)
}

// IsEmpty is true when there are no tiles on the rack.
func (r *Rack) IsEmpty() bool {
	return r.numTiles == 0
}

// Mask returns the set of non-blank letters on the rack.
func (r *Rack) Mask() LetterSet {
	return r.mask
}

// Has returns whether a non-blank tile for the ASCII letter is on the rack.
func (r *Rack) Has(letter byte) bool {
	idx := LetterIndex(letter)
	return idx >= 0 && r.mask&(1<<idx) != 0
}

// HasBlank returns whether the rack holds at least one blank.
func (r *Rack) HasBlank() bool {
	return r.numBlanks > 0
}

// AddTile puts a tile on the rack. Blanks are undesignated on the way in.
// It returns false if the rack is full or the tile is empty.
func (r *Rack) AddTile(t Tile) bool {
	if r.numTiles >= RackTileLimit || t == EmptyTile {
		return false
	}
	if t.IsBlank() {
		t = BlankTile
		r.numBlanks++
	} else {
		r.mask |= 1 << t.Index()
	}
	r.tiles[r.numTiles] = t
	r.numTiles++
	return true
}

// TakeTile removes a tile that can be played as the given ASCII letter.
// An exact letter match is preferred; otherwise a blank is taken and
// designated as the letter.
func (r *Rack) TakeTile(letter byte) (Tile, bool) {
	if t, ok := r.TakeLetter(letter); ok {
		return t, true
	}
	return r.TakeBlank(letter)
}

// TakeLetter removes a regular tile for the ASCII letter, if present.
func (r *Rack) TakeLetter(letter byte) (Tile, bool) {
	if !r.Has(letter) {
		return EmptyTile, false
	}
	t, _ := TileFromLetter(letter)
	r.remove(t)
	return t, true
}

// TakeBlank removes a blank and designates it as the ASCII letter.
func (r *Rack) TakeBlank(letter byte) (Tile, bool) {
	if r.numBlanks == 0 || LetterIndex(letter) < 0 {
		return EmptyTile, false
	}
	r.remove(BlankTile)
	return BlankTile.Pin(letter), true
}

// RemoveTile removes the given tile by value. Any blank (designated or not)
// removes an undesignated blank from the rack.
func (r *Rack) RemoveTile(t Tile) bool {
	if t.IsBlank() {
		if r.numBlanks == 0 {
			return false
		}
		r.remove(BlankTile)
		return true
	}
	if t == EmptyTile || r.mask&(1<<t.Index()) == 0 {
		return false
	}
	r.remove(t)
	return true
}

// remove assumes the tile is present.
func (r *Rack) remove(t Tile) {
	last := int(r.numTiles) - 1
	found := -1
	stillHave := false
	for i := last; i >= 0; i-- {
		if r.tiles[i] != t {
			continue
		}
		if found < 0 {
			found = i
		} else {
			stillHave = true
		}
	}
	r.tiles[found] = r.tiles[last]
	r.tiles[last] = EmptyTile
	r.numTiles--
	if t == BlankTile {
		r.numBlanks--
	} else if !stillHave {
		r.mask &^= 1 << t.Index()
	}
}

// CountOf returns how many copies of the tile are on the rack.
func (r *Rack) CountOf(t Tile) int {
	ct := 0
	for _, rt := range r.Tiles() {
		if rt == t {
			ct++
		}
	}
	return ct
}

// ScoreOn returns the total score of the tiles on this rack.
func (r *Rack) ScoreOn() int {
	score := 0
	for _, t := range r.Tiles() {
		score += t.Points()
	}
	return score
}
