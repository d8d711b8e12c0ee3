package tilemapping

import (
	"fmt"
	"unicode"
)

// A Tile is a single tile, packed into a byte.
// The 0 value is an empty square (or "no tile").
// The letter A is represented by 1, B by 2, ... all the way to 26.
// A blank is the same but with the high bit set. An undesignated blank (one
// that is still on a rack) is just the high bit; a blank that has been
// designated as a letter is (0x80 | letter).
type Tile byte

const (
	// EmptyTile represents the absence of a tile.
	EmptyTile Tile = 0
	// BlankTile is an undesignated blank.
	BlankTile Tile = BlankMask

	BlankMask   = 0x80
	UnblankMask = (0x80 - 1)

	// NumLetters is the size of the alphabet. Letter sets and cross-checks
	// are 26-bit masks.
	NumLetters = 26

	// BlankToken is the user-friendly representation of an undesignated blank.
	BlankToken = '?'
	// ASCIIPlayedThrough is used when displaying a tile that was already on
	// the board.
	ASCIIPlayedThrough = '.'
)

// LetterSet is a bit mask of letters, bit 0 being A.
type LetterSet uint32

// AllLetters has every letter of the alphabet set.
const AllLetters LetterSet = (1 << NumLetters) - 1

// TileFromLetter makes a regular (non-blank) tile from an ASCII letter.
// Lowercase letters are accepted and treated as uppercase.
func TileFromLetter(letter byte) (Tile, error) {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return EmptyTile, fmt.Errorf("letter `%c` not found in alphabet", letter)
	}
	return Tile(letter - 'A' + 1), nil
}

// TileFromRune converts the user-visible rune into a tile. Uppercase
// letters are regular tiles, lowercase letters are designated blanks and
// BlankToken is an undesignated blank.
func TileFromRune(r rune) (Tile, error) {
	if r == BlankToken {
		return BlankTile, nil
	}
	if r > unicode.MaxASCII {
		return EmptyTile, fmt.Errorf("letter `%c` not found in alphabet", r)
	}
	t, err := TileFromLetter(byte(r))
	if err != nil {
		return EmptyTile, err
	}
	if unicode.IsLower(r) {
		return t.Blank(), nil
	}
	return t, nil
}

// ToTiles converts a user-visible string into tiles.
func ToTiles(s string) ([]Tile, error) {
	tiles := make([]Tile, 0, len(s))
	for _, r := range s {
		t, err := TileFromRune(r)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// Blank turns the tile into its blank version.
func (t Tile) Blank() Tile {
	return t | BlankMask
}

// Unblank turns the tile into its non-blank version.
func (t Tile) Unblank() Tile {
	return t & UnblankMask
}

// IsBlank returns true for both designated and undesignated blanks.
func (t Tile) IsBlank() bool {
	return t&BlankMask != 0
}

// IsEmpty is true for the empty tile.
func (t Tile) IsEmpty() bool {
	return t == EmptyTile
}

// IsDesignated is true for regular tiles and blanks that have been pinned
// to a letter.
func (t Tile) IsDesignated() bool {
	return t.Unblank() != 0
}

// Pin designates a blank as the given ASCII letter. It returns the tile
// unchanged if it is not a blank.
func (t Tile) Pin(letter byte) Tile {
	if !t.IsBlank() {
		return t
	}
	l, err := TileFromLetter(letter)
	if err != nil {
		return t
	}
	return l.Blank()
}

// Unpin returns a designated blank to its undesignated state.
func (t Tile) Unpin() Tile {
	if t.IsBlank() {
		return BlankTile
	}
	return t
}

// Letter returns the uppercase ASCII letter this tile stands for, or
// BlankToken for an undesignated blank. Empty tiles return 0.
func (t Tile) Letter() byte {
	ml := t.Unblank()
	if ml == 0 {
		if t.IsBlank() {
			return BlankToken
		}
		return 0
	}
	return byte(ml) - 1 + 'A'
}

// Index returns the 0-25 position of the tile's letter in the alphabet.
// It must only be called on designated tiles.
func (t Tile) Index() int {
	return int(t.Unblank()) - 1
}

// Points returns the face value of the tile. Blanks are always worth 0.
func (t Tile) Points() int {
	if t.IsBlank() || t == EmptyTile {
		return 0
	}
	return letterScores[t-1]
}

// UserVisible turns the tile into a user-visible rune; designated blanks
// are lowercase.
func (t Tile) UserVisible() rune {
	switch {
	case t == EmptyTile:
		return ASCIIPlayedThrough
	case t == BlankTile:
		return BlankToken
	case t.IsBlank():
		return unicode.ToLower(rune(t.Letter()))
	}
	return rune(t.Letter())
}

func (t Tile) String() string {
	return string(t.UserVisible())
}

// LetterIndex returns the 0-25 position of an ASCII uppercase letter, or -1.
func LetterIndex(letter byte) int {
	if letter < 'A' || letter > 'Z' {
		return -1
	}
	return int(letter - 'A')
}

// TilesToString turns a slice of tiles into a user-visible string.
func TilesToString(tiles []Tile) string {
	runes := make([]rune, len(tiles))
	for i, t := range tiles {
		runes[i] = t.UserVisible()
	}
	return string(runes)
}
