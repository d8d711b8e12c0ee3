package tilemapping

import (
	"testing"

	"github.com/matryer/is"
)

func TestToTiles(t *testing.T) {
	is := is.New(t)
	tiles, err := ToTiles("CAT")
	is.NoErr(err)
	is.Equal(tiles, []Tile{3, 1, 20})

	tiles, err = ToTiles("CaT?")
	is.NoErr(err)
	is.Equal(tiles, []Tile{3, 1 | BlankMask, 20, BlankTile})

	_, err = ToTiles("C4T")
	is.True(err != nil)
}

func TestUV(t *testing.T) {
	is := is.New(t)
	tiles := []Tile{3, 1 | BlankMask, 20, BlankTile}
	is.Equal(TilesToString(tiles), "CaT?")
	is.Equal(EmptyTile.String(), ".")
}

func TestTileLetters(t *testing.T) {
	is := is.New(t)
	z, err := TileFromLetter('Z')
	is.NoErr(err)
	is.Equal(z, Tile(26))
	is.Equal(z.Letter(), byte('Z'))
	is.Equal(z.Index(), 25)
	is.Equal(BlankTile.Letter(), byte('?'))
	is.Equal(EmptyTile.Letter(), byte(0))

	pinned := BlankTile.Pin('Q')
	is.True(pinned.IsBlank())
	is.True(pinned.IsDesignated())
	is.Equal(pinned.Letter(), byte('Q'))
	is.Equal(pinned.Unpin(), BlankTile)
	is.Equal(z.Pin('Q'), z)
	is.True(!BlankTile.IsDesignated())
}

func TestTilePoints(t *testing.T) {
	is := is.New(t)
	is.Equal(EmptyTile.Points(), 0)
	is.Equal(Tile(0x81).Points(), 0)
	is.Equal(BlankTile.Points(), 0)
	is.Equal(Tile(25).Points(), 4)
	is.Equal(Tile(26).Points(), 10)
	is.Equal(Tile(8).Points(), 4)
	is.Equal(Tile(1).Points(), 1)
	is.Equal(LetterScore('Q'), 10)
	is.Equal(LetterScore('^'), 0)
}

func TestDistribution(t *testing.T) {
	is := is.New(t)
	dist := Distribution()
	is.Equal(NumTotalTiles(), 100)
	is.Equal(dist[BlankTile], 2)
	is.Equal(dist[Tile(5)], 12)
	total := 0
	for _, ct := range dist {
		total += ct
	}
	is.Equal(total, 100)
}
