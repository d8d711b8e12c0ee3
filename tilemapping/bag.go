package tilemapping

import (
	"fmt"

	"lukechampine.com/frand"
)

// A Bag is the bag o'tiles!
type Bag struct {
	tiles []Tile
	// rng is nil unless the bag was seeded.
	rng *frand.RNG
}

// NewBag returns a full, shuffled bag with the standard distribution.
func NewBag() *Bag {
	b := &Bag{tiles: fullBag()}
	b.Shuffle()
	return b
}

// NewSeededBag returns a full bag whose shuffles are determined by seed, so
// that games can be replayed.
func NewSeededBag(seed [32]byte) *Bag {
	b := &Bag{tiles: fullBag(), rng: frand.NewCustom(seed[:], 1024, 12)}
	b.Shuffle()
	return b
}

func fullBag() []Tile {
	tiles := make([]Tile, 0, NumTotalTiles())
	for i, ct := range letterCounts {
		for j := 0; j < ct; j++ {
			tiles = append(tiles, Tile(i+1))
		}
	}
	for j := 0; j < numBlanks; j++ {
		tiles = append(tiles, BlankTile)
	}
	return tiles
}

// Shuffle shuffles the remaining tiles.
func (b *Bag) Shuffle() {
	swap := func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	}
	if b.rng != nil {
		b.rng.Shuffle(len(b.tiles), swap)
		return
	}
	frand.Shuffle(len(b.tiles), swap)
}

// TilesRemaining is the number of tiles still in the bag.
func (b *Bag) TilesRemaining() int {
	return len(b.tiles)
}

// Draw draws n tiles from the bag.
func (b *Bag) Draw(n int) ([]Tile, error) {
	if n > len(b.tiles) {
		return nil, fmt.Errorf("%w: tried to draw %v tiles, tile bag has %v",
			ErrNotEnoughTiles, n, len(b.tiles))
	}
	last := len(b.tiles) - n
	drawn := make([]Tile, n)
	copy(drawn, b.tiles[last:])
	b.tiles = b.tiles[:last]
	return drawn, nil
}

// DrawAtMost draws at most n tiles from the bag. It can draw fewer if there
// are fewer tiles than n, and even draw no tiles at all.
func (b *Bag) DrawAtMost(n int) []Tile {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	drawn, _ := b.Draw(n)
	return drawn
}

// Refill tops the rack up to RackTileLimit tiles, or as many as the bag
// still holds. It returns the number of tiles drawn.
func (b *Bag) Refill(r *Rack) int {
	drawn := b.DrawAtMost(RackTileLimit - r.NumTiles())
	for _, t := range drawn {
		r.AddTile(t)
	}
	return len(drawn)
}

// PutBack puts the tiles back in the bag and reshuffles it. Designated
// blanks go back undesignated.
func (b *Bag) PutBack(tiles []Tile) {
	if len(tiles) == 0 {
		return
	}
	for _, t := range tiles {
		b.tiles = append(b.tiles, t.Unpin())
	}
	b.Shuffle()
}

// Exchange exchanges the junk in your rack with new tiles. The bag must
// hold at least as many tiles as are being exchanged.
func (b *Bag) Exchange(tiles []Tile) ([]Tile, error) {
	newTiles, err := b.Draw(len(tiles))
	if err != nil {
		return nil, err
	}
	// put exchanged tiles back into the bag
	b.PutBack(tiles)
	return newTiles, nil
}
