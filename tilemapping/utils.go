package tilemapping

import (
	"fmt"
)

// SortTiles sorts in place. This should be fast enough for small arrays.
func SortTiles(l []Tile) {
	ll := len(l)
	for i := 1; i < ll; i++ {
		for j := i; j > 0 && l[j-1] > l[j]; j-- {
			l[j-1], l[j] = l[j], l[j-1]
		}
	}
}

// Leave calculates the leave from the rack and the made play. Empty tiles
// in the play are played-through board tiles and are skipped.
func Leave(rack []Tile, play []Tile, isExchange bool) ([]Tile, error) {
	rackletters := map[Tile]int{}
	for _, l := range rack {
		rackletters[l.Unpin()]++
	}
	leave := make([]Tile, 0)

	for _, t := range play {
		if t == EmptyTile && !isExchange {
			// play-through
			continue
		}
		if t.IsBlank() {
			if isExchange && t != BlankTile {
				return nil, fmt.Errorf("cannot exchange a designated blank")
			}
			t = BlankTile
		}
		if rackletters[t] != 0 {
			rackletters[t]--
		} else {
			return nil, fmt.Errorf("tile in play but not in rack: %v", t)
		}
	}

	for k, v := range rackletters {
		for i := 0; i < v; i++ {
			leave = append(leave, k)
		}
	}
	SortTiles(leave)
	return leave, nil
}
