package movegen

import (
	"github.com/wordsmithgame/wordsmith/board"
)

// Anchors are the empty squares plays are generated from. These are very
// tied to move generation so we put them in this package. A square is an
// anchor if it touches a tile in either direction, so every play in either
// direction covers at least one of them; on an empty board the center
// square is the only anchor.
type Anchors struct {
	grid [board.BoardDim * board.BoardDim]bool
	list []board.Pos
}

// MakeAnchors merges the anchors found along both directions. The list is
// kept in row-major order.
func MakeAnchors(hanchors, vanchors []board.Pos) *Anchors {
	a := &Anchors{}
	for _, p := range hanchors {
		a.grid[p.Row*board.BoardDim+p.Col] = true
	}
	for _, p := range vanchors {
		a.grid[p.Row*board.BoardDim+p.Col] = true
	}
	a.list = make([]board.Pos, 0, len(hanchors)+len(vanchors))
	for i, isAnchor := range a.grid {
		if isAnchor {
			a.list = append(a.list, board.Pos{Row: i / board.BoardDim, Col: i % board.BoardDim})
		}
	}
	return a
}

// IsAnchor gets whether the passed-in row and column is an anchor.
func (a *Anchors) IsAnchor(row, col int) bool {
	if row < 0 || row >= board.BoardDim || col < 0 || col >= board.BoardDim {
		return false
	}
	return a.grid[row*board.BoardDim+col]
}

func (a *Anchors) List() []board.Pos {
	return a.list
}

func (a *Anchors) Len() int {
	return len(a.list)
}
