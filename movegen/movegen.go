// Package movegen contains all the move-generating functions. It makes
// heavy use of the GADDAG.
// Implementation notes:
// Moves are generated from every anchor, one direction at a time. Starting
// on the anchor square, the generator walks back through the GADDAG placing
// tiles (the anchor square itself must always be covered), then pivots
// through the separation token and walks forward from the end of the tiles
// that follow the anchor. Walking back stops at another anchor or after a
// board tile, so that every play is found from exactly one anchor: the first
// anchor (in reading order) that it covers.
package movegen

import (
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/wordsmithgame/wordsmith/board"
	"github.com/wordsmithgame/wordsmith/cross_set"
	"github.com/wordsmithgame/wordsmith/gaddag"
	"github.com/wordsmithgame/wordsmith/move"
	"github.com/wordsmithgame/wordsmith/tilemapping"
)

// BingoBonus is added to plays that use a full rack.
const BingoBonus = 50

type exploreDir int

const (
	back    exploreDir = -1
	forward exploreDir = 1
)

// GordonGenerator is the main move generation struct. It implements
// Steven A. Gordon's algorithm from his paper "A faster Scrabble Move
// Generation Algorithm". A generator is not safe for concurrent use; each
// goroutine should own one. The GADDAG may be shared.
type GordonGenerator struct {
	gaddag *gaddag.Gaddag
	board  *board.GameBoard
	rack   *tilemapping.Rack

	anchors *Anchors
	// crossChecks are the checks for the direction being generated; they
	// were computed over runs in the other direction.
	crossChecks *cross_set.BoardCrossChecks

	dir          board.BoardDirection
	lineStart    board.Pos
	curAnchor    board.Pos
	curAnchorIdx int
	suffixOffset int
	wordStart    int

	strip       [board.BoardDim]move.PlayedTile
	tilesPlayed int

	maxNodes  int
	nodes     int
	truncated bool

	playRecorder PlayRecorderFunc
	plays        []*move.Move
}

// NewGordonGenerator returns a new generator.
func NewGordonGenerator(gd *gaddag.Gaddag) *GordonGenerator {
	return &GordonGenerator{
		gaddag:       gd,
		rack:         tilemapping.NewRack(),
		playRecorder: AllPlaysRecorder,
	}
}

// SetMaxNodes sets a budget on the number of search nodes visited per call
// to GenAll. Zero means no limit.
func (gen *GordonGenerator) SetMaxNodes(n int) {
	gen.maxNodes = n
}

// Truncated is true if the last GenAll stopped early because it ran out of
// its node budget. The plays it returned are then a subset of the legal
// plays.
func (gen *GordonGenerator) Truncated() bool {
	return gen.truncated
}

func (gen *GordonGenerator) SetPlayRecorder(pr PlayRecorderFunc) {
	gen.playRecorder = pr
}

// Plays returns the plays found by the last GenAll.
func (gen *GordonGenerator) Plays() []*move.Move {
	return gen.plays
}

// GenAll generates all moves on the board for the given rack. The rack is
// not modified.
func (gen *GordonGenerator) GenAll(b *board.GameBoard, rack *tilemapping.Rack) []*move.Move {
	gen.board = b
	gen.rack.CopyFrom(rack)
	gen.plays = []*move.Move{}
	gen.nodes = 0
	gen.truncated = false
	gen.tilesPlayed = 0

	hanchors, hchecks := cross_set.Compute(b, gen.gaddag, board.HorizontalDirection)
	vanchors, vchecks := cross_set.Compute(b, gen.gaddag, board.VerticalDirection)
	gen.anchors = MakeAnchors(hanchors, vanchors)

	// Horizontal plays must respect the checks computed over vertical runs,
	// and the other way around.
	gen.genByOrientation(board.HorizontalDirection, vchecks)
	gen.genByOrientation(board.VerticalDirection, hchecks)

	log.Debug().Int("anchors", gen.anchors.Len()).Int("plays", len(gen.plays)).
		Int("nodes", gen.nodes).Bool("truncated", gen.truncated).Msg("generated")
	return gen.plays
}

func (gen *GordonGenerator) genByOrientation(dir board.BoardDirection, checks *cross_set.BoardCrossChecks) {
	gen.dir = dir
	gen.crossChecks = checks
	for _, anchor := range gen.anchors.List() {
		if gen.truncated {
			return
		}
		gen.checkAnchor(anchor)
	}
}

// pos is the square at index idx of the current line.
func (gen *GordonGenerator) pos(idx int) board.Pos {
	return gen.lineStart.Step(gen.dir, idx)
}

// checkAnchor primes the GADDAG with the tiles right after the anchor and
// starts walking back from the anchor.
func (gen *GordonGenerator) checkAnchor(anchor board.Pos) {
	gen.curAnchor = anchor
	if gen.dir == board.HorizontalDirection {
		gen.lineStart = board.Pos{Row: anchor.Row, Col: 0}
		gen.curAnchorIdx = anchor.Col
	} else {
		gen.lineStart = board.Pos{Row: 0, Col: anchor.Col}
		gen.curAnchorIdx = anchor.Row
	}

	idx := gen.curAnchorIdx + 1
	for ; idx < board.BoardDim; idx++ {
		p := gen.pos(idx)
		t, ok := gen.board.GetTile(p.Row, p.Col)
		if !ok {
			break
		}
		gen.strip[idx] = move.PlayedTile{Tile: t, From: move.FromBoard}
	}
	gen.suffixOffset = idx

	nodeIdx := gen.gaddag.GetRootNodeIndex()
	for i := gen.suffixOffset - 1; i > gen.curAnchorIdx; i-- {
		nodeIdx = gen.gaddag.NextNodeIdx(nodeIdx, gen.strip[i].Tile.Letter())
		if nodeIdx == 0 {
			// The tiles after the anchor aren't the end of any word.
			return
		}
	}
	gen.explore(gen.curAnchorIdx, back, nodeIdx, false)
}

// explore handles the square at idx. nodeIdx is the GADDAG node reached
// with every tile of the current play so far. seenTile is set once walking
// back has gone through a tile on the board.
func (gen *GordonGenerator) explore(idx int, d exploreDir, nodeIdx uint32, seenTile bool) {
	gen.nodes++
	if gen.maxNodes > 0 && gen.nodes > gen.maxNodes {
		gen.truncated = true
	}
	if gen.truncated {
		return
	}

	if idx < 0 || idx >= board.BoardDim {
		if gen.gaddag.Accepts(nodeIdx) && gen.tilesPlayed > 0 {
			gen.recordPlay(d, idx)
		}
		if d == back {
			gen.pivot(idx, nodeIdx)
		}
		return
	}

	p := gen.pos(idx)
	if t, ok := gen.board.GetTile(p.Row, p.Col); ok {
		next := gen.gaddag.NextNodeIdx(nodeIdx, t.Letter())
		if next == 0 {
			return
		}
		gen.strip[idx] = move.PlayedTile{Tile: t, From: move.FromBoard}
		gen.explore(idx+int(d), d, next, seenTile || d == back)
		return
	}

	if d == back && idx == gen.curAnchorIdx {
		// The anchor has to be covered.
		gen.tryTiles(idx, d, nodeIdx, seenTile)
		return
	}
	if gen.gaddag.Accepts(nodeIdx) && gen.tilesPlayed > 0 {
		gen.recordPlay(d, idx)
	}
	if d == back {
		gen.pivot(idx, nodeIdx)
		if seenTile || gen.anchors.IsAnchor(p.Row, p.Col) {
			// Plays that go further back are found from an earlier anchor.
			return
		}
	}
	gen.tryTiles(idx, d, nodeIdx, seenTile)
}

// pivot switches to walking forward, starting right after the tiles that
// follow the anchor. The play starts right after idx.
func (gen *GordonGenerator) pivot(idx int, nodeIdx uint32) {
	sepIdx := gen.gaddag.NextNodeIdx(nodeIdx, gaddag.SeparationToken)
	if sepIdx == 0 {
		return
	}
	gen.wordStart = idx + 1
	gen.explore(gen.suffixOffset, forward, sepIdx, false)
}

// tryTiles places every rack tile that the GADDAG and the cross-check allow
// on the empty square at idx, and keeps going in direction d. A letter is
// tried with a natural tile and, separately, with a blank.
func (gen *GordonGenerator) tryTiles(idx int, d exploreDir, nodeIdx uint32, seenTile bool) {
	if gen.rack.IsEmpty() {
		return
	}
	p := gen.pos(idx)
	cc := gen.crossChecks.Get(p.Row, p.Col)
	gen.gaddag.ForEachArc(nodeIdx, func(letter byte, next uint32) bool {
		if letter == gaddag.SeparationToken || !cc.Allowed(letter) {
			return true
		}
		if t, ok := gen.rack.TakeLetter(letter); ok {
			gen.placeAndExplore(idx, d, t, next, seenTile)
		}
		if t, ok := gen.rack.TakeBlank(letter); ok {
			gen.placeAndExplore(idx, d, t, next, seenTile)
		}
		return !gen.truncated
	})
}

// placeAndExplore puts a tile that was just taken off the rack on the
// strip, recurses, then puts everything back.
func (gen *GordonGenerator) placeAndExplore(idx int, d exploreDir, t tilemapping.Tile,
	next uint32, seenTile bool) {

	gen.strip[idx] = move.PlayedTile{Tile: t, From: move.FromRack}
	gen.tilesPlayed++
	gen.explore(idx+int(d), d, next, seenTile)
	gen.tilesPlayed--
	gen.strip[idx] = move.PlayedTile{}
	gen.rack.AddTile(t)
}

// recordPlay is called with the GADDAG in an accepting state at idx, which
// is empty or off the board. Walking back, the play spans from right after
// idx to the end of the tiles after the anchor; walking forward, from where
// we pivoted to right before idx.
func (gen *GordonGenerator) recordPlay(d exploreDir, idx int) {
	start, end := idx+1, gen.suffixOffset-1
	if d == forward {
		start, end = gen.wordStart, idx-1
	}
	if end-start+1 < 2 {
		return
	}
	gen.playRecorder(gen, start, end, gen.scoreMove(start, end))
}

// scoreMove scores the play on the strip between start and end, inclusive.
// Tiles already on the board count their face value only. Newly placed
// tiles take the bonus of their square, and any perpendicular word they
// form is scored on its own.
func (gen *GordonGenerator) scoreMove(start, end int) int {
	mainScore := 0
	crossScores := 0
	wordMultiplier := 1
	for i := start; i <= end; i++ {
		pt := gen.strip[i]
		if pt.From == move.FromBoard {
			mainScore += pt.Tile.Points()
			continue
		}
		p := gen.pos(i)
		bonus := gen.board.GetBonus(p.Row, p.Col)
		letterScore := pt.Tile.Points() * bonus.LetterMultiplier()
		wm := bonus.WordMultiplier()
		mainScore += letterScore
		wordMultiplier *= wm
		if gen.crossChecks.HasCrossWord(p.Row, p.Col) {
			crossScores += (gen.crossChecks.CrossScore(p.Row, p.Col) + letterScore) * wm
		}
	}
	bingo := 0
	if gen.tilesPlayed == tilemapping.RackTileLimit {
		bingo = BingoBonus
	}
	return mainScore*wordMultiplier + crossScores + bingo
}

// makeMove turns the strip between start and end into a play.
func (gen *GordonGenerator) makeMove(start, end, score int) *move.Move {
	return move.NewScoringMove(score, gen.strip[start:end+1], gen.dir,
		gen.pos(start), gen.curAnchor)
}

// GenerateMoves is a convenience function that returns every legal play for
// the rack, best first.
func GenerateMoves(gd *gaddag.Gaddag, b *board.GameBoard, rack *tilemapping.Rack) []*move.Move {
	plays := NewGordonGenerator(gd).GenAll(b, rack)
	SortByScore(plays)
	return plays
}

// SortByScore sorts plays by descending score. Ties are broken by the
// play's coordinates and tiles, so the order is always the same.
func SortByScore(plays []*move.Move) {
	sort.SliceStable(plays, func(i, j int) bool {
		if plays[i].Score() != plays[j].Score() {
			return plays[i].Score() > plays[j].Score()
		}
		return plays[i].UniqueKey() < plays[j].UniqueKey()
	})
}

// TopN returns the n highest-scoring plays.
func TopN(plays []*move.Move, n int) []*move.Move {
	if n <= 0 {
		return []*move.Move{}
	}
	sorted := make([]*move.Move, len(plays))
	copy(sorted, plays)
	SortByScore(sorted)
	return lo.Subset(sorted, 0, uint(n))
}
