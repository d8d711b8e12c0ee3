package cross_set

import (
	"fmt"

	"github.com/wordsmithgame/wordsmith/board"
	"github.com/wordsmithgame/wordsmith/gaddag"
	"github.com/wordsmithgame/wordsmith/tilemapping"
)

// A CrossCheck packs the letters that may be placed on a square together
// with the score of the fixed perpendicular tiles around it. It is
// inherently directional, as it depends on which direction we are
// generating moves in. If we are generating moves HORIZONTALLY, we check
// the VERTICAL cross-checks to make sure we can play a letter there.
// Therefore, a VERTICAL cross-check is created by looking at the tile(s)
// above and/or below the relevant square and seeing what letters lead to
// valid words.
//
// Bits 0-25 are the letter mask; bits 26-31 the score, clamped to 63.
type CrossCheck uint32

const (
	scoreShift    = tilemapping.NumLetters
	maxCrossScore = (1 << (32 - scoreShift)) - 1

	// TrivialCrossCheck allows every letter and scores nothing. It is the
	// state of every square with no perpendicular neighbours.
	TrivialCrossCheck = CrossCheck(tilemapping.AllLetters)
)

// Pack makes a cross-check from a letter mask and a score. The score
// saturates at 63.
func Pack(mask tilemapping.LetterSet, score int) CrossCheck {
	if score > maxCrossScore {
		score = maxCrossScore
	}
	if score < 0 {
		score = 0
	}
	return CrossCheck(mask&tilemapping.AllLetters) | CrossCheck(score)<<scoreShift
}

func (c CrossCheck) Mask() tilemapping.LetterSet {
	return tilemapping.LetterSet(c) & tilemapping.AllLetters
}

func (c CrossCheck) Score() int {
	return int(c >> scoreShift)
}

// Allowed returns whether the ASCII letter may be placed here.
func (c CrossCheck) Allowed(letter byte) bool {
	idx := tilemapping.LetterIndex(letter)
	return idx >= 0 && c&(1<<idx) != 0
}

func (c CrossCheck) String() string {
	letters := make([]byte, 0, tilemapping.NumLetters)
	for i := 0; i < tilemapping.NumLetters; i++ {
		if c&(1<<i) != 0 {
			letters = append(letters, byte('A'+i))
		}
	}
	return fmt.Sprintf("[%s %d]", letters, c.Score())
}

// CrossCheckFromString builds a cross-check out of a string of uppercase
// letters. Mostly for tests.
func CrossCheckFromString(letters string, score int) CrossCheck {
	var mask tilemapping.LetterSet
	for i := 0; i < len(letters); i++ {
		if idx := tilemapping.LetterIndex(letters[i]); idx >= 0 {
			mask |= 1 << idx
		}
	}
	return Pack(mask, score)
}

// BoardCrossChecks stores the cross-checks for a game board in one
// direction. We don't store these directly in the game board structure as
// we want to keep cross-checks and move generation separate from the
// crossword game logic.
type BoardCrossChecks struct {
	dir    board.BoardDirection
	checks [board.BoardDim * board.BoardDim]CrossCheck
	// exact (unclamped) perpendicular scores, for scoring.
	scores [board.BoardDim * board.BoardDim]int
	// whether the square has a perpendicular neighbour at all.
	crossed [board.BoardDim * board.BoardDim]bool
}

// NewBoardCrossChecks makes cross-checks in which every square is trivial.
func NewBoardCrossChecks(dir board.BoardDirection) *BoardCrossChecks {
	bcc := &BoardCrossChecks{dir: dir}
	for i := range bcc.checks {
		bcc.checks[i] = TrivialCrossCheck
	}
	return bcc
}

// Direction is the direction of the runs these checks were computed over.
func (bcc *BoardCrossChecks) Direction() board.BoardDirection {
	return bcc.dir
}

// Get returns the cross-check at row, col. Squares off the board are
// trivial.
func (bcc *BoardCrossChecks) Get(row int, col int) CrossCheck {
	if row < 0 || row >= board.BoardDim || col < 0 || col >= board.BoardDim {
		return TrivialCrossCheck
	}
	return bcc.checks[row*board.BoardDim+col]
}

func (bcc *BoardCrossChecks) Set(row int, col int, cc CrossCheck) {
	bcc.checks[row*board.BoardDim+col] = cc
}

// CrossScore is the unclamped score of the fixed tiles around row, col.
func (bcc *BoardCrossChecks) CrossScore(row int, col int) int {
	return bcc.scores[row*board.BoardDim+col]
}

// HasCrossWord is true when a tile placed at row, col forms a word with the
// tiles around it.
func (bcc *BoardCrossChecks) HasCrossWord(row int, col int) bool {
	return bcc.crossed[row*board.BoardDim+col]
}

// Anchors returns the empty squares next to an occupied square along dir, in
// row-major order. An empty board has a single anchor in the center.
func Anchors(b *board.GameBoard, dir board.BoardDirection) []board.Pos {
	if b.IsEmpty() {
		return []board.Pos{board.CenterSquare}
	}
	anchors := []board.Pos{}
	for row := 0; row < board.BoardDim; row++ {
		for col := 0; col < board.BoardDim; col++ {
			if b.HasTile(row, col) {
				continue
			}
			p := board.Pos{Row: row, Col: col}
			before, after := p.Step(dir, -1), p.Step(dir, 1)
			if b.HasTile(before.Row, before.Col) || b.HasTile(after.Row, after.Col) {
				anchors = append(anchors, p)
			}
		}
	}
	return anchors
}

// Compute returns the anchors along dir and the cross-checks computed over
// the runs of tiles along dir. Moves in the other direction consult these
// checks.
func Compute(b *board.GameBoard, gd *gaddag.Gaddag, dir board.BoardDirection) ([]board.Pos, *BoardCrossChecks) {
	anchors := Anchors(b, dir)
	bcc := NewBoardCrossChecks(dir)
	if b.IsEmpty() {
		return anchors, bcc
	}
	for _, p := range anchors {
		GenCrossCheck(b, bcc, p.Row, p.Col, gd)
	}
	return anchors, bcc
}

// runEdge finds the edge of the run of tiles that starts next to p and goes
// in the given sense (-1 or 1) along dir. It returns p itself if there is no
// such run.
func runEdge(b *board.GameBoard, p board.Pos, dir board.BoardDirection, sense int) board.Pos {
	edge := p
	for next := edge.Step(dir, sense); b.HasTile(next.Row, next.Col); next = edge.Step(dir, sense) {
		edge = next
	}
	return edge
}

// traverseBackwards walks the tiles from `from` back to `to` (inclusive, in
// the -1 sense along dir) through the gaddag. It returns 0 if there is no
// such path.
func traverseBackwards(b *board.GameBoard, gd *gaddag.Gaddag, from board.Pos,
	to board.Pos, dir board.BoardDirection, nodeIdx uint32) uint32 {

	for p := from; nodeIdx != 0; p = p.Step(dir, -1) {
		nodeIdx = gd.NextNodeIdx(nodeIdx, b.GetLetter(p.Row, p.Col).Letter())
		if p == to {
			break
		}
	}
	return nodeIdx
}

func runScore(b *board.GameBoard, from board.Pos, to board.Pos, dir board.BoardDirection) int {
	score := 0
	for p := from; ; p = p.Step(dir, 1) {
		score += b.GetLetter(p.Row, p.Col).Points()
		if p == to {
			break
		}
	}
	return score
}

// GenCrossCheck generates the cross-check for an individual empty square,
// looking at the runs of tiles on either side of it along the direction of
// bcc.
func GenCrossCheck(b *board.GameBoard, bcc *BoardCrossChecks, row int, col int,
	gd *gaddag.Gaddag) {

	dir := bcc.dir
	p := board.Pos{Row: row, Col: col}
	idx := row*board.BoardDim + col
	if !p.InBounds() || b.HasTile(row, col) {
		return
	}
	leftEdge := runEdge(b, p, dir, -1)
	rightEdge := runEdge(b, p, dir, 1)
	hasLeft, hasRight := leftEdge != p, rightEdge != p
	if !hasLeft && !hasRight {
		// If there's no tile adjacent to this square in this direction,
		// every letter is allowed.
		bcc.checks[idx] = TrivialCrossCheck
		bcc.scores[idx] = 0
		bcc.crossed[idx] = false
		return
	}
	score := 0
	if hasLeft {
		score += runScore(b, leftEdge, p.Step(dir, -1), dir)
	}
	if hasRight {
		score += runScore(b, p.Step(dir, 1), rightEdge, dir)
	}
	bcc.scores[idx] = score
	bcc.crossed[idx] = true

	var mask tilemapping.LetterSet
	root := gd.GetRootNodeIndex()
	switch {
	case !hasRight:
		// Only tiles before this square. prefix + c is a word iff
		// rev(prefix) ^ c is a path ending in an accepting node.
		nodeIdx := traverseBackwards(b, gd, p.Step(dir, -1), leftEdge, dir, root)
		sIdx := gd.NextNodeIdx(nodeIdx, gaddag.SeparationToken)
		mask = acceptingArcs(gd, sIdx)
	case !hasLeft:
		// Only tiles after: rev(suffix) c must be accepted.
		nodeIdx := traverseBackwards(b, gd, rightEdge, p.Step(dir, 1), dir, root)
		mask = acceptingArcs(gd, nodeIdx)
	default:
		// Both the left and the right have a tile. Go through the
		// children, from the right, to see what nodes lead to the left.
		nodeIdx := traverseBackwards(b, gd, rightEdge, p.Step(dir, 1), dir, root)
		gd.ForEachArc(nodeIdx, func(letter byte, next uint32) bool {
			if letter == gaddag.SeparationToken {
				return true
			}
			end := traverseBackwards(b, gd, p.Step(dir, -1), leftEdge, dir, next)
			if gd.Accepts(end) {
				mask |= 1 << tilemapping.LetterIndex(letter)
			}
			return true
		})
	}
	bcc.checks[idx] = Pack(mask, score)
}

// acceptingArcs is the set of letters whose arc out of nodeIdx leads to an
// accepting node.
func acceptingArcs(gd *gaddag.Gaddag, nodeIdx uint32) tilemapping.LetterSet {
	var mask tilemapping.LetterSet
	gd.ForEachArc(nodeIdx, func(letter byte, next uint32) bool {
		if letter != gaddag.SeparationToken && gd.Accepts(next) {
			mask |= 1 << tilemapping.LetterIndex(letter)
		}
		return true
	})
	return mask
}
