package tilemapping

// letterScores are in alphabet order, A through Z.
var letterScores = [NumLetters]int{
	1, 3, 3, 2, 1, 4, 2, 4, 1, 8, 5, 1, 3, 1, 1, 3, 10,
	1, 1, 1, 1, 4, 4, 8, 4, 10,
}

// letterCounts is the English tile distribution, A through Z. The blank
// count is kept separately.
var letterCounts = [NumLetters]int{
	9, 2, 2, 4, 12, 2, 3, 2, 9, 1, 1, 4, 2, 6, 8,
	2, 1, 6, 4, 6, 4, 2, 2, 1, 2, 1,
}

const numBlanks = 2

// LetterScore returns the score of the ASCII uppercase letter, or 0 if it
// is not a letter.
func LetterScore(letter byte) int {
	idx := LetterIndex(letter)
	if idx < 0 {
		return 0
	}
	return letterScores[idx]
}

// Distribution returns the number of copies of each tile in a full bag, by
// tile. The blank is keyed by BlankTile.
func Distribution() map[Tile]int {
	dist := make(map[Tile]int, NumLetters+1)
	for i, ct := range letterCounts {
		dist[Tile(i+1)] = ct
	}
	dist[BlankTile] = numBlanks
	return dist
}

// NumTotalTiles is the size of a full bag.
func NumTotalTiles() int {
	n := numBlanks
	for _, ct := range letterCounts {
		n += ct
	}
	return n
}
