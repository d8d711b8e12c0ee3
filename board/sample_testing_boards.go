package board

// VsWho is a position written out the way ToDisplayText shows it, with the
// racks and scores of both players on the lines above.
type VsWho string

const (
	// TrainsOpening is a short game: TRAINS through the centre, SENT down
	// from its S and TOe across, with a blank for the last E.
	TrainsOpening VsWho = `
alice   ADEILRU   23
bob     GOPQSVW   18
   A B C D E F G H I J K L M N O
   ------------------------------
 1|=     '       =       '     = |
 2|  -       "       "       -   |
 3|    -       '   '       -     |
 4|'     -       '       -     ' |
 5|        -           -         |
 6|  "       "       "       "   |
 7|    '       '   '       '     |
 8|=     '   T R A I N S '     = |
 9|    '       '   '   E   '     |
10|  "       "       " N     "   |
11|        -           T O e     |
12|'     -       '       -     ' |
13|    -       '   '       -     |
14|  -       "       "       -   |
15|=     '       =       '     = |
   ------------------------------
`
)

// SetToGame sets the board to a position written as plain text and returns
// the tiles it found, so tests can account for them.
func (b *GameBoard) SetToGame(game VsWho) (*TilesInPlay, error) {
	return b.setFromPlaintext(string(game))
}
