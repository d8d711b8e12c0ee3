package board

import (
	"fmt"
	"os"
)

var (
	ColorSupport = os.Getenv("WORDSMITH_DISABLE_COLOR") != "on"
)

// A BonusSquare is a bonus square (duh)
type BonusSquare rune

const (
	NoBonus  BonusSquare = ' '
	Bonus4WS BonusSquare = '~'
	Bonus4LS BonusSquare = '^'
	// Bonus3WS is a triple word score
	Bonus3WS BonusSquare = '='
	// Bonus3LS is a triple letter score
	Bonus3LS BonusSquare = '"'
	// Bonus2LS is a double letter score
	Bonus2LS BonusSquare = '\''
	// Bonus2WS is a double word score
	Bonus2WS BonusSquare = '-'
)

func (b BonusSquare) valid() bool {
	switch b {
	case NoBonus, Bonus4WS, Bonus4LS, Bonus3WS, Bonus3LS, Bonus2LS, Bonus2WS:
		return true
	}
	return false
}

// LetterMultiplier is what the face value of a newly placed tile on this
// square is multiplied by.
func (b BonusSquare) LetterMultiplier() int {
	switch b {
	case Bonus2LS:
		return 2
	case Bonus3LS:
		return 3
	case Bonus4LS:
		return 4
	}
	return 1
}

// WordMultiplier multiplies every word that a newly placed tile on this
// square is part of.
func (b BonusSquare) WordMultiplier() int {
	switch b {
	case Bonus2WS:
		return 2
	case Bonus3WS:
		return 3
	case Bonus4WS:
		return 4
	}
	return 1
}

func (b BonusSquare) displayString() string {
	if !ColorSupport {
		return string(b)
	}
	switch b {

	case Bonus4WS:
		return fmt.Sprintf("\033[33m%s\033[0m", string(b))
	case Bonus3WS:
		return fmt.Sprintf("\033[31m%s\033[0m", string(b))
	case Bonus2WS:
		return fmt.Sprintf("\033[35m%s\033[0m", string(b))
	case Bonus4LS:
		return fmt.Sprintf("\033[95m%s\033[0m", string(b))
	case Bonus3LS:
		return fmt.Sprintf("\033[34m%s\033[0m", string(b))
	case Bonus2LS:
		return fmt.Sprintf("\033[36m%s\033[0m", string(b))
	default:
		return "?"
	}
}
