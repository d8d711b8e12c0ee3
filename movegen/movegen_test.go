package movegen

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/wordsmithgame/wordsmith/board"
	"github.com/wordsmithgame/wordsmith/gaddag"
	"github.com/wordsmithgame/wordsmith/move"
	"github.com/wordsmithgame/wordsmith/tilemapping"
)

// This is going to be a big file; it tests the main move generation
// recursive algorithm

var richWords = []string{
	"AA", "AB", "AD", "AE", "AI", "AN", "AR", "AS", "AT", "BA", "BE", "EN",
	"ER", "ES", "ET", "NA", "NE", "RE", "TA", "TE", "EAT", "EATS", "ETA",
	"TEA", "TEAS", "SEA", "SEAT", "RAIN", "RAINS", "TRAIN", "TRAINS",
	"STAIR", "STAIN", "SATIN", "SAINT", "ANTS", "TANS", "RANT", "RANTS",
	"NEAR", "EARN", "EARNS", "ANT", "TAN", "RAN", "ART", "RAT", "TAR",
	"STAR", "ARTS", "RATS", "TARS", "INERT", "NITER", "RETAIN", "RETAINS",
	"RETINA", "RETINAS", "STAINER", "NASTIER",
}

func mustRack(t *testing.T, s string) *tilemapping.Rack {
	r, err := tilemapping.RackFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// wordAt returns the maximal run of tiles through p along dir.
func wordAt(b *board.GameBoard, p board.Pos, dir board.BoardDirection) (board.Pos, string) {
	start := p
	for q := p.Step(dir, -1); b.HasTile(q.Row, q.Col); q = q.Step(dir, -1) {
		start = q
	}
	var sb strings.Builder
	for q := start; b.HasTile(q.Row, q.Col); q = q.Step(dir, 1) {
		sb.WriteByte(b.GetLetter(q.Row, q.Col).Letter())
	}
	return start, sb.String()
}

// checkLegal replays the play onto a copy of the board and checks every
// word it makes.
func checkLegal(t *testing.T, gd *gaddag.Gaddag, b *board.GameBoard,
	rack *tilemapping.Rack, m *move.Move) {

	t.Helper()
	cp := b.Copy()
	r := rack.Copy()
	if err := m.Apply(cp, r); err != nil {
		t.Fatalf("%v: %v", m, err)
	}
	start, word := wordAt(cp, m.Start(), m.Direction())
	assert.Equal(t, m.Start(), start, m.String())
	assert.Equal(t, strings.ToUpper(m.Word()), word, m.String())
	assert.True(t, gd.ContainsString(word), "main word %v", word)

	connected := b.IsEmpty()
	for _, pt := range m.TilePositions() {
		if pt.From == move.FromBoard {
			connected = true
			continue
		}
		if pt.Pos == board.CenterSquare {
			connected = true
		}
		_, cross := wordAt(cp, pt.Pos, m.Direction().Other())
		if len(cross) > 1 {
			connected = true
			assert.True(t, gd.ContainsString(cross), "cross word %v of %v", cross, m)
		}
	}
	assert.True(t, connected, "%v does not touch any tile", m)
	if b.IsEmpty() {
		covered := false
		for _, pt := range m.TilePositions() {
			covered = covered || pt.Pos == board.CenterSquare
		}
		assert.True(t, covered, "%v does not cover the center", m)
	}
}

func findMove(plays []*move.Move, word string, start board.Pos, dir board.BoardDirection) *move.Move {
	for _, m := range plays {
		if m.Word() == word && m.Start() == start && m.Direction() == dir {
			return m
		}
	}
	return nil
}

func richBoard(t *testing.T) *board.GameBoard {
	b := board.NewBoard()
	if err := b.PlaceWord(7, 7, board.HorizontalDirection, "RAIN"); err != nil {
		t.Fatal(err)
	}
	if err := b.PlaceWord(6, 10, board.VerticalDirection, "ANT"); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestGenNothingWithEmptyRack(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords(richWords)
	plays := NewGordonGenerator(gd).GenAll(richBoard(t), tilemapping.NewRack())
	is.Equal(len(plays), 0)
}

func TestGenBootstrap(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords([]string{"AT", "TA"})
	b := board.NewBoard()
	rack := mustRack(t, "AT")

	plays := NewGordonGenerator(gd).GenAll(b, rack)
	is.Equal(len(plays), 8)
	for _, m := range plays {
		is.Equal(m.Score(), 4)
		is.Equal(m.Anchor(), board.CenterSquare)
		checkLegal(t, gd, b, rack, m)
	}
	is.True(findMove(plays, "AT", board.Pos{Row: 7, Col: 6}, board.HorizontalDirection) != nil)
	is.True(findMove(plays, "AT", board.Pos{Row: 7, Col: 7}, board.HorizontalDirection) != nil)
	is.True(findMove(plays, "TA", board.Pos{Row: 6, Col: 7}, board.VerticalDirection) != nil)
	is.True(findMove(plays, "TA", board.Pos{Row: 7, Col: 7}, board.VerticalDirection) != nil)
	// The caller's rack is left alone.
	is.Equal(rack.String(), "AT")
}

func TestGenThroughRain(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords([]string{
		"RAIN", "RAINS", "TRAIN", "TRAINS", "ENTRAIN", "ENTRAINS"})
	b := board.NewBoard()
	is.NoErr(b.PlaceWord(7, 7, board.HorizontalDirection, "RAIN"))
	rack := mustRack(t, "ENTS")

	plays := GenerateMoves(gd, b, rack)

	type expected struct {
		word  string
		col   int
		score int
	}
	// The S lands on the double letter at 8L.
	exp := []expected{
		{"ENTRAINS", 4, 9},
		{"ENTRAIN", 4, 7},
		{"TRAINS", 6, 7},
		{"RAINS", 7, 6},
		{"TRAIN", 6, 5},
	}
	is.Equal(len(plays), len(exp))
	for _, e := range exp {
		m := findMove(plays, e.word, board.Pos{Row: 7, Col: e.col}, board.HorizontalDirection)
		if m == nil {
			t.Fatalf("%v not generated", e.word)
		}
		is.Equal(m.Score(), e.score)
		checkLegal(t, gd, b, rack, m)
	}
	is.Equal(plays[0].Word(), "ENTRAINS")
	is.Equal(plays[0].ShortDescription(), "8E ENT....S")
	is.Equal(plays[len(plays)-1].Word(), "TRAIN")
}

func TestGenBingo(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords([]string{"RETAINS"})
	b := board.NewBoard()
	rack := mustRack(t, "RETAINS")

	plays := NewGordonGenerator(gd).GenAll(b, rack)
	is.Equal(len(plays), 14)
	scores := map[int]int{}
	for _, m := range plays {
		is.True(m.IsBingo())
		is.Equal(m.TilesPlayed(), 7)
		scores[m.Score()]++
		checkLegal(t, gd, b, rack, m)
	}
	// 7 one-point tiles, doubled, plus 50. Only the plays that start on
	// the 4th square miss both double letters.
	is.Equal(scores, map[int]int{64: 2, 66: 12})
	m := findMove(plays, "RETAINS", board.Pos{Row: 7, Col: 4}, board.HorizontalDirection)
	is.True(m != nil)
	is.Equal(m.Score(), 64)
}

func TestGenBlankScoresZero(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords([]string{"RETAINS"})
	b := board.NewBoard()
	rack := mustRack(t, "RETAIN?")

	plays := NewGordonGenerator(gd).GenAll(b, rack)
	is.Equal(len(plays), 14)
	scores := map[int]int{}
	for _, m := range plays {
		is.Equal(m.Word(), "RETAINs")
		scores[m.Score()]++
		checkLegal(t, gd, b, rack, m)
	}
	is.Equal(scores, map[int]int{62: 4, 64: 10})
	// the blank sits on the double letter here.
	m := findMove(plays, "RETAINs", board.Pos{Row: 7, Col: 5}, board.HorizontalDirection)
	is.True(m != nil)
	is.Equal(m.Score(), 62)
}

func TestScoreLetterAndWordMultipliers(t *testing.T) {
	is := is.New(t)
	layout := make([]string, board.BoardDim)
	for i := range layout {
		layout[i] = strings.Repeat(" ", board.BoardDim)
	}
	layout[7] = `      '-       `
	b, err := board.MakeBoard(layout)
	is.NoErr(err)
	gd := gaddag.GenerateFromWords([]string{"CAT"})
	rack := mustRack(t, "CAT")

	plays := GenerateMoves(gd, b, rack)
	is.Equal(len(plays), 6)
	// C on the double letter, A on the double word: (6 + 1 + 1) * 2
	is.Equal(plays[0].Score(), 16)
	is.Equal(plays[0].BoardCoords(), "8G")
	m := findMove(plays, "CAT", board.Pos{Row: 7, Col: 5}, board.HorizontalDirection)
	is.True(m != nil)
	is.Equal(m.Score(), 12)
	m = findMove(plays, "CAT", board.Pos{Row: 7, Col: 7}, board.HorizontalDirection)
	is.True(m != nil)
	is.Equal(m.Score(), 10)
	for _, m := range plays {
		if m.Direction() == board.VerticalDirection {
			is.Equal(m.Score(), 10)
		}
	}
}

func TestGenParallelPlay(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords([]string{"AT", "TA", "AN", "NA"})
	b := board.NewBoard()
	is.NoErr(b.PlaceWord(7, 7, board.HorizontalDirection, "AT"))
	rack := mustRack(t, "NA")

	plays := NewGordonGenerator(gd).GenAll(b, rack)
	m := findMove(plays, "NA", board.Pos{Row: 6, Col: 7}, board.HorizontalDirection)
	if m == nil {
		t.Fatal("parallel play not generated")
	}
	// NA with the A on a double letter is 3, NA down is 2 and AT down is
	// 1 + 2.
	is.Equal(m.Score(), 8)
	is.Equal(m.Anchor(), board.Pos{Row: 6, Col: 7})
	for _, m := range plays {
		checkLegal(t, gd, b, rack, m)
	}
}

func TestGenSingleTile(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords([]string{"AT", "TA", "AN", "NA"})
	b := board.NewBoard()
	is.NoErr(b.PlaceWord(7, 7, board.HorizontalDirection, "AT"))
	rack := mustRack(t, "N")

	plays := GenerateMoves(gd, b, rack)
	// NA above the A and AN below it. Lone tiles are never plays on their
	// own in the other direction.
	is.Equal(len(plays), 2)
	is.True(findMove(plays, "NA", board.Pos{Row: 6, Col: 7}, board.VerticalDirection) != nil)
	is.True(findMove(plays, "AN", board.Pos{Row: 7, Col: 7}, board.VerticalDirection) != nil)
	for _, m := range plays {
		is.Equal(m.Score(), 2)
		is.Equal(m.TilesPlayed(), 1)
	}
}

func TestGenLegalAndUnique(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords(richWords)
	b := richBoard(t)
	for _, rackStr := range []string{"AENRST?", "EEIRSTT", "AAEINST", "??", "S"} {
		rack := mustRack(t, rackStr)
		plays := NewGordonGenerator(gd).GenAll(b, rack)
		is.True(len(plays) > 0)
		seen := map[string]bool{}
		for _, m := range plays {
			if seen[m.UniqueKey()] {
				t.Errorf("duplicate play %v", m)
			}
			seen[m.UniqueKey()] = true
			is.True(m.TilesPlayed() <= rack.NumTiles())
			is.Equal(m.IsBingo(), m.TilesPlayed() == 7)
			checkLegal(t, gd, b, rack, m)
		}
		is.Equal(rack.String(), rackStr)
	}
}

func TestGenDeterministic(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords(richWords)
	b := richBoard(t)
	rack := mustRack(t, "AENRST?")

	gen := NewGordonGenerator(gd)
	first := gen.GenAll(b, rack)
	second := gen.GenAll(b, rack)
	third := NewGordonGenerator(gd).GenAll(b, rack)
	is.Equal(len(first), len(second))
	is.Equal(len(first), len(third))
	for i := range first {
		is.True(first[i].Equals(second[i]))
		is.True(first[i].Equals(third[i]))
	}
}

func TestMaxNodes(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords(richWords)
	b := richBoard(t)
	rack := mustRack(t, "AENRST?")

	gen := NewGordonGenerator(gd)
	all := gen.GenAll(b, rack)
	is.True(!gen.Truncated())

	gen.SetMaxNodes(20)
	some := gen.GenAll(b, rack)
	is.True(gen.Truncated())
	is.True(len(some) < len(all))

	gen.SetMaxNodes(0)
	is.Equal(len(gen.GenAll(b, rack)), len(all))
	is.True(!gen.Truncated())
}

func TestTopPlayOnlyRecorder(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords(richWords)
	b := richBoard(t)
	rack := mustRack(t, "AENRST?")

	all := GenerateMoves(gd, b, rack)
	gen := NewGordonGenerator(gd)
	gen.SetPlayRecorder(TopPlayOnlyRecorder)
	top := gen.GenAll(b, rack)
	is.Equal(len(top), 1)
	is.Equal(top[0].Score(), all[0].Score())

	gen.SetPlayRecorder(NullPlayRecorder)
	is.Equal(len(gen.GenAll(b, rack)), 0)
}

func TestSortAndTopN(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords(richWords)
	b := richBoard(t)
	rack := mustRack(t, "EEIRSTT")

	plays := NewGordonGenerator(gd).GenAll(b, rack)
	is.True(len(plays) > 3)
	top := TopN(plays, 3)
	is.Equal(len(top), 3)
	SortByScore(plays)
	for i := 1; i < len(plays); i++ {
		is.True(plays[i-1].Score() >= plays[i].Score())
	}
	for i := range top {
		is.True(top[i].Equals(plays[i]))
	}
	is.Equal(len(TopN(plays, 1000)), len(plays))
	is.Equal(len(TopN(plays, 0)), 0)
}

func TestGenSkipsRunThatIsNoWord(t *testing.T) {
	is := is.New(t)
	gd := gaddag.GenerateFromWords(richWords)
	b := board.NewBoard()
	is.NoErr(b.PlaceWord(7, 7, board.HorizontalDirection, "ZXZ"))
	is.NoErr(b.PlaceWord(2, 2, board.HorizontalDirection, "AT"))
	rack := mustRack(t, "QATAT?")

	zxz := map[board.Pos]bool{}
	for col := 7; col <= 9; col++ {
		p := board.Pos{Row: 7, Col: col}
		zxz[p] = true
		for _, dir := range []board.BoardDirection{board.HorizontalDirection, board.VerticalDirection} {
			zxz[p.Step(dir, -1)] = true
			zxz[p.Step(dir, 1)] = true
		}
	}

	var plays []*move.Move
	assert.NotPanics(t, func() { plays = NewGordonGenerator(gd).GenAll(b, rack) })
	is.True(len(plays) > 0)
	for _, m := range plays {
		for _, pt := range m.TilePositions() {
			assert.False(t, zxz[pt.Pos], "%v touches ZXZ at %v", m, pt.Pos)
		}
		checkLegal(t, gd, b, rack, m)
	}
}
