package gaddag

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/wordsmithgame/wordsmith/config"
)

type testpair struct {
	word  string
	found bool
}

var tinyWords = []string{"cat", "cats", "at", "rain", "rains", "train", "ta", "a"}

var findWordTests = []testpair{
	{"CAT", true},
	{"CATS", true},
	{"AT", true},
	{"TA", true},
	{"A", true},
	{"RAIN", true},
	{"RAINS", true},
	{"TRAIN", true},
	{"TRAINS", false},
	{"CA", false},
	{"TAC", false},
	{"NIAR", false},
	{"AIN", false},
	{"", false},
	{"C^AT", false},
}

func TestContains(t *testing.T) {
	gd := GenerateFromWords(tinyWords)
	for _, pair := range findWordTests {
		found := gd.ContainsString(pair.word)
		if found != pair.found {
			t.Errorf("For %v, expected %v, got %v", pair.word, pair.found, found)
		}
	}
}

// allEntries enumerates every path from the root to an accepting node.
func allEntries(gd *Gaddag) []string {
	var entries []string
	var walk func(node uint32, prefix []byte)
	walk = func(node uint32, prefix []byte) {
		if gd.Accepts(node) {
			entries = append(entries, string(prefix))
		}
		gd.ForEachArc(node, func(letter byte, next uint32) bool {
			walk(next, append(prefix, letter))
			return true
		})
	}
	walk(gd.GetRootNodeIndex(), nil)
	sort.Strings(entries)
	return entries
}

func TestAcceptsExactlyTheEntries(t *testing.T) {
	is := is.New(t)
	gd := GenerateFromWords([]string{"CAT", "AT"})
	// The language is exactly the GADDAG entries of every word.
	is.Equal(allEntries(gd), []string{"AC^T", "A^T", "C^AT", "TA", "TAC"})
}

func TestEntriesForWord(t *testing.T) {
	is := is.New(t)
	is.Equal(entriesForWord("CAT"), []string{"TAC", "C^AT", "AC^T"})
	is.Equal(entriesForWord("A"), []string{"A"})
}

func TestSeparationArcComesLast(t *testing.T) {
	is := is.New(t)
	gd := GenerateFromWords([]string{"AB", "BA", "AA"})
	node := gd.NextNodeIdx(gd.GetRootNodeIndex(), 'A')
	is.True(node != 0)
	var letters []byte
	gd.ForEachArc(node, func(letter byte, next uint32) bool {
		letters = append(letters, letter)
		return true
	})
	is.Equal(string(letters), "AB^")
}

func TestForEachArcStopsEarly(t *testing.T) {
	is := is.New(t)
	gd := GenerateFromWords(tinyWords)
	calls := 0
	gd.ForEachArc(gd.GetRootNodeIndex(), func(letter byte, next uint32) bool {
		calls++
		return false
	})
	is.Equal(calls, 1)
}

func TestNoNode(t *testing.T) {
	is := is.New(t)
	gd := GenerateFromWords(tinyWords)
	is.Equal(gd.NextNodeIdx(gd.GetRootNodeIndex(), 'Q'), uint32(0))
	is.Equal(gd.NextNodeIdx(0, 'A'), uint32(0))
	is.True(!gd.Accepts(0))
	is.Equal(gd.NumArcs(0), byte(0))
}

func TestEmptyWordList(t *testing.T) {
	is := is.New(t)
	gd := GenerateFromWords(nil)
	is.True(!gd.ContainsString("A"))
	is.Equal(gd.NumArcs(gd.GetRootNodeIndex()), byte(0))
}

func TestSkipsBadWords(t *testing.T) {
	is := is.New(t)
	gd := GenerateFromWords([]string{"CAT", "CAñT", "C4T", "dog"})
	is.True(gd.ContainsString("CAT"))
	is.True(gd.ContainsString("DOG"))
	is.True(!gd.ContainsString("C4T"))
}

func TestMinimization(t *testing.T) {
	is := is.New(t)
	// Plurals share all of their suffix structure, so adding words in a
	// regular pattern should add far fewer elements than an unminimized
	// trie would.
	small := GenerateFromWords([]string{"CAT", "CATS"})
	big := GenerateFromWords([]string{"CAT", "CATS", "BAT", "BATS", "HAT", "HATS"})
	is.True(big.NumNodes() < 3*small.NumNodes())
	for _, w := range []string{"CAT", "CATS", "BAT", "BATS", "HAT", "HATS"} {
		is.True(big.ContainsString(w))
	}
	is.True(!big.ContainsString("HA"))
}

func TestSaveLoad(t *testing.T) {
	is := is.New(t)
	gd := GenerateFromWords(tinyWords)
	var buf bytes.Buffer
	is.NoErr(gd.Save(&buf))
	is.Equal(buf.Bytes()[:4], []byte(GaddagMagicNumber))

	loaded, err := Load(bytes.NewReader(buf.Bytes()), "TINY")
	is.NoErr(err)
	is.Equal(loaded.nodes, gd.nodes)
	is.Equal(loaded.LexiconName(), "TINY")
	for _, pair := range findWordTests {
		is.Equal(loaded.ContainsString(pair.word), pair.found)
	}
}

func TestLoadErrors(t *testing.T) {
	gd := GenerateFromWords(tinyWords)
	var buf bytes.Buffer
	assert.NoError(t, gd.Save(&buf))
	data := buf.Bytes()

	_, err := Load(bytes.NewReader([]byte("cdwg\x00\x00\x00\x02")), "x")
	assert.ErrorIs(t, err, ErrBadMagic)

	_, err = Load(bytes.NewReader(data[:2]), "x")
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = Load(bytes.NewReader(data[:len(data)-3]), "x")
	assert.ErrorIs(t, err, ErrTruncated)

	// An arc pointing past the end of the array.
	corrupt := []byte(GaddagMagicNumber)
	corrupt = binary.BigEndian.AppendUint32(corrupt, 3)
	corrupt = binary.BigEndian.AppendUint32(corrupt, 0)
	corrupt = binary.BigEndian.AppendUint32(corrupt, 1)
	corrupt = binary.BigEndian.AppendUint32(corrupt, 'A'<<LetterBitLoc|7)
	_, err = Load(bytes.NewReader(corrupt), "x")
	assert.ErrorIs(t, err, ErrMalformed)

	// A node claiming more arcs than there are elements.
	corrupt = []byte(GaddagMagicNumber)
	corrupt = binary.BigEndian.AppendUint32(corrupt, 2)
	corrupt = binary.BigEndian.AppendUint32(corrupt, 0)
	corrupt = binary.BigEndian.AppendUint32(corrupt, 4)
	_, err = Load(bytes.NewReader(corrupt), "x")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestGenerateFromFile(t *testing.T) {
	is := is.New(t)
	gd, err := GenerateFromFile("testdata/TINY.txt")
	is.NoErr(err)
	is.Equal(gd.LexiconName(), "TINY")
	is.True(gd.ContainsString("TRAIN"))
	is.True(gd.ContainsString("EATEN"))
	is.True(!gd.ContainsString("TRAINS"))

	_, err = GenerateFromFile("testdata/nope.txt")
	is.True(os.IsNotExist(err))
}

func TestLoadOrGenerate(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	words, err := os.ReadFile("testdata/TINY.txt")
	is.NoErr(err)
	is.NoErr(os.WriteFile(filepath.Join(dir, "TINY.txt"), words, 0o644))

	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigLexiconPath, dir)

	gd, err := LoadOrGenerate(cfg, "TINY")
	is.NoErr(err)
	is.Equal(gd.LexiconName(), "TINY")
	_, err = os.Stat(CompiledPath(cfg, "TINY"))
	is.NoErr(err) // compiled form was saved

	// Remove the word list; the compiled form is used from now on.
	is.NoErr(os.Remove(filepath.Join(dir, "TINY.txt")))
	again, err := LoadOrGenerate(cfg, "TINY")
	is.NoErr(err)
	is.Equal(again.nodes, gd.nodes)

	_, err = LoadOrGenerate(cfg, "MISSING")
	is.True(err != nil)
}
