// Package gaddag implements the GADDAG, a pretty cool data structure
// invented by Steven Gordon.
package gaddag

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// A Gaddag.nodes is just a slice of 32-bit elements.
// It is created by serializeElements in make_gaddag.go.
// Schema:
// [0] (sentinel; index 0 never names a node)
// a set of [node] [arcs...], the root node first at index 1.
// Where node is a 32-bit number: AcceptingBit | NumArcs
// Each arc is a 32-bit number: (letter << LetterBitLoc) + index of next node,
// where letter is the ASCII byte (A-Z, or the SeparationToken), and the index
// of the node is the index of the element in the nodes array.
// Arcs of a node are sorted by letter; since the SeparationToken sorts after
// Z its arc always comes last.
//
// If the node has no arcs, the arc array is empty.
type Gaddag struct {
	nodes       []uint32
	lexiconName string
}

const (
	// GaddagMagicNumber starts every serialized GADDAG.
	GaddagMagicNumber = "cgdg"

	// SeparationToken is the GADDAG separation token.
	SeparationToken = '^'

	// LetterBitLoc is the location where the letter starts.
	// An Arc has a letter and a next node.
	LetterBitLoc   = 24
	NodeIdxBitMask = (1 << LetterBitLoc) - 1

	// AcceptingBit is set on a node element when a complete entry ends
	// there.
	AcceptingBit   = 1 << 31
	NumArcsBitMask = (1 << LetterBitLoc) - 1

	// rootIdx is where serialization always puts the root.
	rootIdx = 1
)

var (
	ErrBadMagic  = errors.New("bad gaddag magic number")
	ErrTruncated = errors.New("gaddag data is truncated")
	ErrMalformed = errors.New("gaddag data is malformed")
)

// GetRootNodeIndex gets the index of the root node.
func (g *Gaddag) GetRootNodeIndex() uint32 {
	return rootIdx
}

// NumArcs is the number of outgoing arcs of the node at nodeIdx.
func (g *Gaddag) NumArcs(nodeIdx uint32) byte {
	if nodeIdx == 0 {
		return 0
	}
	return byte(g.nodes[nodeIdx] & NumArcsBitMask)
}

// NumNodes is the number of elements (nodes plus arcs) in the array.
func (g *Gaddag) NumNodes() int {
	return len(g.nodes)
}

// Accepts returns whether a complete entry ends at the node.
func (g *Gaddag) Accepts(nodeIdx uint32) bool {
	return nodeIdx != 0 && g.nodes[nodeIdx]&AcceptingBit != 0
}

// NextNodeIdx follows the arc for letter out of nodeIdx. It returns 0 if
// there is no such arc.
func (g *Gaddag) NextNodeIdx(nodeIdx uint32, letter byte) uint32 {
	if nodeIdx == 0 {
		return 0
	}
	numArcs := uint32(g.NumArcs(nodeIdx))
	for i := nodeIdx + 1; i <= nodeIdx+numArcs; i++ {
		arcLetter := byte(g.nodes[i] >> LetterBitLoc)
		if arcLetter == letter {
			return g.nodes[i] & NodeIdxBitMask
		}
		if arcLetter > letter {
			// arcs are sorted
			break
		}
	}
	return 0
}

// ForEachArc calls fn for every outgoing arc of the node, in letter order.
// Iteration stops early if fn returns false.
func (g *Gaddag) ForEachArc(nodeIdx uint32, fn func(letter byte, next uint32) bool) {
	if nodeIdx == 0 {
		return
	}
	numArcs := uint32(g.NumArcs(nodeIdx))
	for i := nodeIdx + 1; i <= nodeIdx+numArcs; i++ {
		if !fn(byte(g.nodes[i]>>LetterBitLoc), g.nodes[i]&NodeIdxBitMask) {
			return
		}
	}
}

// Contains returns whether the word is in the lexicon. Every word is stored
// fully reversed, so that is the path we walk.
func (g *Gaddag) Contains(word []byte) bool {
	if len(word) == 0 {
		return false
	}
	node := g.GetRootNodeIndex()
	for i := len(word) - 1; i >= 0; i-- {
		node = g.NextNodeIdx(node, word[i])
		if node == 0 {
			return false
		}
	}
	return g.Accepts(node)
}

// ContainsString is Contains for an uppercase string.
func (g *Gaddag) ContainsString(word string) bool {
	return g.Contains([]byte(word))
}

// LexiconName is the name of the lexicon this was built from.
func (g *Gaddag) LexiconName() string {
	return g.lexiconName
}

// Save writes the GADDAG in its binary format.
func (g *Gaddag) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(GaddagMagicNumber); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(len(g.nodes))); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, g.nodes); err != nil {
		return err
	}
	return bw.Flush()
}

// SaveToFile saves the GADDAG to a file.
func (g *Gaddag) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if err := g.Save(file); err != nil {
		file.Close()
		return fmt.Errorf("could not write gaddag: %w", err)
	}
	log.Info().Str("filename", filename).Int("elements", len(g.nodes)).
		Msg("saved-gaddag")
	return file.Close()
}

// Load reads a GADDAG written by Save.
func Load(r io.Reader, name string) (*Gaddag, error) {
	var elements uint32
	magic := make([]byte, len(GaddagMagicNumber))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, truncated(err)
	}
	if string(magic) != GaddagMagicNumber {
		return nil, ErrBadMagic
	}
	if err := binary.Read(r, binary.BigEndian, &elements); err != nil {
		return nil, truncated(err)
	}
	if elements < rootIdx+1 || elements > NodeIdxBitMask+1 {
		return nil, fmt.Errorf("%w: %d elements", ErrMalformed, elements)
	}
	data := make([]uint32, elements)
	if err := binary.Read(r, binary.BigEndian, data); err != nil {
		return nil, truncated(err)
	}
	g := &Gaddag{nodes: data, lexiconName: name}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadFromFile loads a gaddag from a file. The lexicon name is the file's
// base name without its extension.
func LoadFromFile(filename string) (*Gaddag, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	log.Debug().Msgf("Loading %v ...", filename)
	g, err := Load(bufio.NewReader(file), lexiconNameFromPath(filename))
	if err != nil {
		return nil, fmt.Errorf("loading %v: %w", filename, err)
	}
	return g, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}

// validate walks the array node by node so that a corrupt file can never
// send a reader outside of it. Every arc must point at the start of a node.
func (g *Gaddag) validate() error {
	n := uint32(len(g.nodes))
	isNode := make([]bool, n)
	i := uint32(rootIdx)
	for i < n {
		isNode[i] = true
		numArcs := g.nodes[i] & NumArcsBitMask
		if numArcs > 0xFF || i+numArcs >= n {
			return fmt.Errorf("%w: node %d overruns the array", ErrMalformed, i)
		}
		i += numArcs + 1
	}
	for i = rootIdx; i < n; i += (g.nodes[i] & NumArcsBitMask) + 1 {
		for j := i + 1; j <= i+g.nodes[i]&NumArcsBitMask; j++ {
			next := g.nodes[j] & NodeIdxBitMask
			if next >= n || !isNode[next] {
				return fmt.Errorf("%w: arc %d points to %d", ErrMalformed, j, next)
			}
		}
	}
	return nil
}

func lexiconNameFromPath(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
