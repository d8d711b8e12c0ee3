// Here we have utility functions for creating a GADDAG.
package gaddag

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Node is a temporary type used in the creation of a GADDAG.
// It will not be used when loading the GADDAG.
type Node struct {
	Arcs      []*Arc
	Accepting bool
	// Utility fields, for minimizing and serializing:
	id                uint32
	visited           bool
	indexInSerialized uint32
}

// Arc is also a temporary type.
type Arc struct {
	Letter      byte
	Destination *Node
}

// maker holds the automaton while entries are being added, prior to
// serializing it. It should not be used after making the gaddag.
type maker struct {
	root        *Node
	allocStates uint32
	allocArcs   uint32
	register    *register

	// The previously inserted entry; entries must come in sorted order.
	prev []byte
}

// Create a new node.
func (m *maker) createNode() *Node {
	m.allocStates++
	return &Node{id: m.allocStates}
}

// lastArc is the most recently added (and so largest) arc of the node.
func (node *Node) lastArc() *Arc {
	if len(node.Arcs) == 0 {
		return nil
	}
	return node.Arcs[len(node.Arcs)-1]
}

// Creates an arc from node for c and returns the new node it points to.
func (node *Node) createArcFrom(c byte, m *maker) *Node {
	newNode := m.createNode()
	m.allocArcs++
	node.Arcs = append(node.Arcs, &Arc{c, newNode})
	return newNode
}

// addEntry adds the next entry in sorted order. The part of the previous
// entry that does not share a prefix with this one can no longer change,
// so it is minimized right away.
func (m *maker) addEntry(entry []byte) {
	common := 0
	for common < len(entry) && common < len(m.prev) && entry[common] == m.prev[common] {
		common++
	}
	st := m.root
	for i := 0; i < common; i++ {
		st = st.lastArc().Destination
	}
	if len(st.Arcs) > 0 {
		m.replaceOrRegister(st)
	}
	for _, c := range entry[common:] {
		st = st.createArcFrom(c, m)
	}
	st.Accepting = true
	m.prev = append(m.prev[:0], entry...)
}

type nodeTraversalFn func(*Node)

// traverseOnce calls fn once for every node reachable from node, parents
// before children.
func traverseOnce(node *Node, fn nodeTraversalFn) {
	if node.visited {
		return
	}
	node.visited = true
	fn(node)
	for _, arc := range node.Arcs {
		traverseOnce(arc.Destination, fn)
	}
}

// Serializes the elements of the gaddag into the flat array.
func (m *maker) serializeElements() []uint32 {
	count := uint32(rootIdx)
	serialized := make([]uint32, 1, m.allocStates+m.allocArcs+1)
	missingElements := make(map[uint32]*Node)
	traverseOnce(m.root, func(node *Node) {
		// Represent node as a 32-bit number
		el := uint32(len(node.Arcs))
		if node.Accepting {
			el |= AcceptingBit
		}
		serialized = append(serialized, el)
		node.indexInSerialized = count
		count++
		for _, arc := range node.Arcs {
			missingElements[count] = arc.Destination
			count++
			serialized = append(serialized, uint32(arc.Letter)<<LetterBitLoc)
		}
	})
	// Now go through the node pointers and assign the arc targets properly.
	for idx, node := range missingElements {
		serialized[idx] += node.indexInSerialized
	}
	log.Debug().Msgf("Assigned %d missing elements.", len(missingElements))
	return serialized
}

// entriesForWord returns every GADDAG path for the word: the word reversed,
// plus rev(word[:i]) + SeparationToken + word[i:] for each split point.
func entriesForWord(word string) []string {
	n := len(word)
	entries := make([]string, 0, n)
	rev := make([]byte, 0, n+1)
	for i := n - 1; i >= 0; i-- {
		rev = append(rev, word[i])
	}
	entries = append(entries, string(rev))
	for i := 1; i < n; i++ {
		// rev(word[:i]) is the tail of the full reversal.
		e := make([]byte, 0, n+1)
		e = append(e, rev[n-i:]...)
		e = append(e, SeparationToken)
		e = append(e, word[i:]...)
		entries = append(entries, string(e))
	}
	return entries
}

func validWord(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'A' || word[i] > 'Z' {
			return false
		}
	}
	return true
}

// GenerateFromWords makes a minimized GADDAG out of a word list. Words are
// upper-cased; words with anything other than A-Z in them are skipped.
func GenerateFromWords(words []string) *Gaddag {
	entries := []string{}
	skipped := 0
	for _, w := range words {
		word := strings.ToUpper(w)
		if !validWord(word) {
			skipped++
			continue
		}
		entries = append(entries, entriesForWord(word)...)
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("skipped words with letters outside A-Z")
	}
	sort.Strings(entries)

	m := &maker{register: newRegister()}
	m.root = m.createNode()
	last := ""
	for idx, e := range entries {
		if idx > 0 && e == last {
			continue
		}
		if idx%100000 == 0 {
			log.Debug().Msgf("%d...", idx)
		}
		m.addEntry([]byte(e))
		last = e
	}
	if len(m.root.Arcs) > 0 {
		m.replaceOrRegister(m.root)
	}
	log.Debug().Msgf("Allocated arcs: %d states: %d, minimized to %d states",
		m.allocArcs, m.allocStates, m.register.size+1)
	return &Gaddag{nodes: m.serializeElements()}
}

// GenerateFromReader reads a word list, one word per line (only the first
// field of each line is used), and makes a GADDAG out of it.
func GenerateFromReader(r io.Reader) (*Gaddag, error) {
	words := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		// Split line into spaces.
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			words = append(words, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	log.Debug().Msgf("Read %d words", len(words))
	return GenerateFromWords(words), nil
}

// GenerateFromFile makes a GADDAG out of the word list in filename. The
// lexicon is named after the file.
func GenerateFromFile(filename string) (*Gaddag, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	g, err := GenerateFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	g.lexiconName = lexiconNameFromPath(filename)
	return g, nil
}
