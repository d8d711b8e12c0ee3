// This has utility functions for minimizing the GADDAG.

package gaddag

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// register holds one canonical node for every equivalence class seen so
// far. Two nodes are equivalent if they are both accepting (or not) and have
// the same arc letters pointing to the same (already canonical) children.
type register struct {
	buckets map[uint64][]*Node
	size    int
	buf     []byte
}

func newRegister() *register {
	return &register{buckets: make(map[uint64][]*Node)}
}

func (r *register) signature(node *Node) uint64 {
	r.buf = r.buf[:0]
	if node.Accepting {
		r.buf = append(r.buf, 1)
	} else {
		r.buf = append(r.buf, 0)
	}
	for _, arc := range node.Arcs {
		r.buf = append(r.buf, arc.Letter)
		r.buf = binary.LittleEndian.AppendUint32(r.buf, arc.Destination.id)
	}
	return xxhash.Sum64(r.buf)
}

// findOrAdd returns the registered node equivalent to node, registering
// node itself if there is none.
func (r *register) findOrAdd(node *Node) *Node {
	key := r.signature(node)
	for _, other := range r.buckets[key] {
		if node.Equals(other) {
			return other
		}
	}
	r.buckets[key] = append(r.buckets[key], node)
	r.size++
	return node
}

// replaceOrRegister minimizes the most recently added path out of node,
// bottom-up. Children must be canonical before their parent is looked up.
func (m *maker) replaceOrRegister(node *Node) {
	arc := node.lastArc()
	child := arc.Destination
	if len(child.Arcs) > 0 {
		m.replaceOrRegister(child)
	}
	arc.Destination = m.register.findOrAdd(child)
}

// Equals compares two nodes whose children are already minimized. They are
// the same if they have the same acceptance, the same arc letters, and
// all their children are the same nodes.
func (node *Node) Equals(other *Node) bool {
	if node.Accepting != other.Accepting {
		return false
	}
	if len(node.Arcs) != len(other.Arcs) {
		return false
	}
	for idx, arc1 := range node.Arcs {
		if arc1.Letter != other.Arcs[idx].Letter {
			return false
		}
		if arc1.Destination != other.Arcs[idx].Destination {
			return false
		}
	}
	return true
}
