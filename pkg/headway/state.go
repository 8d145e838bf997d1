package headway

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// lifecycle is the terminal state of a node. Completed and Abandoned are sticky.
type lifecycle int

const (
	inProgress lifecycle = iota
	completed
	abandoned
)

func (l lifecycle) String() string {
	switch l {
	case completed:
		return "completed"
	case abandoned:
		return "abandoned"
	default:
		return "in-progress"
	}
}

// splitKind selects how a composite node combines its children.
type splitKind int

const (
	// splitWeighted children each own a fraction of the parent.
	splitWeighted splitKind = iota
	// splitSized children each own a fixed item count of the parent.
	splitSized
	// splitSummed parent length and progress are the sums of its children.
	splitSummed
)

// nested is the payload of a composite node. weights holds fractions for
// splitWeighted and item counts for splitSized; it is grown together with bars.
type nested struct {
	kind    splitKind
	bars    []*node
	weights []float64
}

// node is the mutable state behind one bar. All fields are guarded by the
// owning manager's mutex.
type node struct {
	length    int
	hasLength bool
	position  int
	message   string
	nested    *nested
	lifecycle lifecycle

	// handles counts external owners. The manager's own reference is not counted.
	handles int
}

func newNode() *node {
	return &node{handles: 1}
}

func (n *node) isWeighted() bool {
	return n.nested != nil && n.nested.kind == splitWeighted
}

// attach appends a child, pairing it with weight for weighted and sized splits.
func (n *node) attach(child *node, weight float64) {
	n.nested.bars = append(n.nested.bars, child)
	if n.nested.kind != splitSummed {
		n.nested.weights = append(n.nested.weights, weight)
	}
}

// externallyReferenced reports whether the node or any descendant still has
// a live handle.
func (n *node) externallyReferenced() bool {
	if n.handles > 0 {
		return true
	}
	if n.nested == nil {
		return false
	}
	for _, child := range n.nested.bars {
		if child.externallyReferenced() {
			return true
		}
	}
	return false
}

// hashState feeds the reportable state of the subtree into d.
func (n *node) hashState(d *xxhash.Digest) {
	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}

	if n.hasLength {
		writeInt(1)
		writeInt(n.length)
	} else {
		writeInt(0)
	}
	writeInt(n.position)
	writeInt(len(n.message))
	_, _ = d.WriteString(n.message)

	if n.nested != nil {
		writeInt(len(n.nested.bars))
		for _, child := range n.nested.bars {
			child.hashState(d)
		}
	}
}

// leafCompleted reports whether a leaf has nothing left to do.
func (n *node) leafCompleted() bool {
	if n.hasLength && n.position >= n.length {
		return true
	}
	return n.lifecycle != inProgress
}

// visitCompleted walks the subtree depth-first, children before their parent,
// calling visit with each node's completion. It returns the completion of n.
// A composite is completed when all of its children are.
func (n *node) visitCompleted(visit func(done bool, n *node)) bool {
	if n.nested == nil {
		done := n.leafCompleted()
		visit(done, n)
		return done
	}

	done := true
	for _, child := range n.nested.bars {
		if !child.visitCompleted(visit) {
			done = false
		}
	}
	visit(done, n)
	return done
}
