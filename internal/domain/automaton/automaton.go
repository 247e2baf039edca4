// Package automaton implements Aho-Corasick multi-pattern matching from scratch.
//
// Build inserts every keyword into a byte trie, then computes failure links
// and propagated output sets in one breadth-first pass. The finished
// Automaton is immutable: Count, CountBytes and Scan never modify it, so one
// instance may serve any number of goroutines without locking.
//
// All nodes live in a single arena. Transitions and failure links are int32
// indices into it; index 0 is the root, which is never anyone's child, so a
// zero transition means "no edge". Matching is byte-wise and therefore
// encoding-agnostic: for valid UTF-8, byte-level and character-level
// occurrence counts are identical.
package automaton

import (
	"unsafe"

	"github.com/corey/kwcount/internal/ports"
)

// alphabet is the number of distinct symbols (bytes).
const alphabet = 256

// root is the arena index of the root node.
const root int32 = 0

// node is one trie state. Its output set is outputs[outStart:outEnd] of the
// owning Automaton: its own keyword (if terminal) followed by every keyword
// of its failure target.
type node struct {
	next     [alphabet]int32
	fail     int32
	depth    int32
	keyword  int32 // own keyword id, -1 when not terminal
	outStart int32
	outEnd   int32
}

// nodeBytes is the size of one node, dominated by its dense transition row.
const nodeBytes = int(unsafe.Sizeof(node{}))

func (n *node) terminal() bool {
	return n.keyword >= 0
}

// Automaton is a finished Aho-Corasick automaton.
type Automaton struct {
	nodes    []node
	outputs  []int32
	keywords []string // keyword id -> keyword, first-appearance order
	empty    int32    // id of the empty keyword, -1 when absent
}

// Build constructs an automaton from keywords. Duplicates collapse to a
// single entry. An empty keyword is accepted and matches at every character
// boundary of the text (see Count).
//
// Every node holds a full 256-entry transition row, about 1 KiB, and a trie
// has up to one node per keyword byte. Memory therefore grows with the total
// length of the query file: 100k eight-byte keywords need between 0.5 GB
// and 0.8 GB depending on how many prefixes they share. Stats().Bytes reports the actual figure.
func Build(keywords []string) *Automaton {
	t := buildTrie(keywords)
	return computeFailureLinks(t)
}

// Keywords returns the distinct keywords in first-appearance order.
func (a *Automaton) Keywords() []string {
	out := make([]string, len(a.keywords))
	copy(out, a.keywords)
	return out
}

// Len returns the number of distinct keywords.
func (a *Automaton) Len() int {
	return len(a.keywords)
}

// Stats summarizes the shape of an automaton.
type Stats struct {
	Nodes        int
	Keywords     int
	Outputs      int // total length of all output sets
	MaxDepth     int
	EmptyKeyword bool
	Bytes        int // approximate heap held by nodes and the output pool
}

// Stats reports node, keyword and output-pool sizes.
func (a *Automaton) Stats() Stats {
	s := Stats{
		Nodes:        len(a.nodes),
		Keywords:     len(a.keywords),
		Outputs:      len(a.outputs),
		EmptyKeyword: a.empty >= 0,
		Bytes:        len(a.nodes)*nodeBytes + len(a.outputs)*4,
	}
	for i := range a.nodes {
		if d := int(a.nodes[i].depth); d > s.MaxDepth {
			s.MaxDepth = d
		}
	}
	return s
}

// newCounts returns zeroed counts aligned with keyword ids.
func (a *Automaton) newCounts() *ports.Counts {
	return ports.NewCounts(a.keywords)
}
