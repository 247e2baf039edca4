package automaton

import (
	"fmt"
)

// Validate re-checks the structural invariants of a finished automaton:
//
//   - every non-root node has exactly one parent edge, one level shallower
//   - the root fails to itself; every other failure target is strictly
//     shallower and spells the longest proper suffix of the node's path
//     that is also a path from the root
//   - every output set equals the node's own keyword (if terminal)
//     followed by its failure target's output set
//
// It walks every node and reconstructs paths, so it costs far more than a
// build. Intended for tests and diagnostics.
func (a *Automaton) Validate() error {
	nodes := a.nodes
	if len(nodes) == 0 {
		return fmt.Errorf("automaton has no root")
	}
	if nodes[root].fail != root || nodes[root].depth != 0 {
		return fmt.Errorf("root: fail=%d depth=%d", nodes[root].fail, nodes[root].depth)
	}
	if nodes[root].outStart != nodes[root].outEnd {
		return fmt.Errorf("root: non-empty output set")
	}

	parents := make([]int32, len(nodes))
	paths := make([]string, len(nodes))
	for i := range parents {
		parents[i] = -1
	}

	// Parent edges and paths, breadth-first from the root.
	queue := []int32{root}
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		for c := range alphabet {
			child := nodes[p].next[c]
			if child == 0 {
				continue
			}
			if int(child) >= len(nodes) || child < 0 {
				return fmt.Errorf("node %d: edge %q out of range (%d)", p, byte(c), child)
			}
			if parents[child] != -1 {
				return fmt.Errorf("node %d: reachable from %d and %d", child, parents[child], p)
			}
			if nodes[child].depth != nodes[p].depth+1 {
				return fmt.Errorf("node %d: depth %d under parent depth %d", child, nodes[child].depth, nodes[p].depth)
			}
			parents[child] = p
			paths[child] = paths[p] + string([]byte{byte(c)})
			queue = append(queue, child)
		}
	}
	if len(queue) != len(nodes) {
		return fmt.Errorf("%d of %d nodes unreachable from root", len(nodes)-len(queue), len(nodes))
	}

	for i := 1; i < len(nodes); i++ {
		n := &nodes[i]
		f := n.fail
		if f < 0 || int(f) >= len(nodes) {
			return fmt.Errorf("node %d (%q): fail %d out of range", i, paths[i], f)
		}
		if nodes[f].depth >= n.depth {
			return fmt.Errorf("node %d (%q): fail depth %d not below depth %d", i, paths[i], nodes[f].depth, n.depth)
		}
		if want := a.longestSuffixNode(paths[i]); want != f {
			return fmt.Errorf("node %d (%q): fail is %q, want %q", i, paths[i], paths[f], paths[want])
		}

		var want []int32
		if n.terminal() {
			want = append(want, n.keyword)
		}
		want = append(want, a.outputs[nodes[f].outStart:nodes[f].outEnd]...)
		got := a.outputs[n.outStart:n.outEnd]
		if len(got) != len(want) {
			return fmt.Errorf("node %d (%q): output size %d, want %d", i, paths[i], len(got), len(want))
		}
		for j := range got {
			if got[j] != want[j] {
				return fmt.Errorf("node %d (%q): output[%d]=%d, want %d", i, paths[i], j, got[j], want[j])
			}
		}
		if n.terminal() && a.keywords[n.keyword] != paths[i] {
			return fmt.Errorf("node %d: terminal for %q but spells %q", i, a.keywords[n.keyword], paths[i])
		}
	}
	return nil
}

// longestSuffixNode returns the node spelling the longest proper suffix of
// path that is itself a trie path, or the root.
func (a *Automaton) longestSuffixNode(path string) int32 {
	for k := 1; k < len(path); k++ {
		if n, ok := a.lookup(path[k:]); ok {
			return n
		}
	}
	return root
}

// lookup follows trie edges only (no failure links).
func (a *Automaton) lookup(path string) (int32, bool) {
	cur := root
	for i := 0; i < len(path); i++ {
		cur = a.nodes[cur].next[path[i]]
		if cur == 0 {
			return 0, false
		}
	}
	return cur, true
}
