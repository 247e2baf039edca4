package automaton

// computeFailureLinks finishes a trie into an Automaton.
//
// Nodes are visited in strict breadth-first order, so when a node is reached
// its parent's failure link and every shallower node's output set are final.
// The queue is a slice with an advancing head: every node is enqueued once,
// so pops are O(1) and the backing array never shifts.
func computeFailureLinks(t *trie) *Automaton {
	nodes := t.nodes
	outputs := make([]int32, 0, len(t.keywords))

	queue := make([]int32, 0, len(nodes))
	queue = append(queue, root)
	nodes[root].fail = root

	for head := 0; head < len(queue); head++ {
		parent := queue[head]
		for c := range alphabet {
			child := nodes[parent].next[c]
			if child == 0 {
				continue
			}

			fail := root
			if parent != root {
				// Longest proper suffix of parent's path that can be
				// extended by c; falls back to the root.
				fail = step(nodes, nodes[parent].fail, byte(c))
			}
			nodes[child].fail = fail

			start := int32(len(outputs))
			if own := nodes[child].keyword; own >= 0 {
				outputs = append(outputs, own)
			}
			f := &nodes[fail]
			outputs = append(outputs, outputs[f.outStart:f.outEnd]...)
			nodes[child].outStart = start
			nodes[child].outEnd = int32(len(outputs))

			queue = append(queue, child)
		}
	}

	return &Automaton{
		nodes:    nodes,
		outputs:  outputs,
		keywords: t.keywords,
		empty:    t.empty,
	}
}

// step returns the state reached from state on byte c: failure links are
// followed until a state with an edge for c is found, and the root is
// returned when even the root has none.
func step(nodes []node, state int32, c byte) int32 {
	for state != root && nodes[state].next[c] == 0 {
		state = nodes[state].fail
	}
	return nodes[state].next[c]
}
