package automaton

// trie is the raw prefix tree before failure links exist.
type trie struct {
	nodes    []node
	keywords []string
	ids      map[string]int32
	empty    int32
}

func newTrie(keywordHint int) *trie {
	t := &trie{
		nodes:    make([]node, 1, keywordHint+1),
		keywords: make([]string, 0, keywordHint),
		ids:      make(map[string]int32, keywordHint),
		empty:    -1,
	}
	t.nodes[root].keyword = -1
	return t
}

// buildTrie inserts keywords in order. Keyword ids follow first appearance.
func buildTrie(keywords []string) *trie {
	t := newTrie(len(keywords))
	for _, kw := range keywords {
		t.insert(kw)
	}
	return t
}

// insert walks kw from the root, creating missing children, and marks the
// final node terminal. Re-inserting a known keyword only re-marks it.
func (t *trie) insert(kw string) {
	id, seen := t.ids[kw]
	if !seen {
		id = int32(len(t.keywords))
		t.ids[kw] = id
		t.keywords = append(t.keywords, kw)
	}

	// The empty keyword is tracked on the automaton, not on the root, so the
	// root's output set stays empty and nothing inherits it.
	if kw == "" {
		t.empty = id
		return
	}

	cur := root
	for i := 0; i < len(kw); i++ {
		c := kw[i]
		next := t.nodes[cur].next[c]
		if next == 0 {
			next = int32(len(t.nodes))
			t.nodes = append(t.nodes, node{
				depth:   t.nodes[cur].depth + 1,
				keyword: -1,
			})
			t.nodes[cur].next[c] = next
		}
		cur = next
	}
	t.nodes[cur].keyword = id
}
