package ports

// Counter counts how many times each query occurs in a database text.
// Implementations differ in strategy (automaton, library, naive, regex) and
// in overlap semantics; Overlapping reports which one a counter follows.
//
// The returned Counts holds exactly one entry per distinct query, in the
// order queries first appear in the input.
type Counter interface {
	// Name is the strategy identifier used on the command line and in
	// bench output file names (e.g., "aho", "library").
	Name() string

	// Overlapping is true when occurrences may share characters
	// ("aa" in "aaaa" counts 3), false for left-to-right non-overlapping
	// counting ("aa" in "aaaa" counts 2).
	Overlapping() bool

	// Count returns per-query counts for database.
	Count(database string, queries []string) (*Counts, error)
}

// Counts is an insertion-ordered keyword -> count mapping.
// Keywords are distinct; Values[i] is the count for Keywords[i].
type Counts struct {
	Keywords []string
	Values   []int
	index    map[string]int
}

// NewCounts returns zeroed counts for the distinct keywords of queries,
// in first-appearance order.
func NewCounts(queries []string) *Counts {
	c := &Counts{
		Keywords: make([]string, 0, len(queries)),
		index:    make(map[string]int, len(queries)),
	}
	for _, q := range queries {
		if _, ok := c.index[q]; ok {
			continue
		}
		c.index[q] = len(c.Keywords)
		c.Keywords = append(c.Keywords, q)
	}
	c.Values = make([]int, len(c.Keywords))
	return c
}

// Len returns the number of distinct keywords.
func (c *Counts) Len() int {
	return len(c.Keywords)
}

// ID returns the position of keyword in Keywords.
func (c *Counts) ID(keyword string) (int, bool) {
	id, ok := c.index[keyword]
	return id, ok
}

// Get returns the count for keyword and whether it is known.
func (c *Counts) Get(keyword string) (int, bool) {
	id, ok := c.index[keyword]
	if !ok {
		return 0, false
	}
	return c.Values[id], true
}

// Add increments the count of keyword by n. Unknown keywords are ignored.
func (c *Counts) Add(keyword string, n int) {
	if id, ok := c.index[keyword]; ok {
		c.Values[id] += n
	}
}

// Map returns the counts as a plain map.
func (c *Counts) Map() map[string]int {
	m := make(map[string]int, len(c.Keywords))
	for i, kw := range c.Keywords {
		m[kw] = c.Values[i]
	}
	return m
}

// Total returns the sum of all counts.
func (c *Counts) Total() int {
	total := 0
	for _, v := range c.Values {
		total += v
	}
	return total
}

// Merge adds other's counts into c for every keyword both share.
func (c *Counts) Merge(other *Counts) {
	for i, kw := range other.Keywords {
		c.Add(kw, other.Values[i])
	}
}

// Diff returns the keywords whose counts differ between c and other,
// in c's keyword order. Keywords missing from other are reported too.
func (c *Counts) Diff(other *Counts) []string {
	var out []string
	for i, kw := range c.Keywords {
		v, ok := other.Get(kw)
		if !ok || v != c.Values[i] {
			out = append(out, kw)
		}
	}
	return out
}
