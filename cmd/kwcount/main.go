// kwcount counts keyword occurrences in a text with an Aho-Corasick
// automaton and compares it against other counting strategies.
package main

import (
	"fmt"
	"os"

	"github.com/corey/kwcount/cmd/kwcount/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", cmd.Explain(err))
		os.Exit(1)
	}
}
