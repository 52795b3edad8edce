package domino

import (
	"fmt"
	"strings"
)

// ImpossibleMessage is shown when no circular arrangement exists.
const ImpossibleMessage = "It is impossible to form a circular domino chain."

// Domino is one tile read in a particular orientation.
//
// A tile's identity ignores orientation: [1|2] and [2|1] are the same
// physical tile. Inside a [Chain] the order of First and Second is the
// orientation chosen for that position.
type Domino struct {
	First  int
	Second int
}

// Flip returns the tile read the other way round. d is not modified.
func (d Domino) Flip() Domino {
	return Domino{First: d.Second, Second: d.First}
}

// IsDouble reports whether both ends carry the same pip value.
func (d Domino) IsDouble() bool {
	return d.First == d.Second
}

// Canonical returns the orientation with the smaller pip first.
// Two dominoes are the same tile iff their canonical forms are equal.
func (d Domino) Canonical() Domino {
	if d.First > d.Second {
		return d.Flip()
	}
	return d
}

// String renders the tile as "[first|second]".
func (d Domino) String() string {
	return fmt.Sprintf("[%d|%d]", d.First, d.Second)
}

// Chain is a sequence of oriented tiles where each tile's Second equals the
// next tile's First.
type Chain []Domino

// String renders the chain as space-separated tiles, e.g. "[1|2] [2|3] [3|1]".
func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, d := range c {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}

// IsClosed reports whether the last tile's second pip meets the first
// tile's first pip. An empty chain is not closed.
func (c Chain) IsClosed() bool {
	if len(c) == 0 {
		return false
	}
	return c[0].First == c[len(c)-1].Second
}

// Clone returns an independent copy of c.
func (c Chain) Clone() Chain {
	if c == nil {
		return nil
	}
	out := make(Chain, len(c))
	copy(out, c)
	return out
}
