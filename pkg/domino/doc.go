// Package domino arranges a multiset of dominoes into a closed ring.
//
// A [Domino] is a tile with two pip values. Two tiles may be placed side by
// side when the touching ends show the same value, and any tile may be flipped.
// A circular chain uses every input tile exactly once and its last tile's
// second pip equals its first tile's first pip.
//
// # Feasibility
//
// [IsFeasible] is a fast necessary-condition check. Viewing each tile as an
// edge between its two pip values, a ring that uses every edge once is an
// Eulerian circuit, so every pip value must occur an even number of times.
// The check is not sufficient: a set such as [1|2] [2|1] [5|6] [6|5] passes
// it but falls apart into two separate rings. [Components] reports how many
// connected pieces the pip graph has.
//
// # Search
//
// [FindCircularChain] runs a depth-first backtracking search. Tile 0 is the
// anchor, placed in its original orientation; the remaining tiles are tried in
// input order, each first as given and then flipped. The first complete
// arrangement wins. Because tile order and orientation order are fixed, the
// result is deterministic for a given input ordering.
//
// Worst-case cost is exponential in the number of tiles. The search is meant
// for inputs of a few dozen tiles. [FindCircularChainContext] runs the same
// traversal but can be cancelled and reports search [Stats].
//
// # Input
//
// [ReadTiles] parses lines of the form "a|b". Malformed lines are skipped.
//
//	tiles, _, err := domino.ReadTiles(strings.NewReader("1|2\n2|3\n3|1\n"))
//	if err != nil {
//	    return err
//	}
//	if !domino.IsFeasible(tiles) {
//	    fmt.Println(domino.ImpossibleMessage)
//	    return nil
//	}
//	chain, ok := domino.FindCircularChain(tiles)
//	if !ok {
//	    fmt.Println(domino.ImpossibleMessage)
//	    return nil
//	}
//	fmt.Println(chain) // [1|2] [2|3] [3|1]
package domino
