package domino

import (
	"errors"
	"fmt"
)

// ErrInvalidChain is wrapped by every error returned from [Validate].
var ErrInvalidChain = errors.New("invalid chain")

// Validate checks that chain is a circular arrangement of exactly the tiles
// in tiles: adjacent ends match, the ring closes, and every input tile is used
// once (orientation ignored).
func Validate(tiles []Domino, chain Chain) error {
	if len(chain) != len(tiles) {
		return fmt.Errorf("%w: %d tiles in chain, want %d", ErrInvalidChain, len(chain), len(tiles))
	}
	if len(chain) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidChain)
	}

	for i := 0; i+1 < len(chain); i++ {
		if chain[i].Second != chain[i+1].First {
			return fmt.Errorf("%w: %s does not meet %s at position %d", ErrInvalidChain, chain[i], chain[i+1], i)
		}
	}
	if !chain.IsClosed() {
		return fmt.Errorf("%w: %s does not close onto %s", ErrInvalidChain, chain[len(chain)-1], chain[0])
	}

	remaining := make(map[Domino]int, len(tiles))
	for _, d := range tiles {
		remaining[d.Canonical()]++
	}
	for _, d := range chain {
		key := d.Canonical()
		if remaining[key] == 0 {
			return fmt.Errorf("%w: %s used more often than given", ErrInvalidChain, d)
		}
		remaining[key]--
	}
	return nil
}

// Components returns the number of connected components in the graph whose
// vertices are the pip values in tiles and whose edges are the tiles.
// An empty set has zero components.
func Components(tiles []Domino) int {
	parent := make(map[int]int)
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	for _, d := range tiles {
		for _, pip := range []int{d.First, d.Second} {
			if _, ok := parent[pip]; !ok {
				parent[pip] = pip
			}
		}
		if a, b := find(d.First), find(d.Second); a != b {
			parent[a] = b
		}
	}

	n := 0
	for pip := range parent {
		if find(pip) == pip {
			n++
		}
	}
	return n
}
