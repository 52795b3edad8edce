package domino

import (
	"maps"
	"slices"
)

// PipCounts returns how often each pip value occurs across both ends of all
// tiles. A double such as [4|4] counts twice for 4.
func PipCounts(tiles []Domino) map[int]int {
	counts := make(map[int]int)
	for _, d := range tiles {
		counts[d.First]++
		counts[d.Second]++
	}
	return counts
}

// IsFeasible reports whether every pip value occurs an even number of times.
//
// This is necessary for a circular chain but not sufficient; see the package
// documentation. An empty set is vacuously feasible. tiles is not modified.
func IsFeasible(tiles []Domino) bool {
	for _, n := range PipCounts(tiles) {
		if n%2 != 0 {
			return false
		}
	}
	return true
}

// OddPips returns the pip values with an odd occurrence count, sorted
// ascending. It is empty exactly when [IsFeasible] is true.
func OddPips(tiles []Domino) []int {
	counts := PipCounts(tiles)
	var odd []int
	for _, pip := range slices.Sorted(maps.Keys(counts)) {
		if counts[pip]%2 != 0 {
			odd = append(odd, pip)
		}
	}
	return odd
}
