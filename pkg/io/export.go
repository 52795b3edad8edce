package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/dominochain/pkg/domino"
)

// Pair is the JSON form of a tile: [first, second].
type Pair [2]int

// Stats is the JSON form of search statistics.
type Stats struct {
	Placements int   `json:"placements"`
	Backtracks int   `json:"backtracks"`
	DurationMS int64 `json:"duration_ms"`
	CacheHit   bool  `json:"cache_hit,omitempty"`
	Skipped    int   `json:"skipped_lines,omitempty"`
}

// Document is the JSON form of one solve.
type Document struct {
	ID       string `json:"id,omitempty"`
	Source   string `json:"source,omitempty"`
	Tiles    []Pair `json:"tiles"`
	Feasible bool   `json:"feasible"`
	Found    bool   `json:"found"`
	Chain    []Pair `json:"chain,omitempty"`
	Stats    *Stats `json:"stats,omitempty"`
}

// Pairs converts tiles to their JSON form.
func Pairs(tiles []domino.Domino) []Pair {
	out := make([]Pair, len(tiles))
	for i, d := range tiles {
		out[i] = Pair{d.First, d.Second}
	}
	return out
}

// Dominoes converts JSON pairs back to tiles.
func Dominoes(pairs []Pair) []domino.Domino {
	out := make([]domino.Domino, len(pairs))
	for i, p := range pairs {
		out[i] = domino.Domino{First: p[0], Second: p[1]}
	}
	return out
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc Document, w io.Writer) error {
	if doc.Tiles == nil {
		doc.Tiles = []Pair{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
