package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/dominochain/pkg/domino"
)

// Stdin is the source name that makes [ImportTiles] read standard input.
const Stdin = "-"

// tileSet is the JSON tile input format.
type tileSet struct {
	Tiles []Pair `json:"tiles"`
}

// ReadJSON decodes a result [Document] from r.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// ReadTilesJSON decodes a {"tiles": [[a, b], ...]} object from r.
// A missing or empty "tiles" array yields no tiles and no error.
func ReadTilesJSON(r io.Reader) ([]domino.Domino, error) {
	var set tileSet
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Dominoes(set.Tiles), nil
}

// ImportTiles reads the tiles stored at path.
//
// Files ending in ".json" are decoded with [ReadTilesJSON]; anything else,
// including [Stdin], is read as "a|b" records with [domino.ReadTiles].
// skipped counts malformed text records and is always zero for JSON.
func ImportTiles(path string) (tiles []domino.Domino, skipped int, err error) {
	if path == Stdin {
		return domino.ReadTiles(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		tiles, err = ReadTilesJSON(f)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", path, err)
		}
		return tiles, 0, nil
	}

	tiles, skipped, err = domino.ReadTiles(f)
	if err != nil {
		return nil, skipped, fmt.Errorf("read %s: %w", path, err)
	}
	return tiles, skipped, nil
}
