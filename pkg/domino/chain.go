package domino

import "context"

// pollInterval is how many placements the search makes between context checks.
const pollInterval = 1024

// Stats describes the work done by one search.
type Stats struct {
	// Placements counts tiles appended to the chain. The anchor is not counted.
	Placements int `json:"placements"`

	// Backtracks counts placements that were undone after their subtree failed.
	Backtracks int `json:"backtracks"`
}

// outcome is the result of exploring one subtree of the search.
type outcome int

const (
	exhausted outcome = iota // no arrangement below this point
	found                    // every tile is placed
	cancelled                // the context was cancelled
)

// builder owns the mutable search state. Every place that marks a tile used
// also appends it to chain; both are undone together when the subtree fails.
type builder struct {
	ctx   context.Context
	tiles []Domino
	used  []bool
	chain Chain
	stats Stats
}

func newBuilder(ctx context.Context, tiles []Domino) *builder {
	b := &builder{
		ctx:   ctx,
		tiles: tiles,
		used:  make([]bool, len(tiles)),
		chain: make(Chain, 0, len(tiles)),
	}
	// The anchor fixes rotation. Its orientation is never flipped: reversing a
	// ring flips every tile, so any ring can be read with tile 0 as given.
	b.used[0] = true
	b.chain = append(b.chain, tiles[0])
	return b
}

// extend tries to grow the chain until every tile is used.
// Closure is not checked here; see search.
func (b *builder) extend() outcome {
	if len(b.chain) == len(b.tiles) {
		return found
	}

	tail := b.chain[len(b.chain)-1].Second
	for i, d := range b.tiles {
		if b.used[i] {
			continue
		}
		if d.First == tail {
			if r := b.place(i, d); r != exhausted {
				return r
			}
		}
		// A double reads the same both ways; trying it again repeats the subtree.
		if !d.IsDouble() && d.Second == tail {
			if r := b.place(i, d.Flip()); r != exhausted {
				return r
			}
		}
	}
	return exhausted
}

// place appends the oriented tile o (tile index i) and searches below it.
// On exhaustion the chain and usage vector are restored before returning.
func (b *builder) place(i int, o Domino) outcome {
	if b.stats.Placements%pollInterval == 0 && b.ctx.Err() != nil {
		return cancelled
	}

	b.chain = append(b.chain, o)
	b.used[i] = true
	b.stats.Placements++

	r := b.extend()
	if r != exhausted {
		return r
	}

	b.chain = b.chain[:len(b.chain)-1]
	b.used[i] = false
	b.stats.Backtracks++
	return exhausted
}

// search runs the builder and verifies closure once the traversal ends.
func search(ctx context.Context, tiles []Domino) (Chain, Stats, error) {
	if len(tiles) == 0 {
		return nil, Stats{}, nil
	}

	b := newBuilder(ctx, tiles)
	switch b.extend() {
	case cancelled:
		return nil, b.stats, ctx.Err()
	case found:
		if b.chain.IsClosed() {
			return b.chain, b.stats, nil
		}
	}
	return nil, b.stats, nil
}

// FindCircularChain returns the first circular arrangement of tiles found by
// the backtracking search, or false if none exists.
//
// Every tile appears exactly once in the result, possibly flipped. The anchor
// tile (index 0) always comes first in its original orientation. An empty
// input reports false. tiles is not modified.
func FindCircularChain(tiles []Domino) (Chain, bool) {
	chain, _, _ := search(context.Background(), tiles)
	return chain, chain != nil
}

// FindCircularChainContext is [FindCircularChain] with cancellation.
//
// It explores tiles in the same order and returns the same chain. When no
// ring exists it returns a nil chain and a nil error. The error is non-nil
// only when ctx is cancelled or its deadline passes before the search ends;
// the returned Stats then cover the work done so far.
func FindCircularChainContext(ctx context.Context, tiles []Domino) (Chain, Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}
	return search(ctx, tiles)
}
