package domino

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func tiles(pairs ...[2]int) []Domino {
	out := make([]Domino, len(pairs))
	for i, p := range pairs {
		out[i] = Domino{First: p[0], Second: p[1]}
	}
	return out
}

func TestFindCircularChainScenarios(t *testing.T) {
	tests := []struct {
		name  string
		tiles []Domino
		want  Chain
		found bool
	}{
		{
			name:  "three cycle",
			tiles: tiles([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1}),
			want:  Chain(tiles([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1})),
			found: true,
		},
		{
			name:  "all odd",
			tiles: tiles([2]int{1, 2}, [2]int{3, 4}),
		},
		{
			name:  "single double",
			tiles: tiles([2]int{1, 1}),
			want:  Chain(tiles([2]int{1, 1})),
			found: true,
		},
		{
			name:  "two tiles",
			tiles: tiles([2]int{1, 2}, [2]int{2, 1}),
			want:  Chain(tiles([2]int{1, 2}, [2]int{2, 1})),
			found: true,
		},
		{
			name: "empty",
		},
		{
			name:  "disconnected even parity",
			tiles: tiles([2]int{1, 2}, [2]int{2, 1}, [2]int{5, 6}, [2]int{6, 5}),
		},
		{
			name:  "interior tile flipped",
			tiles: tiles([2]int{1, 2}, [2]int{3, 2}, [2]int{1, 3}),
			want:  Chain(tiles([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1})),
			found: true,
		},
		{
			name:  "single non-double",
			tiles: tiles([2]int{1, 2}),
		},
		{
			name:  "backtrack out of dead end",
			tiles: tiles([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1}, [2]int{2, 2}),
			want:  Chain(tiles([2]int{1, 2}, [2]int{2, 2}, [2]int{2, 3}, [2]int{3, 1})),
			found: true,
		},
		{
			name: "figure eight",
			tiles: tiles(
				[2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1},
				[2]int{3, 4}, [2]int{4, 5}, [2]int{5, 3},
			),
			want: Chain(tiles(
				[2]int{1, 2}, [2]int{2, 3}, [2]int{3, 4},
				[2]int{4, 5}, [2]int{5, 3}, [2]int{3, 1},
			)),
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindCircularChain(tt.tiles)
			if ok != tt.found {
				t.Fatalf("FindCircularChain() found = %v, want %v (chain %v)", ok, tt.found, got)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("FindCircularChain() = %v, want %v", got, tt.want)
			}
			if ok {
				if err := Validate(tt.tiles, got); err != nil {
					t.Errorf("Validate() = %v", err)
				}
			}
		})
	}
}

func TestFindCircularChainDoesNotModifyInput(t *testing.T) {
	in := tiles([2]int{1, 2}, [2]int{3, 2}, [2]int{1, 3})
	orig := slices.Clone(in)

	if _, ok := FindCircularChain(in); !ok {
		t.Fatal("expected a chain")
	}
	if !slices.Equal(in, orig) {
		t.Errorf("input modified: %v, want %v", in, orig)
	}
}

func TestFindCircularChainAnchorFirst(t *testing.T) {
	in := tiles([2]int{3, 1}, [2]int{1, 2}, [2]int{2, 3})
	got, ok := FindCircularChain(in)
	if !ok {
		t.Fatal("expected a chain")
	}
	if got[0] != in[0] {
		t.Errorf("chain starts with %v, want anchor %v", got[0], in[0])
	}
}

// A ring exists exactly when every pip count is even and the pip graph is
// connected. Checking random small sets against that rule exercises both the
// parity filter and the completeness of the search.
func TestFindCircularChainMatchesEulerCondition(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := range 500 {
		n := 1 + rng.IntN(7)
		in := make([]Domino, n)
		for j := range in {
			in[j] = Domino{First: rng.IntN(4), Second: rng.IntN(4)}
		}

		want := IsFeasible(in) && Components(in) == 1
		got, ok := FindCircularChain(in)
		if ok != want {
			t.Fatalf("case %d: FindCircularChain(%v) found = %v, want %v", i, in, ok, want)
		}
		if ok {
			if err := Validate(in, got); err != nil {
				t.Fatalf("case %d: Validate(%v, %v) = %v", i, in, got, err)
			}
		}
	}
}

func TestFindCircularChainOddParityNeverFound(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	checked := 0
	for checked < 200 {
		n := 1 + rng.IntN(6)
		in := make([]Domino, n)
		for j := range in {
			in[j] = Domino{First: rng.IntN(5), Second: rng.IntN(5)}
		}
		if IsFeasible(in) {
			continue
		}
		checked++
		if got, ok := FindCircularChain(in); ok {
			t.Fatalf("FindCircularChain(%v) = %v, want not found", in, got)
		}
	}
}

func TestFindCircularChainContextStats(t *testing.T) {
	in := tiles([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1})

	chain, stats, err := FindCircularChainContext(context.Background(), in)
	if err != nil {
		t.Fatalf("FindCircularChainContext() error = %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}
	if stats.Placements != 2 || stats.Backtracks != 0 {
		t.Errorf("stats = %+v, want 2 placements and 0 backtracks", stats)
	}

	// Same traversal as the plain entry point.
	plain, _ := FindCircularChain(in)
	if !slices.Equal(chain, plain) {
		t.Errorf("context chain %v differs from %v", chain, plain)
	}
}

func TestFindCircularChainContextNotFound(t *testing.T) {
	in := tiles([2]int{1, 2}, [2]int{2, 1}, [2]int{5, 6}, [2]int{6, 5})

	chain, stats, err := FindCircularChainContext(context.Background(), in)
	if err != nil {
		t.Fatalf("error = %v, want nil", err)
	}
	if chain != nil {
		t.Errorf("chain = %v, want nil", chain)
	}
	if stats.Backtracks != stats.Placements {
		t.Errorf("every placement should be undone on exhaustion: %+v", stats)
	}
}

func TestFindCircularChainContextCancelledUpFront(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := FindCircularChainContext(ctx, tiles([2]int{1, 1}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// countdownCtx reports cancellation after Err has been called n times.
type countdownCtx struct {
	context.Context
	n int
}

func (c *countdownCtx) Err() error {
	if c.n <= 0 {
		return context.Canceled
	}
	c.n--
	return nil
}

func TestFindCircularChainContextCancelledMidSearch(t *testing.T) {
	// K7 on pips 0..6 has every degree even, and a separate two-tile ring makes
	// the whole set unsolvable. Exhausting every trail through K7 would take
	// far longer than the test, so only cancellation can end the search.
	var in []Domino
	for a := 0; a < 7; a++ {
		for b := a + 1; b < 7; b++ {
			in = append(in, Domino{First: a, Second: b})
		}
	}
	in = append(in, Domino{First: 20, Second: 21}, Domino{First: 21, Second: 20})

	// The first Err call is the up-front check.
	ctx := &countdownCtx{Context: context.Background(), n: 3}
	chain, stats, err := FindCircularChainContext(ctx, in)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if chain != nil {
		t.Errorf("chain = %v, want nil", chain)
	}
	if stats.Placements < 2*pollInterval {
		t.Errorf("placements = %d, want at least %d before cancellation", stats.Placements, 2*pollInterval)
	}
}
