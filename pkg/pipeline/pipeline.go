// Package pipeline provides the solve pipeline shared by the CLI and the API.
//
// A solve runs two stages over one tile set:
//
//  1. Filter: the parity check from [domino.IsFeasible]. A tile set with an
//     odd pip count is rejected without searching.
//  2. Search: the backtracking search from [domino.FindCircularChainContext].
//
// Results are cached by the [Runner] under a key derived from the tile
// sequence, so repeated solves of the same input return immediately.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Solve(ctx, pipeline.Options{
//	    Source: "ring.txt",
//	    Tiles:  tiles,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Message())
//
// A result with Found == false is a normal outcome, not an error.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dominochain/pkg/cache"
	"github.com/matzehuels/dominochain/pkg/domino"
	errs "github.com/matzehuels/dominochain/pkg/errors"
	pkgio "github.com/matzehuels/dominochain/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSource names input that came without a file name.
	DefaultSource = "<stdin>"

	// DefaultMaxTiles is the largest tile set accepted unless overridden.
	DefaultMaxTiles = errs.DefaultMaxTiles

	// DefaultJobs is how many inputs SolveAll searches at once.
	DefaultJobs = 4
)

// SuccessPrefix precedes the rendered chain in [Result.Message].
const SuccessPrefix = "Circular domino chain: "

// =============================================================================
// Options - Solve Configuration
// =============================================================================

// Options configures one solve.
type Options struct {
	// Source names the input in logs, messages and cache entries.
	Source string `json:"source,omitempty"`

	// Tiles is the tile sequence to search, in input order.
	Tiles []domino.Domino `json:"-"`

	// Skipped is the number of malformed input records dropped by the reader.
	// It is reported, never validated.
	Skipped int `json:"-"`

	// SkipFilter runs the search even when the parity check fails.
	SkipFilter bool `json:"skip_filter,omitempty"`

	// MaxTiles bounds len(Tiles). Zero means DefaultMaxTiles; negative disables the bound.
	MaxTiles int `json:"max_tiles,omitempty"`

	// Timeout bounds the search. Zero means no timeout.
	Timeout time.Duration `json:"-"`

	// Refresh bypasses cache reads; the fresh result is still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the tile set and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if err := errs.ValidateSourceName(o.Source); err != nil {
		return err
	}
	if o.MaxTiles == 0 {
		o.MaxTiles = DefaultMaxTiles
	}
	if err := errs.ValidateTileCount(len(o.Tiles), o.MaxTiles); err != nil {
		if errs.Is(err, errs.ErrCodeEmptyInput) {
			return errs.New(errs.ErrCodeEmptyInput, "No valid dominoes found in %s", o.Source)
		}
		return err
	}
	if o.Timeout < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "timeout cannot be negative: %s", o.Timeout)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// KeyOpts returns cache key options for this solve.
func (o *Options) KeyOpts() cache.ChainKeyOpts {
	return cache.ChainKeyOpts{SkipFilter: o.SkipFilter}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outcome of one solve.
type Result struct {
	// Source is the input name from Options.
	Source string

	// Tiles is the searched tile sequence as read.
	Tiles []domino.Domino

	// Feasible reports whether every pip value occurs an even number of times.
	Feasible bool

	// Found reports whether a closed ring was built.
	Found bool

	// Chain is the ring when Found is true, nil otherwise.
	Chain domino.Chain

	// Search is the work done by the backtracking search.
	// It is zero when the filter rejected the input.
	Search domino.Stats

	// Stats contains timing information.
	Stats Stats

	// CacheHit is true when the result came from the cache.
	CacheHit bool

	// Skipped is the number of malformed records dropped from the input.
	Skipped int
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FilterTime time.Duration
	SearchTime time.Duration
	Total      time.Duration
}

// Message returns the one-line text output for the result.
func (r *Result) Message() string {
	if !r.Found {
		return domino.ImpossibleMessage
	}
	return SuccessPrefix + r.Chain.String()
}

// Document converts the result to its JSON document form.
func (r *Result) Document() pkgio.Document {
	doc := pkgio.Document{
		Source:   r.Source,
		Tiles:    pkgio.Pairs(r.Tiles),
		Feasible: r.Feasible,
		Found:    r.Found,
		Stats: &pkgio.Stats{
			Placements: r.Search.Placements,
			Backtracks: r.Search.Backtracks,
			DurationMS: r.Stats.Total.Milliseconds(),
			CacheHit:   r.CacheHit,
			Skipped:    r.Skipped,
		},
	}
	if r.Found {
		doc.Chain = pkgio.Pairs(r.Chain)
	}
	return doc
}

// resultFromDocument restores a cached result.
func resultFromDocument(doc pkgio.Document) (*Result, error) {
	r := &Result{
		Source:   doc.Source,
		Tiles:    pkgio.Dominoes(doc.Tiles),
		Feasible: doc.Feasible,
		Found:    doc.Found,
	}
	if doc.Stats != nil {
		r.Search = domino.Stats{
			Placements: doc.Stats.Placements,
			Backtracks: doc.Stats.Backtracks,
		}
	}
	if doc.Found {
		r.Chain = domino.Chain(pkgio.Dominoes(doc.Chain))
		if err := domino.Validate(r.Tiles, r.Chain); err != nil {
			return nil, fmt.Errorf("cached chain: %w", err)
		}
	}
	return r, nil
}
