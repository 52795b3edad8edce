package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dominochain/pkg/cache"
	"github.com/matzehuels/dominochain/pkg/domino"
	errs "github.com/matzehuels/dominochain/pkg/errors"
	pkgio "github.com/matzehuels/dominochain/pkg/io"
	"github.com/matzehuels/dominochain/pkg/observability"
)

// cacheKeyType labels chain entries in cache hooks.
const cacheKeyType = "chain"

// Runner encapsulates solving with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long results stay cached. Zero means cache.TTLChain.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Solve runs the filter and the search over opts.Tiles.
//
// No ring is a normal result with Found == false. Errors are reserved for
// invalid options (ErrCodeEmptyInput, ErrCodeTooManyTiles), a search that
// outlived opts.Timeout (ErrCodeTimeout) or a cancelled ctx (ErrCodeCanceled).
func (r *Runner) Solve(ctx context.Context, opts Options) (*Result, error) {
	result, _, err := r.SolveWithCacheInfo(ctx, opts)
	return result, err
}

// SolveWithCacheInfo is [Runner.Solve] that also reports whether the result
// came from the cache.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, opts Options) (*Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	logger := opts.Logger.With("source", opts.Source)
	start := time.Now()

	cacheKey, err := r.chainKey(opts)
	if err != nil {
		return nil, false, errs.Wrap(errs.ErrCodeInternal, err, "build cache key")
	}

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, cacheKey, logger); ok {
			cached.Source = opts.Source
			cached.Skipped = opts.Skipped
			cached.CacheHit = true
			cached.Stats.Total = time.Since(start)
			logger.Debug("cache hit", "found", cached.Found)
			r.emitComplete(ctx, cached, nil)
			return cached, true, nil
		}
	}

	result, err := r.run(ctx, opts, logger)
	if err != nil {
		return nil, false, err
	}
	result.Stats.Total = time.Since(start)

	r.store(ctx, cacheKey, result, logger)
	return result, false, nil
}

// run executes the filter and search stages without touching the cache.
func (r *Runner) run(ctx context.Context, opts Options, logger *log.Logger) (*Result, error) {
	hooks := observability.Solve()
	result := &Result{
		Source:  opts.Source,
		Tiles:   opts.Tiles,
		Skipped: opts.Skipped,
	}
	if opts.Skipped > 0 {
		logger.Debug("skipped malformed records", "count", opts.Skipped)
	}

	filterStart := time.Now()
	result.Feasible = domino.IsFeasible(opts.Tiles)
	result.Stats.FilterTime = time.Since(filterStart)
	hooks.OnFilterComplete(ctx, opts.Source, result.Feasible)

	if !result.Feasible && !opts.SkipFilter {
		logger.Debug("rejected by parity filter", "odd_pips", domino.OddPips(opts.Tiles))
		r.emitComplete(ctx, result, nil)
		return result, nil
	}

	searchCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	hooks.OnSolveStart(ctx, opts.Source, len(opts.Tiles))
	searchStart := time.Now()
	chain, stats, err := domino.FindCircularChainContext(searchCtx, opts.Tiles)
	result.Stats.SearchTime = time.Since(searchStart)
	result.Search = stats

	if err != nil {
		err = searchError(err, opts)
		r.emitComplete(ctx, result, err)
		return nil, err
	}

	result.Chain = chain
	result.Found = chain != nil
	logger.Debug("search finished",
		"tiles", len(opts.Tiles),
		"found", result.Found,
		"placements", stats.Placements,
		"backtracks", stats.Backtracks,
		"duration", result.Stats.SearchTime)

	r.emitComplete(ctx, result, nil)
	return result, nil
}

// searchError maps a context error from the search to a coded error.
func searchError(err error, opts Options) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.ErrCodeTimeout, err, "search of %s exceeded %s", opts.Source, opts.Timeout)
	}
	return errs.Wrap(errs.ErrCodeCanceled, err, "search of %s cancelled", opts.Source)
}

// chainKey derives the cache key from the tile sequence in record form.
func (r *Runner) chainKey(opts Options) (string, error) {
	var buf bytes.Buffer
	if err := domino.FormatTiles(&buf, opts.Tiles); err != nil {
		return "", err
	}
	return r.Keyer.ChainKey(cache.Hash(buf.Bytes()), opts.KeyOpts()), nil
}

// lookup reads a cached result. Undecodable or inconsistent entries are misses.
func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (*Result, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}

	doc, err := pkgio.ReadJSON(bytes.NewReader(data))
	if err == nil {
		var result *Result
		if result, err = resultFromDocument(doc); err == nil {
			hooks.OnCacheHit(ctx, cacheKeyType)
			return result, true
		}
	}
	logger.Debug("discarding cache entry", "error", err)
	hooks.OnCacheMiss(ctx, cacheKeyType)
	return nil, false
}

// store writes result to the cache. Failures are logged, never returned.
func (r *Runner) store(ctx context.Context, key string, result *Result, logger *log.Logger) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(result.Document(), &buf); err != nil {
		logger.Warn("encode cache entry", "error", err)
		return
	}
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLChain
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), ttl); err != nil {
		logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, buf.Len())
}

func (r *Runner) emitComplete(ctx context.Context, result *Result, err error) {
	observability.Solve().OnSolveComplete(ctx, observability.SolveEvent{
		Source:     result.Source,
		Tiles:      len(result.Tiles),
		Feasible:   result.Feasible,
		Found:      result.Found,
		CacheHit:   result.CacheHit,
		Placements: result.Search.Placements,
		Backtracks: result.Search.Backtracks,
	}, result.Stats.FilterTime+result.Stats.SearchTime, err)
}

// Outcome is the result of one input in a batch.
type Outcome struct {
	Result *Result
	Err    error
}

// SolveAll solves each option set, at most jobs at a time.
//
// Outcomes are returned in the order of opts. A failed input does not stop
// the others; its error is recorded in its Outcome. Cancelling ctx stops the
// batch and is returned as the error. A jobs value of zero or less means
// DefaultJobs.
func (r *Runner) SolveAll(ctx context.Context, opts []Options, jobs int) ([]Outcome, error) {
	if jobs <= 0 {
		jobs = DefaultJobs
	}
	outcomes := make([]Outcome, len(opts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, o := range opts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i].Err = err
				return err
			}
			res, err := r.Solve(gctx, o)
			outcomes[i] = Outcome{Result: res, Err: err}
			if errs.Is(err, errs.ErrCodeCanceled) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, fmt.Errorf("batch: %w", err)
	}
	return outcomes, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
