package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/dominochain/pkg/errors"
	pkgio "github.com/matzehuels/dominochain/pkg/io"
	"github.com/matzehuels/dominochain/pkg/pipeline"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// ErrReported marks a failure whose details were already printed.
// main exits non-zero without printing it again.
var ErrReported = errors.New("errors reported")

// solveFlags holds the command-line flags for the solve command.
type solveFlags struct {
	format      string        // output format: "text" or "json"
	output      string        // output file (stdout when empty)
	timeout     time.Duration // per-input search timeout, overrides config
	noCache     bool          // bypass the result cache entirely
	refresh     bool          // ignore cached results but store fresh ones
	skipFilter  bool          // search even when pip counts are odd
	interactive bool          // open the ring viewer
	stats       bool          // print search statistics under each result
	jobs        int           // inputs solved concurrently, overrides config
}

func (f solveFlags) timeoutOr(d time.Duration) time.Duration {
	if f.timeout > 0 {
		return f.timeout
	}
	return d
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve [file...]",
		Short: "Find a circular domino chain",
		Long: `Solve reads one "a|b" tile per line and prints a closed chain that uses
every tile once, or reports that none exists. Lines that are not two integers
separated by "|" are skipped. Files ending in .json are read as
{"tiles": [[a, b], ...]} documents.

With no file, or "-", tiles are read from standard input. Several files are
solved concurrently. --interactive needs a single tile file because the
viewer reads keys from standard input.`,
		Example: `  dominochain solve tiles.txt
  printf '1|2\n2|3\n3|1\n' | dominochain solve
  dominochain solve --format json -o ring.json tiles.txt
  dominochain solve -i tiles.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), cmd, args, f)
		},
	}

	cmd.Flags().StringVar(&f.format, "format", formatText, "output format: text, json")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write output to file")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "search timeout per input (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&f.skipFilter, "skip-filter", false, "search even when the parity check fails")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "browse the ring in a terminal viewer")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print search statistics")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "inputs solved concurrently (default from config)")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, cmd *cobra.Command, args []string, f solveFlags) error {
	logger := loggerFromContext(ctx)

	if err := errs.ValidateFormat(f.format, formatText, formatJSON); err != nil {
		return err
	}
	if f.interactive {
		if len(args) > 1 {
			return errs.New(errs.ErrCodeInvalidInput, "--interactive takes a single input")
		}
		// The viewer reads keys from standard input, so tiles must come from a file.
		if len(args) == 0 || args[0] == stdinSource {
			return errs.New(errs.ErrCodeInvalidInput, "--interactive needs a tile file; standard input is used for keys")
		}
	}

	inputs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	opts := make([]pipeline.Options, len(inputs))
	sources := make([]string, len(inputs))
	for i, in := range inputs {
		sources[i] = in.source
		logger.Debug("read", "source", in.source, "tiles", len(in.tiles), "skipped", in.skipped)
		opts[i] = c.options(in, f)
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	jobs := f.jobs
	if jobs <= 0 {
		jobs = c.Config.Solve.Jobs
	}

	var spinner *Spinner
	if isTerminal(cmd.ErrOrStderr()) && !f.interactive {
		spinner = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), searchMessage(len(inputs)))
		spinner.Start()
	}
	prog := newProgress(logger)
	outcomes, err := runner.SolveAll(ctx, opts, jobs)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if len(outcomes) > 1 {
		prog.done(fmt.Sprintf("Solved %d inputs", len(outcomes)))
	}

	if f.interactive {
		return c.viewOutcome(cmd, outcomes[0])
	}

	switch f.format {
	case formatJSON:
		return writeDocuments(cmd, sources, outcomes, f.output)
	default:
		return writeText(cmd, sources, outcomes, f)
	}
}

// writeText prints one line per input, prefixed with its source when there
// are several. Failed inputs print "Error: <message>" in place of a result.
func writeText(cmd *cobra.Command, sources []string, outcomes []outcome, f solveFlags) error {
	w, closeFn, err := openOutput(cmd.OutOrStdout(), f.output)
	if err != nil {
		return err
	}

	failed := 0
	for i, o := range outcomes {
		prefix := ""
		if len(outcomes) > 1 {
			prefix = sources[i] + ": "
		}
		if o.Err != nil {
			failed++
			fmt.Fprintf(w, "%sError: %s\n", prefix, errs.UserMessage(o.Err))
			continue
		}
		fmt.Fprintln(w, prefix+o.Result.Message())
		if f.stats {
			printStats(w, o.Result)
		}
	}

	if err := closeFn(); err != nil {
		return err
	}
	if f.output != "" {
		printFile(cmd.OutOrStdout(), f.output)
	}
	return batchError(failed, len(outcomes))
}

// writeDocuments writes one JSON document per solved input. Errors go to
// stderr so standard output stays valid JSON.
func writeDocuments(cmd *cobra.Command, sources []string, outcomes []outcome, output string) error {
	failed := 0
	var docs []pkgio.Document
	for i, o := range outcomes {
		if o.Err != nil {
			failed++
			printError(cmd.ErrOrStderr(), "%s: %s", sources[i], errs.UserMessage(o.Err))
			continue
		}
		docs = append(docs, o.Result.Document())
	}

	if output != "" && len(docs) == 1 {
		if err := pkgio.ExportJSON(docs[0], output); err != nil {
			return err
		}
		printFile(cmd.OutOrStdout(), output)
		return batchError(failed, len(outcomes))
	}

	w, closeFn, err := openOutput(cmd.OutOrStdout(), output)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := pkgio.WriteJSON(doc, w); err != nil {
			_ = closeFn()
			return err
		}
	}
	if err := closeFn(); err != nil {
		return err
	}
	if output != "" {
		printFile(cmd.OutOrStdout(), output)
	}
	return batchError(failed, len(outcomes))
}

// outcome is one input of a batch solve.
type outcome = pipeline.Outcome

func batchError(failed, total int) error {
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d inputs failed: %w", failed, total, ErrReported)
}

// openOutput returns w, or a created file when path is set.
func openOutput(w io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
