// Package cli implements the dominochain command-line interface.
//
// Commands that take tiles read "a|b" records from files or standard input
// and hand them to the solve pipeline. Commands are cobra commands and log
// through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - solve: Find a circular chain for one or more tile files
//   - check: Run only the parity filter and show pip counts
//   - render: Draw the pip graph as DOT, SVG, PNG or PDF
//   - serve: Start the HTTP API
//   - cache: Manage the result cache
//
// # Logging
//
// Logs go to stderr so solve output on stdout stays clean. --verbose (-v)
// adds debug lines for every input read and every search finished.
//
// # Example
//
//	import "github.com/matzehuels/dominochain/internal/cli"
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	err := c.RootCommand().ExecuteContext(ctx)
//	if errors.Is(err, cli.ErrReported) {
//	    os.Exit(1) // already printed per input
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Lines carry a short wall-clock stamp
// ("14:32:01.45") so batch runs show how long each step took.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a batch solve.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time, e.g.
// "Solved 3 inputs (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx. The root command does this before any
// subcommand runs, so --verbose reaches the solve pipeline.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() for commands run without the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
