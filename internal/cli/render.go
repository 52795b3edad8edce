package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/dominochain/pkg/errors"
	"github.com/matzehuels/dominochain/pkg/pipeline"
	"github.com/matzehuels/dominochain/pkg/render"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	format     string // output format: dot, svg, png, pdf
	output     string // output file path (stdout when empty, text formats only)
	detailed   bool   // add pip counts to node labels
	title      string // graph title (defaults to the input name)
	noCache    bool   // disable the result cache
	skipFilter bool   // search even when the parity check fails
}

// renderCommand creates the render command for drawing the pip graph.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the pip graph with the ring highlighted",
		Long: `Render draws every pip value as a node and every tile as an edge between
its two values. When a ring exists its tiles are numbered in chain order.
Pip values that occur an odd number of times are filled red.

DOT and SVG are written to standard output unless -o is given. PNG and PDF
need -o and the rsvg-convert tool from librsvg.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  dominochain render tiles.txt > ring.dot
  dominochain render --format svg -o ring.svg tiles.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.format, "format", "f", render.FormatDOT, "output format: dot, svg, png, pdf")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show pip counts on nodes")
	cmd.Flags().StringVar(&f.title, "title", "", "graph title (default: input name)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.skipFilter, "skip-filter", false, "search even when the parity check fails")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, args []string, f renderFlags) error {
	logger := loggerFromContext(ctx)

	if err := errs.ValidateFormat(f.format, render.Formats...); err != nil {
		return err
	}
	binary := f.format == render.FormatPNG || f.format == render.FormatPDF
	if binary && f.output == "" {
		return errs.New(errs.ErrCodeInvalidInput, "%s output needs a file, use -o", f.format)
	}

	inputs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	opts := c.options(inputs[0], solveFlags{skipFilter: f.skipFilter})

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Solve(ctx, opts)
	if err != nil {
		return err
	}
	logger.Debug("solved", "source", result.Source, "found", result.Found, "cached", result.CacheHit)

	title := f.title
	if title == "" && result.Source != pipeline.DefaultSource {
		title = result.Source
	}

	prog := newProgress(logger)
	data, err := render.Render(ctx, result.Tiles, result.Chain, f.format, render.Options{
		Detailed: f.detailed,
		Title:    title,
	})
	if err != nil {
		return err
	}

	if f.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(f.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.output, err)
	}
	prog.done("Rendered " + f.format)
	if !result.Found {
		printWarning(cmd.OutOrStdout(), "%s", result.Message())
	}
	printFile(cmd.OutOrStdout(), f.output)
	return nil
}
