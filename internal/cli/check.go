package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dominochain/pkg/domino"
	errs "github.com/matzehuels/dominochain/pkg/errors"
	"github.com/matzehuels/dominochain/pkg/observability"
)

// checkCommand creates the check command, which runs only the parity filter.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Show pip counts and whether a ring can exist",
		Long: `Check counts how often every pip value occurs without searching for a chain.

A closed chain needs every pip value to occur an even number of times and all
tiles to be linked through shared values. Check reports both conditions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			in := inputs[0]
			if len(in.tiles) == 0 {
				return errs.New(errs.ErrCodeEmptyInput, "No valid dominoes found in %s", in.source)
			}

			feasible := domino.IsFeasible(in.tiles)
			observability.Solve().OnFilterComplete(cmd.Context(), in.source, feasible)
			printCheck(cmd.OutOrStdout(), in)
			return nil
		},
	}
}

// printCheck renders the pip table and the verdict for one input.
func printCheck(w io.Writer, in input) {
	counts := domino.PipCounts(in.tiles)
	pips := slices.Sorted(maps.Keys(counts))

	rows := make([][]string, 0, len(pips))
	for _, pip := range pips {
		parity := "even"
		if counts[pip]%2 != 0 {
			parity = "odd"
		}
		rows = append(rows, []string{strconv.Itoa(pip), strconv.Itoa(counts[pip]), parity})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pip", "Count", "Parity").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(pips) && counts[pips[row]]%2 != 0 {
				return StyleError
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, StyleTitle.Render(in.source))
	fmt.Fprintln(w, t.Render())

	odd := domino.OddPips(in.tiles)
	components := domino.Components(in.tiles)

	printKeyValue(w, "Tiles", strconv.Itoa(len(in.tiles)))
	if in.skipped > 0 {
		printKeyValue(w, "Skipped", strconv.Itoa(in.skipped))
	}
	printKeyValue(w, "Odd pips", joinInts(odd))
	printKeyValue(w, "Components", strconv.Itoa(components))

	switch {
	case len(odd) > 0:
		printError(w, "No ring: %d pip values occur an odd number of times", len(odd))
	case components > 1:
		printWarning(w, "No ring: pip counts are even but the tiles form %d separate groups", components)
	default:
		printSuccess(w, "A circular chain exists")
	}
}

func joinInts(vals []int) string {
	if len(vals) == 0 {
		return "none"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
