package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dominochain/pkg/domino"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Formats lists every supported output format.
var Formats = []string{FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// Options configures multigraph rendering.
type Options struct {
	// Detailed adds the pip count to every node label.
	Detailed bool

	// Title is drawn above the graph when set.
	Title string
}

const (
	ringColor = "steelblue"
	tileColor = "gray40"
	oddFill   = "lightcoral"
)

// ToDOT converts tiles to Graphviz DOT source for an undirected multigraph.
//
// When chain is non-empty its tiles are drawn as edges labelled 1..n in ring
// order; otherwise the input tiles are drawn in input order. Nodes whose pip
// value occurs an odd number of times are filled red.
func ToDOT(tiles []domino.Domino, chain domino.Chain, opts Options) string {
	counts := domino.PipCounts(tiles)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=20];\n")
	buf.WriteString("  edge [fontsize=14];\n")
	buf.WriteString("\n")

	for _, pip := range slices.Sorted(maps.Keys(counts)) {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(pip, counts[pip], opts.Detailed))}
		if counts[pip]%2 != 0 {
			attrs = append(attrs, "fillcolor="+oddFill)
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(pip), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	if len(chain) > 0 {
		for i, d := range chain {
			fmt.Fprintf(&buf, "  %s -- %s [label=\"%d\", color=%s, penwidth=2];\n",
				nodeID(d.First), nodeID(d.Second), i+1, ringColor)
		}
	} else {
		for _, d := range tiles {
			fmt.Fprintf(&buf, "  %s -- %s [color=%s];\n", nodeID(d.First), nodeID(d.Second), tileColor)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID quotes pip values so negative numbers stay valid DOT identifiers.
func nodeID(pip int) string {
	return strconv.Quote("p" + strconv.Itoa(pip))
}

func nodeLabel(pip, count int, detailed bool) string {
	if !detailed {
		return strconv.Itoa(pip)
	}
	return fmt.Sprintf("%d\n×%d", pip, count)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Render produces tiles and chain in the given format.
func Render(ctx context.Context, tiles []domino.Domino, chain domino.Chain, format string, opts Options) ([]byte, error) {
	dot := ToDOT(tiles, chain, opts)
	if format == FormatDOT {
		return []byte(dot), nil
	}
	if !slices.Contains(Formats, format) {
		return nil, fmt.Errorf("unsupported format: %q", format)
	}

	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatPNG:
		return ToPNG(ctx, svg, 2.0)
	case FormatPDF:
		return ToPDF(ctx, svg)
	default:
		return svg, nil
	}
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root tag with one sized from its
// viewBox, dropping the pt units Graphviz emits.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
