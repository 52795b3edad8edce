// Package render draws tile sets as pip multigraphs.
//
// # Overview
//
// Every pip value becomes a node and every tile an undirected edge between
// its two pip values; a double is a self-loop. A tile set forms a circular
// chain exactly when this multigraph is connected and every node has even
// degree, so the drawing shows at a glance why a set fails: odd-degree
// nodes are filled red and separate components drift apart.
//
// When a chain is supplied the edges follow the chain and are labelled with
// their position in the ring.
//
// # Usage
//
//	dot := render.ToDOT(tiles, chain, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// For PDF or PNG output, convert the SVG:
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package render
