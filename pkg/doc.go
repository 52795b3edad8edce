// Package pkg provides the libraries behind dominochain.
//
// # Overview
//
// Dominochain takes a set of dominoes and either lays them out as one closed
// ring, where the touching halves of neighbouring tiles show the same pip
// value, or reports that no such ring exists. The pkg directory is organized
// into three areas:
//
//  1. [domino] - Domain logic (tiles, parity filter, backtracking search)
//  2. [cache], [config], [errors], [observability] - Infrastructure
//  3. [pipeline], [server], [render], [io] - Orchestration and outputs
//
// # Architecture
//
// The typical data flow:
//
//	"a|b" lines, JSON document or HTTP request
//	         ↓
//	    [domino] ReadTiles / [io] ImportTiles
//	         ↓
//	    [pipeline] Runner (validate → cache lookup → filter → search → cache store)
//	         ↓
//	    text line, JSON document, DOT/SVG/PNG/PDF drawing
//
// # Quick Start
//
//	import "github.com/matzehuels/dominochain/pkg/domino"
//
//	tiles := []domino.Domino{{First: 1, Second: 2}, {First: 3, Second: 2}, {First: 1, Second: 3}}
//	if chain, ok := domino.FindCircularChain(tiles); ok {
//	    fmt.Println(chain) // [1|2] [2|3] [3|1]
//	}
//
// # Main Packages
//
// [domino] - Tiles, chains, the parity Feasibility Filter, the backtracking
// Chain Builder and a chain validator. Pure and dependency free.
//
// [pipeline] - The solve pipeline shared by the CLI and the HTTP API. Adds
// input limits, timeouts, result caching, hooks and concurrent batches.
//
// [cache] - Result cache with file, Redis and MongoDB backends.
//
// [config] - TOML config file plus DOMINOCHAIN_* environment overrides.
//
// [server] - HTTP JSON API over the pipeline.
//
// [render] - Graphviz drawings of the pip multigraph.
//
// [io] - JSON result documents and tile file import.
//
// [errors] - Structured error codes shared by every entry point.
//
// [observability] - Hook interfaces for solve, cache and HTTP events.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/domino/...      # Specific package
//	go test -run Example ./pkg/...
//
// [domino]: https://pkg.go.dev/github.com/matzehuels/dominochain/pkg/domino
// [cache]: https://pkg.go.dev/github.com/matzehuels/dominochain/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/dominochain/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/dominochain/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/dominochain/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/dominochain/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/dominochain/pkg/server
// [render]: https://pkg.go.dev/github.com/matzehuels/dominochain/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/dominochain/pkg/io
package pkg
