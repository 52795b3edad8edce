// Package io reads tile sets and reads and writes solve results.
//
// # Tile input
//
// Two input formats are accepted. Plain text holds one "a|b" record per
// line; malformed lines are skipped (see [domino.ReadTiles]). JSON holds an
// object with a "tiles" array of two-element arrays:
//
//	{"tiles": [[1, 2], [2, 3], [3, 1]]}
//
// [ImportTiles] chooses the format by file extension: ".json" is JSON,
// everything else is text. "-" reads text from standard input.
//
// # Result documents
//
// A [Document] is the JSON form of one solve:
//
//	{
//	  "source": "ring.txt",
//	  "tiles": [[1, 2], [3, 2], [1, 3]],
//	  "feasible": true,
//	  "found": true,
//	  "chain": [[1, 2], [2, 3], [3, 1]],
//	  "stats": {"placements": 2, "backtracks": 0, "duration_ms": 0}
//	}
//
// "chain" is omitted when no ring exists. Tile pairs in "chain" carry the
// orientation chosen by the search; pairs in "tiles" are as read.
//
// Use [WriteJSON] / [ReadJSON] with any io.Writer / io.Reader, or
// [ExportJSON] to write a file.
package io
