package domino

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Separator divides the two pip values of a tile record.
const Separator = "|"

// ParseTile parses a record of the form "a|b". Whitespace around either
// number is ignored and a leading sign is allowed. It returns false if the
// record does not split into exactly two integers.
func ParseTile(record string) (Domino, bool) {
	parts := strings.Split(record, Separator)
	if len(parts) != 2 {
		return Domino{}, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Domino{}, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Domino{}, false
	}
	return Domino{First: a, Second: b}, true
}

// maxRecordLen bounds a single line. Longer lines cannot hold a tile and
// are counted as skipped without being buffered.
const maxRecordLen = 4096

// ReadTiles reads one tile record per line from r, in order.
//
// Malformed lines are skipped; skipped counts them, including lines longer
// than any tile record. Blank lines are ignored and not counted. The error
// is non-nil only if reading r fails.
func ReadTiles(r io.Reader) (tiles []Domino, skipped int, err error) {
	br := bufio.NewReaderSize(r, maxRecordLen)
	for {
		line, err := br.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			skipped++
			if err = discardLine(br); err == io.EOF {
				return tiles, skipped, nil
			} else if err != nil {
				return tiles, skipped, err
			}
			continue
		}
		if text := strings.TrimSpace(string(line)); text != "" {
			if d, ok := ParseTile(text); ok {
				tiles = append(tiles, d)
			} else {
				skipped++
			}
		}
		if err == io.EOF {
			return tiles, skipped, nil
		}
		if err != nil {
			return tiles, skipped, err
		}
	}
}

// discardLine consumes the rest of the current line.
func discardLine(br *bufio.Reader) error {
	for {
		_, err := br.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return err
		}
	}
}

// FormatTiles writes tiles in the record format read by [ReadTiles].
func FormatTiles(w io.Writer, tiles []Domino) error {
	bw := bufio.NewWriter(w)
	for _, d := range tiles {
		bw.WriteString(strconv.Itoa(d.First))
		bw.WriteString(Separator)
		bw.WriteString(strconv.Itoa(d.Second))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
