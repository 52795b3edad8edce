package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/dominochain/pkg/domino"
)

var triangle = []domino.Domino{{First: 1, Second: 2}, {First: 3, Second: 2}, {First: 1, Second: 3}}

func TestToDOTTiles(t *testing.T) {
	dot := ToDOT(triangle, nil, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("should be an undirected graph:\n%s", dot)
	}
	for _, want := range []string{
		`"p1" [label="1"];`,
		`"p3" -- "p2" [color=gray40];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, oddFill) {
		t.Error("even pips should not be highlighted")
	}
	if got := strings.Count(dot, " -- "); got != 3 {
		t.Errorf("got %d edges, want 3", got)
	}
}

func TestToDOTChain(t *testing.T) {
	chain, ok := domino.FindCircularChain(triangle)
	if !ok {
		t.Fatal("triangle should form a ring")
	}
	dot := ToDOT(triangle, chain, Options{Title: "ring"})

	for _, want := range []string{
		`label="ring";`,
		`"p1" -- "p2" [label="1", color=steelblue, penwidth=2];`,
		`"p2" -- "p3" [label="2", color=steelblue, penwidth=2];`,
		`"p3" -- "p1" [label="3", color=steelblue, penwidth=2];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTOddAndDetailed(t *testing.T) {
	tiles := []domino.Domino{{First: 1, Second: 2}, {First: -1, Second: -1}}
	dot := ToDOT(tiles, nil, Options{Detailed: true})

	if !strings.Contains(dot, `"p1" [label="1\n×1", fillcolor=lightcoral];`) {
		t.Errorf("odd pip should be highlighted with count:\n%s", dot)
	}
	if !strings.Contains(dot, `"p-1" -- "p-1"`) {
		t.Errorf("double should be a self-loop:\n%s", dot)
	}
	if strings.Contains(dot, `"p-1" [label="-1\n×2", fillcolor`) {
		t.Errorf("even pip should not be filled:\n%s", dot)
	}
}

func TestRenderDOTFormat(t *testing.T) {
	out, err := Render(context.Background(), triangle, nil, FormatDOT, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != ToDOT(triangle, nil, Options{}) {
		t.Error("dot format should return ToDOT output")
	}

	if _, err := Render(context.Background(), triangle, nil, "gif", Options{}); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() =\n%s\nwant\n%s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
