package funtext

import (
	"testing"
	"unicode/utf8"
)

// measureTen gives every rune an advance of 10.
func measureTen(s, _ string) float64 {
	return float64(utf8.RuneCountInString(s)) * 10
}

type placed struct {
	text string
	x, y float64
	unit bool
}

func summarize(ps []placement) []placed {
	out := make([]placed, len(ps))
	for i, p := range ps {
		out[i] = placed{text: p.text, x: p.x, y: p.y, unit: p.unit != nil}
	}
	return out
}

func assertPlacements(t *testing.T, got []placement, want []placed) {
	t.Helper()
	sum := summarize(got)
	if len(sum) != len(want) {
		t.Fatalf("placements = %+v, want %+v", sum, want)
	}
	for i := range want {
		if sum[i] != want[i] {
			t.Errorf("placement %d = %+v, want %+v", i, sum[i], want[i])
		}
	}
}

func TestLayoutBlocksBreakLines(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text"><p>ab</p><p>c d</p></div>`)
	initEngine(t, doc, DefaultConfig())

	got := layoutDocument(doc.Root(), 0, 0, 0, 10, measureTen)
	assertPlacements(t, got, []placed{
		{"a", 0, 0, true},
		{"b", 10, 0, true},
		{"c", 0, 10, true},
		{" ", 10, 10, false},
		{"d", 20, 10, true},
	})
}

func TestLayoutWrapsAtWidth(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text">abcd</div>`)
	initEngine(t, doc, DefaultConfig())

	got := layoutDocument(doc.Root(), 5, 5, 25, 10, measureTen)
	assertPlacements(t, got, []placed{
		{"a", 5, 5, true},
		{"b", 15, 5, true},
		{"c", 5, 15, true},
		{"d", 15, 15, true},
	})
}

func TestLayoutCollapsesWhitespaceAndBreaks(t *testing.T) {
	doc := mustParse(t, "<p>\n  x<br>y</p>")
	got := layoutDocument(doc.Root(), 0, 0, 0, 10, measureTen)
	assertPlacements(t, got, []placed{
		{"x", 0, 0, false},
		{"y", 0, 10, false},
	})
}

func TestLayoutCarriesFontFamily(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontFamily = "Comic Neue"
	doc := mustParse(t, `<div class="fun-text">a</div><p>b</p>`)
	initEngine(t, doc, cfg)

	got := layoutDocument(doc.Root(), 0, 0, 0, 10, measureTen)
	if len(got) != 2 {
		t.Fatalf("placements = %d, want 2", len(got))
	}
	if got[0].family != "Comic Neue" || got[1].family != "" {
		t.Errorf("families = %q, %q", got[0].family, got[1].family)
	}
}
