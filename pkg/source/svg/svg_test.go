package svg

import (
	"context"
	"strings"
	"testing"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/source"
)

func load(t *testing.T, doc string, opts source.Options) *pattern.Chart {
	t.Helper()
	c, err := New().Load(context.Background(), strings.NewReader(doc), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

// rows renders a chart as X/. strings for compact comparisons.
func rows(c *pattern.Chart) []string {
	out := make([]string, len(c.Grid))
	for r, row := range c.Grid {
		var b strings.Builder
		for _, cell := range row {
			if cell {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
		out[r] = b.String()
	}
	return out
}

func assertRows(t *testing.T, c *pattern.Chart, want ...string) {
	t.Helper()
	got := rows(c)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestLoad(t *testing.T) {
	doc := `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="5" height="2">
  <rect x="0" y="0" width="1" height="1" fill="#383838"/>
  <rect x="1" y="0" width="1" height="1" fill="#383838"/>
  <rect x="2" y="0" width="1" height="1" fill="#383838"/>
  <rect x="3" y="0" width="1" height="1" fill="#ffffff"/>
  <rect x="4" y="1" width="1" height="1" fill="#383838"/>
</svg>`
	c := load(t, doc, source.DefaultOptions())

	if c.Width != 5 || c.Height != 2 {
		t.Fatalf("size = %dx%d, want 5x2", c.Width, c.Height)
	}
	assertRows(t, c, "XXX..", "....X")

	enc, err := pattern.NewEncoderFromChart(c)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := enc.EncodeRow(2); got != "p3, k2" {
		t.Errorf("row 2 = %q, want %q", got, "p3, k2")
	}
	if got, _ := enc.EncodeRow(1); got != "p1, k4" {
		t.Errorf("row 1 = %q, want %q", got, "p1, k4")
	}
}

func TestLoadLenientEntries(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" width="3" height="2">
  <g>
    <rect x="0.9" y="0.2" fill="#383838"/>
    <rect x="7" y="0" fill="#383838"/>
    <rect x="-1" y="1" fill="#383838"/>
    <rect x="abc" y="1" fill="#383838"/>
    <rect x="1" y="1" fill="#ff0000"/>
    <rect x="2" y="1" style="stroke:none; fill: #383838"/>
    <rect y="1" fill="#383838" width="0"/>
  </g>
</svg>`
	c := load(t, doc, source.DefaultOptions())
	assertRows(t, c, "X..", "X.X")
}

func TestLoadColorMatching(t *testing.T) {
	doc := `<svg width="3" height="1">
  <rect x="0" y="0" fill="#383838"/>
  <rect x="1" y="0" fill="#383838"/>
  <rect x="2" y="0" fill="#000"/>
</svg>`

	t.Run("default purl", func(t *testing.T) {
		assertRows(t, load(t, doc, source.DefaultOptions()), "XX.")
	})

	t.Run("case insensitive", func(t *testing.T) {
		opts := source.DefaultOptions()
		opts.Palette.Purl = "#ABCDEF"
		c := load(t, strings.ReplaceAll(doc, "#383838", "#abcdef"), opts)
		assertRows(t, c, "XX.")
	})

	t.Run("custom purl short form", func(t *testing.T) {
		opts := source.DefaultOptions()
		opts.Palette.Purl = "#000000"
		c := load(t, doc, opts)
		assertRows(t, c, "..X")
	})
}

func TestLoadLaterRectsWin(t *testing.T) {
	doc := `<svg width="2" height="1">
  <rect x="0" y="0" fill="#383838"/>
  <rect x="0" y="0" fill="#ffffff"/>
  <rect x="1" y="0" fill="#ffffff"/>
  <rect x="1" y="0" fill="#383838"/>
</svg>`
	assertRows(t, load(t, doc, source.DefaultOptions()), ".X")
}

func TestLoadBlockRects(t *testing.T) {
	doc := `<svg width="4px" height="3px">
  <rect x="1" y="0" width="2" height="2" fill="#383838"/>
  <rect x="3" y="2" width="5" height="5" fill="#383838"/>
</svg>`
	c := load(t, doc, source.DefaultOptions())
	assertRows(t, c, ".XX.", ".XX.", "...X")
}

func TestLoadMissingDimensions(t *testing.T) {
	c := load(t, `<svg><rect x="0" y="0" fill="#383838"/></svg>`, source.DefaultOptions())
	if c.Width != 0 || c.Height != 0 {
		t.Errorf("size = %dx%d, want 0x0", c.Width, c.Height)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", "this is not a chart"},
		{"truncated", `<svg width="2" height="2"><rect`},
		{"no svg root", `<html><body/></html>`},
		{"bad width", `<svg width="wide" height="2"/>`},
		{"negative height", `<svg width="2" height="-2"/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Load(context.Background(), strings.NewReader(tt.doc), source.DefaultOptions())
			if !errs.Is(err, errs.ErrCodeInvalidFormat) {
				t.Errorf("Load() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestLoadRejectsHugeCharts(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"square", `<svg width="20000" height="20000"></svg>`},
		{"wide", `<svg width="5000000" height="1"></svg>`},
		{"tall zero width", `<svg width="0" height="9999999"></svg>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Load(context.Background(), strings.NewReader(tt.doc), source.DefaultOptions())
			if !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want INVALID_INPUT", err)
			}
		})
	}

	// Sizes beyond int32 are unreadable rather than merely too large.
	_, err := New().Load(context.Background(), strings.NewReader(`<svg width="1e30" height="1"></svg>`), source.DefaultOptions())
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Load(1e30) error = %v, want INVALID_FORMAT", err)
	}

	// The largest allowed square still loads.
	doc := `<svg width="2048" height="2048"></svg>`
	if _, err := New().Load(context.Background(), strings.NewReader(doc), source.DefaultOptions()); err != nil {
		t.Errorf("Load(2048x2048) error = %v", err)
	}
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Load(ctx, strings.NewReader(`<svg width="1" height="1"/>`), source.DefaultOptions())
	if err != context.Canceled {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
