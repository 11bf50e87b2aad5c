// Package text loads charts typed as plain text, one line per row, top row
// first:
//
//	; cable panel
//	..XX..
//	.XXXX.
//	..XX..
//
// X, x, #, p, P and 1 mark purl stitches; every other character is knit.
// Lines shorter than the widest line are padded with knit stitches. Blank
// lines and lines starting with ';' are skipped.
package text

import (
	"bufio"
	"context"
	"io"
	"strings"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/source"
)

// PurlMarkers lists the characters read as purl stitches.
const PurlMarkers = "Xx#pP1"

// Loader reads text charts.
type Loader struct{}

// New returns a text loader.
func New() *Loader { return &Loader{} }

func (*Loader) Name() string                  { return "text" }
func (*Loader) Supports(filename string) bool { return source.HasExt(filename, ".txt", ".chart") }

// Load reads the chart lines. Options are accepted for interface
// compatibility; text charts carry no colors.
func (l *Loader) Load(ctx context.Context, r io.Reader, _ source.Options) (*pattern.Chart, error) {
	var lines [][]rune
	width := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ";") {
			continue
		}
		runes := []rune(line)
		width = max(width, len(runes))
		lines = append(lines, runes)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read text chart")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := pattern.CheckSize(width, len(lines)); err != nil {
		return nil, err
	}
	c := pattern.NewChart(width, len(lines))
	for row, runes := range lines {
		for col, ch := range runes {
			c.Grid[row][col] = IsPurl(ch)
		}
	}
	return c, nil
}

// IsPurl reports whether ch marks a purl stitch.
func IsPurl(ch rune) bool {
	return strings.ContainsRune(PurlMarkers, ch)
}

// Format writes a chart in the text format using X for purl and . for knit.
func Format(c *pattern.Chart) string {
	var b strings.Builder
	for _, row := range c.Grid {
		for _, cell := range row {
			if cell {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
