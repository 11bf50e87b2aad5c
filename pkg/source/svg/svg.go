// Package svg loads charts drawn as SVG grids.
//
// The root element's width and height give the chart size in cells. Every
// <rect> is one cell (or a block of cells when its own width and height are
// larger than one) at its x and y position; a rect filled with the palette's
// purl color is a purl stitch and any other fill is a knit stitch. Later
// rects paint over earlier ones.
//
//	<svg xmlns="http://www.w3.org/2000/svg" width="3" height="2">
//	  <rect x="0" y="0" width="1" height="1" fill="#383838"/>
//	  <rect x="2" y="1" width="1" height="1" fill="#ffffff"/>
//	</svg>
package svg

import (
	"context"
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"strings"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/source"
)

// Loader reads SVG charts.
type Loader struct{}

// New returns an SVG loader.
func New() *Loader { return &Loader{} }

func (*Loader) Name() string                  { return "svg" }
func (*Loader) Supports(filename string) bool { return source.HasExt(filename, ".svg") }

// Load decodes an SVG document. Rects with unparseable coordinates are
// skipped and cells outside the declared size are ignored.
func (l *Loader) Load(ctx context.Context, r io.Reader, opts source.Options) (*pattern.Chart, error) {
	opts.SetDefaults()
	purl := source.NormalizeHex(opts.Palette.Purl)

	dec := xml.NewDecoder(r)
	var chart *pattern.Chart
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode svg")
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "svg":
			if chart != nil {
				continue // nested <svg>; the outermost one sets the size
			}
			width, height, err := dimensions(start)
			if err != nil {
				return nil, err
			}
			chart = pattern.NewChart(width, height)
		case "rect":
			if chart == nil {
				return nil, errs.New(errs.ErrCodeInvalidFormat, "rect outside of an <svg> element")
			}
			paint(chart, start, purl)
		}
	}

	if chart == nil {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "no <svg> root element")
	}
	return chart, nil
}

// dimensions reads the chart size from the root element. A missing
// attribute is zero.
func dimensions(el xml.StartElement) (width, height int, err error) {
	if width, err = intAttr(el, "width", 0); err != nil {
		return 0, 0, errs.Wrap(errs.ErrCodeInvalidFormat, err, "invalid svg width")
	}
	if height, err = intAttr(el, "height", 0); err != nil {
		return 0, 0, errs.Wrap(errs.ErrCodeInvalidFormat, err, "invalid svg height")
	}
	if width < 0 || height < 0 {
		return 0, 0, errs.New(errs.ErrCodeInvalidFormat, "negative svg size %dx%d", width, height)
	}
	if err := pattern.CheckSize(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// paint applies one rect to the chart.
func paint(c *pattern.Chart, el xml.StartElement, purl string) {
	x, err := intAttr(el, "x", 0)
	if err != nil {
		return
	}
	y, err := intAttr(el, "y", 0)
	if err != nil {
		return
	}
	w, err := intAttr(el, "width", 1)
	if err != nil || w < 1 {
		w = 1
	}
	h, err := intAttr(el, "height", 1)
	if err != nil || h < 1 {
		h = 1
	}

	isPurl := source.NormalizeHex(fill(el)) == purl
	for row := max(y, 0); row < y+h && row < c.Height; row++ {
		for col := max(x, 0); col < x+w && col < c.Width; col++ {
			c.Set(row, col, isPurl)
		}
	}
}

// fill returns the rect's fill color from the fill attribute or, failing
// that, from an inline style declaration.
func fill(el xml.StartElement) string {
	if v, ok := attr(el, "fill"); ok {
		return v
	}
	style, _ := attr(el, "style")
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(prop) == "fill" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

func attr(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// intAttr parses a numeric attribute, truncating fractions and dropping a
// "px" unit.
func intAttr(el xml.StartElement, name string, def int) (int, error) {
	v, ok := attr(el, name)
	if !ok {
		return def, nil
	}
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
		return 0, strconv.ErrRange
	}
	return int(f), nil
}
