// Package source loads knitting charts from pattern documents.
//
// A [Loader] reads one document format and produces a [pattern.Chart]. All
// loaders share the same forgiving rules: cells outside the declared chart,
// malformed entries, and unrecognized colors or markers are left as knit
// stitches. Only an unreadable document or missing dimensions are errors.
//
// A [Registry] picks a loader from a filename or by name. The full list of
// formats lives in the formats subpackage:
//
//	l, err := formats.All.Detect("sweater.svg")
//	chart, err := l.Load(ctx, f, source.DefaultOptions())
package source

import (
	"context"
	"io"
	"strings"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
)

// DefaultPurl is the fill color charts use for purl stitches.
const DefaultPurl = "#383838"

// Loader reads a chart from one document format.
type Loader interface {
	// Name identifies the loader, e.g. "svg".
	Name() string
	// Supports reports whether filename looks like this loader's format.
	Supports(filename string) bool
	// Load decodes the document in r.
	Load(ctx context.Context, r io.Reader, opts Options) (*pattern.Chart, error)
}

// Palette selects which colors map to which stitch.
type Palette struct {
	// Purl is the hex color marking purl cells.
	Purl string `json:"purl" toml:"purl"`
	// Knit is the hex color used when writing charts back out.
	Knit string `json:"knit,omitempty" toml:"knit"`
	// Tolerance is the per-channel distance (0-255) within which a raster
	// pixel still counts as the purl color.
	Tolerance int `json:"tolerance,omitempty" toml:"tolerance"`
}

// Options configures a load.
type Options struct {
	Palette Palette `json:"palette"`
	// CellSize is the edge length in pixels of one raster cell.
	CellSize int `json:"cell_size,omitempty"`
}

// DefaultOptions returns options matching the stock chart colors.
func DefaultOptions() Options {
	return Options{
		Palette:  Palette{Purl: DefaultPurl, Knit: "#ffffff"},
		CellSize: 1,
	}
}

// SetDefaults fills zero fields from DefaultOptions.
func (o *Options) SetDefaults() {
	d := DefaultOptions()
	if o.Palette.Purl == "" {
		o.Palette.Purl = d.Palette.Purl
	}
	if o.Palette.Knit == "" {
		o.Palette.Knit = d.Palette.Knit
	}
	if o.CellSize <= 0 {
		o.CellSize = d.CellSize
	}
}

// Validate checks the palette colors and numeric bounds.
func (o Options) Validate() error {
	if err := errs.ValidateColor(o.Palette.Purl); err != nil {
		return err
	}
	if o.Palette.Knit != "" {
		if err := errs.ValidateColor(o.Palette.Knit); err != nil {
			return err
		}
	}
	if o.Palette.Tolerance < 0 || o.Palette.Tolerance > 255 {
		return errs.New(errs.ErrCodeInvalidInput, "tolerance must be between 0 and 255 (got %d)", o.Palette.Tolerance)
	}
	if o.CellSize < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "cell size must be at least 1 (got %d)", o.CellSize)
	}
	return nil
}

// Registry is an ordered list of loaders. Detection tries them in order.
type Registry []Loader

// Names returns the names of the loaders.
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, l := range r {
		names[i] = l.Name()
	}
	return names
}

// Lookup finds a loader by name.
func (r Registry) Lookup(name string) (Loader, error) {
	for _, l := range r {
		if strings.EqualFold(l.Name(), name) {
			return l, nil
		}
	}
	return nil, errs.New(errs.ErrCodeUnsupported, "unknown loader %q (available: %s)", name, strings.Join(r.Names(), ", "))
}

// Detect finds the loader for filename by extension.
func (r Registry) Detect(filename string) (Loader, error) {
	for _, l := range r {
		if l.Supports(filename) {
			return l, nil
		}
	}
	return nil, errs.New(errs.ErrCodeUnsupported, "no loader for %q (available: %s)", filename, strings.Join(r.Names(), ", "))
}

// Resolve returns the named loader, or detects one from filename when name
// is empty.
func (r Registry) Resolve(name, filename string) (Loader, error) {
	if name != "" {
		return r.Lookup(name)
	}
	return r.Detect(filename)
}

// HasExt reports whether filename ends in one of exts (case-insensitive,
// exts include the dot).
func HasExt(filename string, exts ...string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
