package io

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"unicode/utf8"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/source"
)

// purlCell marks a purl stitch in a row string.
const purlCell = 'X'

// knitCell marks a knit stitch in a row string.
const knitCell = '.'

type chart struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

// ReadJSON decodes a JSON chart from r.
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed and a
// SHAPE_ERROR if the rows do not match the declared width and height.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*pattern.Chart, error) {
	var data chart
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode chart")
	}

	if data.Width < 0 || data.Height < 0 {
		return nil, errs.New(errs.ErrCodeShape, "dimensions must be non-negative (got %dx%d)", data.Width, data.Height)
	}
	if len(data.Rows) != data.Height {
		return nil, errs.New(errs.ErrCodeShape, "chart has %d rows, want %d", len(data.Rows), data.Height)
	}
	if err := pattern.CheckSize(data.Width, data.Height); err != nil {
		return nil, err
	}

	c := pattern.NewChart(data.Width, data.Height)
	for r, row := range data.Rows {
		if n := utf8.RuneCountInString(row); n != data.Width {
			return nil, errs.New(errs.ErrCodeShape, "row %d has %d cells, want %d", r, n, data.Width)
		}
		col := 0
		for _, ch := range row {
			c.Grid[r][col] = ch == purlCell
			col++
		}
	}
	return c, nil
}

// ImportJSON reads a JSON chart file at path.
//
// ImportJSON returns a FILE_NOT_FOUND error when path does not exist and
// otherwise the same errors as [ReadJSON].
func ImportJSON(path string) (*pattern.Chart, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Loader reads JSON charts through the source.Loader interface.
type Loader struct{}

// NewLoader returns a JSON chart loader.
func NewLoader() *Loader { return &Loader{} }

func (*Loader) Name() string                  { return "json" }
func (*Loader) Supports(filename string) bool { return source.HasExt(filename, ".json") }

// Load decodes a JSON chart. Palette options do not apply to JSON charts.
func (*Loader) Load(ctx context.Context, r io.Reader, _ source.Options) (*pattern.Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadJSON(r)
}
