// Package pipeline provides the load → encode → render pipeline shared by
// the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: decode a pattern document into a chart (svg, raster, json, text)
//  2. Encode: turn the selected chart rows into knitting instructions
//  3. Render: serialize the instructions (text, json, markdown, table)
//
// Loaded charts and rendered artifacts are cached by content hash, so
// repeated runs over the same document skip decoding.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Filename: "sweater.svg",
//	    Source:   data,
//	    Rows:     "1-10",
//	    Format:   render.FormatText,
//	})
//	fmt.Print(string(result.Artifact))
//
// Run individual stages:
//
//	chart, err := runner.Load(ctx, opts)
//	doc, err := runner.Encode(ctx, chart, opts.Rows)
//	out, err := runner.Render(ctx, "", doc, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stitchrow/pkg/cache"
	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/render"
	"github.com/matzehuels/stitchrow/pkg/source"
	"github.com/matzehuels/stitchrow/pkg/source/formats"
)

// DefaultFormat is the output format used when none is given.
const DefaultFormat = render.FormatText

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options
	Loader   string         `json:"loader,omitempty"`   // loader name; detected from Filename when empty
	Filename string         `json:"filename,omitempty"` // used for loader detection and logging
	Palette  source.Palette `json:"palette"`
	CellSize int            `json:"cell_size,omitempty"`
	Refresh  bool           `json:"refresh,omitempty"` // bypass the chart cache

	// Encode options
	Rows string `json:"rows,omitempty"` // row selection like "1-5,8"; empty means every row

	// Render options
	Format string `json:"format,omitempty"`

	// Runtime options (not serialized)
	Source   []byte          `json:"-"`
	Logger   *log.Logger     `json:"-"`
	Registry source.Registry `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the decoded chart.
	Chart *pattern.Chart

	// ChartHash is the content hash of the chart.
	ChartHash string

	// Document holds the encoded rows.
	Document render.Document

	// Artifact is the rendered output.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Width      int
	Height     int
	Rows       int
	Knit       int
	Purl       int
	LoadTime   time.Duration
	EncodeTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the chart came from cache
	RenderHit bool // Whether the artifact came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Source == nil {
		return errs.New(errs.ErrCodeInvalidInput, "source document is required")
	}
	if o.Loader == "" && o.Filename == "" {
		return errs.New(errs.ErrCodeInvalidInput, "loader or filename is required")
	}
	o.SetLoadDefaults()
	opts := o.SourceOptions()
	return opts.Validate()
}

// SetLoadDefaults sets default values for loading.
func (o *Options) SetLoadDefaults() {
	opts := o.SourceOptions()
	opts.SetDefaults()
	o.Palette = opts.Palette
	o.CellSize = opts.CellSize
	if o.Registry == nil {
		o.Registry = formats.All
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return render.ValidateFormat(o.Format)
}

// SourceOptions returns the loader options.
func (o *Options) SourceOptions() source.Options {
	return source.Options{Palette: o.Palette, CellSize: o.CellSize}
}

// ChartKeyOpts returns cache key options for the chart cache.
func (o *Options) ChartKeyOpts(loader string) cache.ChartKeyOpts {
	return cache.ChartKeyOpts{
		Loader:    loader,
		Purl:      source.NormalizeHex(o.Palette.Purl),
		Tolerance: o.Palette.Tolerance,
		CellSize:  o.CellSize,
	}
}

// ArtifactKeyOpts returns cache key options for a rendered document.
func (o *Options) ArtifactKeyOpts(doc render.Document) cache.ArtifactKeyOpts {
	rows := make([]int, len(doc.Rows))
	for i, r := range doc.Rows {
		rows[i] = r.Row
	}
	return cache.ArtifactKeyOpts{Format: o.Format, Rows: rows}
}
