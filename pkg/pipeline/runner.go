package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stitchrow/pkg/cache"
	pkgio "github.com/matzehuels/stitchrow/pkg/io"
	"github.com/matzehuels/stitchrow/pkg/observability"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/render"
)

// Cache key types reported to observability hooks.
const (
	keyTypeChart    = "chart"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → encode → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	chart, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Chart = chart
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Width = chart.Width
	result.Stats.Height = chart.Height
	result.Stats.Knit, result.Stats.Purl = chart.Counts()
	result.CacheInfo.LoadHit = loadHit

	if data, err := pkgio.MarshalJSON(chart); err == nil {
		result.ChartHash = cache.Hash(data)
	}

	r.Logger.Info("loaded chart",
		"width", chart.Width,
		"height", chart.Height,
		"cached", loadHit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Encode
	encodeStart := time.Now()
	doc, err := r.Encode(ctx, chart, opts.Rows)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.Rows = len(doc.Rows)
	result.Stats.EncodeTime = time.Since(encodeStart)

	r.Logger.Debug("encoded rows",
		"rows", len(doc.Rows),
		"duration", result.Stats.EncodeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifact, renderHit, err := r.RenderWithCacheInfo(ctx, result.ChartHash, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo decodes the source document with caching and returns cache hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*pattern.Chart, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	loader, err := opts.Registry.Resolve(opts.Loader, opts.Filename)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.ChartKey(cache.Hash(opts.Source), opts.ChartKeyOpts(loader.Name()))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if chart, err := pkgio.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeChart)
				return chart, true, nil // Cache hit
			}
			// Unreadable entry, fall through to reload
		} else if err != nil {
			opts.Logger.Warn("chart cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeChart)
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, loader.Name(), opts.Filename)
	start := time.Now()
	chart, err := loader.Load(ctx, bytes.NewReader(opts.Source), opts.SourceOptions())
	if err == nil {
		err = chart.Validate()
	}
	if err != nil {
		hooks.OnLoadComplete(ctx, loader.Name(), 0, 0, time.Since(start), err)
		opts.Logger.Debug("load failed", "file", displayName(opts), "loader", loader.Name(), "err", err)
		return nil, false, err
	}
	hooks.OnLoadComplete(ctx, loader.Name(), chart.Width, chart.Height, time.Since(start), nil)

	// Cache the result
	if data, err := pkgio.MarshalJSON(chart); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLChart); err != nil {
			opts.Logger.Warn("chart cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeChart, len(data))
		}
	}

	return chart, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*pattern.Chart, error) {
	chart, _, err := r.LoadWithCacheInfo(ctx, opts)
	return chart, err
}

// Encode encodes the rows of chart selected by rows ("" selects every row,
// bottom first).
func (r *Runner) Encode(ctx context.Context, chart *pattern.Chart, rows string) (render.Document, error) {
	if err := ctx.Err(); err != nil {
		return render.Document{}, err
	}
	enc, err := pattern.NewEncoderFromChart(chart)
	if err != nil {
		return render.Document{}, err
	}

	var selected []int
	if rows != "" {
		if selected, err = pattern.ParseRowRange(rows, enc.Height()); err != nil {
			return render.Document{}, err
		}
	}

	hooks := observability.Pipeline()
	count := enc.Height()
	if selected != nil {
		count = len(selected)
	}
	hooks.OnEncodeStart(ctx, count)
	start := time.Now()
	doc, err := render.NewDocument(enc, selected)
	hooks.OnEncodeComplete(ctx, count, time.Since(start), err)
	return doc, err
}

// RenderWithCacheInfo renders doc with caching and returns cache hit info.
// An empty chartHash disables the artifact cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, chartHash string, doc render.Document, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	var cacheKey string
	if chartHash != "" {
		cacheKey = r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(doc))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	data, err := render.Render(opts.Format, doc)
	hooks.OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if cacheKey != "" {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, chartHash string, doc render.Document, opts Options) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, chartHash, doc, opts)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func displayName(opts Options) string {
	if opts.Filename != "" {
		return opts.Filename
	}
	return opts.Loader + " document"
}
