package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stitchrow/pkg/buildinfo"
	"github.com/matzehuels/stitchrow/pkg/cache"
	"github.com/matzehuels/stitchrow/pkg/config"
	"github.com/matzehuels/stitchrow/pkg/observability"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "stitchrow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stitchrow turns knitting charts into row-by-row instructions",
		Long: `Stitchrow reads a knitting chart (SVG grid, bitmap, JSON or plain text) and
writes out the instruction for each row, e.g. "k2, p3", in the order the
stitches are worked: right to left on odd rows, left to right on even rows.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/stitchrow/config.toml)")

	// Register all subcommands
	root.AddCommand(c.rowsCommand())
	root.AddCommand(c.rowCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.progressCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Cache.Backend)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns)
	}
	return pipeline.NewRunner(cache.WithMaxTTL(ch, c.Config.Cache.TTL.Duration), keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/stitchrow/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Source Flags
// =============================================================================

// sourceFlags holds the loader flags shared by every command that reads a
// chart. Flags override the config file only when set explicitly.
type sourceFlags struct {
	loader    string
	purl      string
	tolerance int
	cellSize  int
	noCache   bool
	refresh   bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.loader, "loader", "", "chart loader: svg, raster, json, text (default: detect from file name)")
	cmd.Flags().StringVar(&f.purl, "purl", "", "fill color of purl cells (default from config)")
	cmd.Flags().IntVar(&f.tolerance, "tolerance", 0, "per-channel color tolerance for bitmap charts (0-255)")
	cmd.Flags().IntVar(&f.cellSize, "cell-size", 0, "pixels per cell edge for bitmap charts")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the chart cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "reload the chart even if it is cached")
}

// options builds pipeline options for the chart at path, which may also be
// an http or https URL.
func (c *CLI) options(cmd *cobra.Command, path string, f *sourceFlags) (pipeline.Options, error) {
	data, err := pipeline.FetchSource(cmd.Context(), path, nil)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Loader:   f.loader,
		Filename: pipeline.SourceName(path),
		Palette:  c.Config.Palette,
		CellSize: c.Config.Source.CellSize,
		Refresh:  f.refresh,
		Format:   c.Config.Output.Format,
		Source:   data,
		Logger:   c.Logger,
	}

	flags := cmd.Flags()
	if flags.Changed("purl") {
		opts.Palette.Purl = f.purl
	}
	if flags.Changed("tolerance") {
		opts.Palette.Tolerance = f.tolerance
	}
	if flags.Changed("cell-size") {
		opts.CellSize = f.cellSize
	}
	return opts, nil
}

// loadChart reads and decodes the chart at path, going through the cache.
func (c *CLI) loadChart(cmd *cobra.Command, path string, f *sourceFlags) (*pattern.Chart, bool, error) {
	ctx := cmd.Context()
	opts, err := c.options(cmd, path, f)
	if err != nil {
		return nil, false, err
	}
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return nil, false, err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	chart, hit, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	prog.debug("loaded " + filepath.Base(path))
	return chart, hit, nil
}
