// Package cli implements the tether command-line interface.
//
// The commands compute connector geometry from the command line, from
// scene files and over HTTP:
//   - geometry: one connector between two rectangles
//   - plug: the SVG path of a marker shape
//   - scene: every link of a TOML or JSON scene, optionally watched
//   - serve: the HTTP API
//   - inspect: an interactive terminal preview
//   - cache: manage the geometry cache
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes pipeline and HTTP hooks to the logger.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tether/pkg/buildinfo"
	"github.com/matzehuels/tether/pkg/cache"
	"github.com/matzehuels/tether/pkg/observability"
	"github.com/matzehuels/tether/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tether"

	// Environment variables read by serve and scene.
	envRedisURL = "TETHER_REDIS_URL"
	envMongoURI = "TETHER_MONGO_URI"
)

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and HTTP hooks log through the CLI logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Tether computes the geometry of connector lines",
		Long:          `Tether computes SVG path geometry, markers and bounding boxes for lines connecting rectangles, from the command line, scene files or an HTTP API.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.geometryCommand())
	root.AddCommand(c.plugCommand())
	root.AddCommand(c.sceneCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the geometry cache shared by several commands.
type cacheFlags struct {
	noCache  bool
	redisURL string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the geometry cache")
	cmd.Flags().StringVar(&f.redisURL, "redis", os.Getenv(envRedisURL), "Redis URL for a shared cache (env "+envRedisURL+")")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if f.redisURL != "" && !f.noCache {
		// A shared Redis instance may serve other applications.
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil
	case f.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, f.redisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache")
		return rc, nil
	}
	fc, err := cache.NewFileCache(cacheDir())
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// cacheDir returns the cache directory (XDG standard, ~/.cache/tether/).
func cacheDir() string {
	return cache.DefaultDir()
}
