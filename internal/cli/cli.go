// Package cli implements the kochwerk command-line interface.
//
// The CLI mirrors the pipeline stages as commands: generate produces a
// figure, fit turns it into a scene, visualize renders artifacts, and
// render runs all three in one step. measure tabulates the perimeter
// series, explore browses levels interactively, serve exposes the HTTP
// API, and archive talks to the figure archive.
//
// All commands support --verbose (-v) for debug-level logging and read
// defaults from the config file (see pkg/config). Results are cached
// under the XDG cache directory unless --no-cache is given.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kochwerk/kochwerk/pkg/buildinfo"
	"github.com/kochwerk/kochwerk/pkg/cache"
	"github.com/kochwerk/kochwerk/pkg/config"
	"github.com/kochwerk/kochwerk/pkg/pipeline"
)

// =============================================================================
// Naming and Log Levels
// =============================================================================

// appName names the binary; cache and config paths derive from it.
const appName = "kochwerk"

// Log levels re-exported so main can wire --verbose without importing
// the logging package itself.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// Shared Command State
// =============================================================================

// CLI carries the logger and loaded config every subcommand reads.
type CLI struct {
	Logger *log.Logger
	Config *config.Config
}

// New builds a CLI logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel adjusts verbosity after construction; main calls it once
// the --verbose flag has been parsed.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. The config file is loaded before any command runs.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "kochwerk",
		Short: "Kochwerk generates and visualizes Koch snowflake curves",
		Long: `Kochwerk is a CLI tool for generating Koch snowflake boundaries,
deforming them with analytic maps, and rendering them as SVG, PNG, or PDF,
with perimeter and fractal dimension measurements along the way.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/kochwerk/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.fitCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.measureCommand())
	root.AddCommand(c.evalCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields defaults.
func (c *CLI) loadConfig(path string) (*config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// cfg returns the loaded config, falling back to defaults so commands
// stay usable when RootCommand's pre-run never fired (tests).
func (c *CLI) cfg() config.Config {
	if c.Config != nil {
		return *c.Config
	}
	return config.Default()
}

// =============================================================================
// Runner and Cache Construction
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The cache backend
// comes from the config file unless noCache disables caching entirely.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	cfg := c.cfg().Cache
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		store, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			printWarning("redis cache unavailable, running uncached: %v", err)
			return cache.NewNullCache(), nil
		}
		return store, nil
	default:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Filesystem Locations
// =============================================================================

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/kochwerk/).
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
// Flag and Config Plumbing
// =============================================================================

// applyConfigDefaults fills options the user left unset from the config
// file's [defaults] section. Explicit flags always win.
func (c *CLI) applyConfigDefaults(cmd *cobra.Command, opts *pipeline.Options) {
	d := c.cfg().Defaults
	fl := cmd.Flags()

	// The level cap is operator policy, not a default: no flag overrides it.
	if d.MaxLevel > 0 {
		opts.MaxLevel = d.MaxLevel
	}

	if fl.Lookup("level") != nil && !fl.Changed("level") && d.Level > 0 {
		opts.Level = d.Level
	}
	if fl.Lookup("map") != nil && !fl.Changed("map") && d.Map != "" {
		opts.Map = d.Map
	}
	if fl.Lookup("style") != nil && !fl.Changed("style") && d.Style != "" {
		opts.Style = d.Style
	}
	if fl.Lookup("width") != nil && !fl.Changed("width") && d.Width > 0 {
		opts.Width = d.Width
	}
	if fl.Lookup("height") != nil && !fl.Changed("height") && d.Height > 0 {
		opts.Height = d.Height
	}
}

// levelCap returns the effective subdivision ceiling for commands whose
// level does not travel through Options, such as measure.
func (c *CLI) levelCap() int {
	return pipeline.LevelCap(c.cfg().Defaults.MaxLevel)
}

// parseFormats parses a comma-separated format string into a slice,
// falling back to the configured default format and then to SVG.
func (c *CLI) parseFormats(s string) []string {
	if s == "" {
		s = c.cfg().Defaults.Format
	}
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
