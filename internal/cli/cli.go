// Package cli implements the kegg command-line interface.
//
// Each KEGG operation has a command of the same name (info, list, find,
// get, conv, link) plus organisms, seq and compounds. Results print as
// lipgloss tables or, with --json, as indented JSON on stdout; progress
// and logs go to stderr.
//
// Settings come from the config file, then KEGG_* environment variables,
// then global flags, each overriding the previous. Responses are cached
// in the configured backend (the file cache by default); use --refresh to
// bypass cached responses or --no-cache to disable caching.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/keggrest/kegg/internal/config"
	"github.com/keggrest/kegg/pkg/buildinfo"
	"github.com/keggrest/kegg/pkg/cache"
	"github.com/keggrest/kegg/pkg/integrations"
	"github.com/keggrest/kegg/pkg/integrations/kegg"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "kegg"

// LogInfo is the default log level; --verbose switches to debug.
const LogInfo = log.InfoLevel

// exitInterrupted is the shell convention for a command stopped by SIGINT.
const exitInterrupted = 130

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	flags      globalFlags
}

// globalFlags override config values for a single invocation.
type globalFlags struct {
	json       bool
	refresh    bool
	noCache    bool
	genome     bool
	baseURL    string
	timeout    time.Duration
	retries    int
	cacheStore string
	logFormat  string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// Execute runs the command line args under ctx. Errors are returned, not
// printed; see [ExitCode].
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SilenceErrors = true
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// ExitCode maps the error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return 1
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "kegg queries the KEGG REST API",
		Long: `kegg is a command-line client for the KEGG REST API (https://rest.kegg.jp).

It lists, searches and retrieves KEGG entries, converts identifiers,
follows cross-references and can serve the same operations as a JSON API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Set before loadConfig, which logs the sources it read.
			if c.flags.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
			f, err := parseLogFormat(c.flags.logFormat)
			if err != nil {
				return err
			}
			c.Logger.SetFormatter(f)
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/kegg/config.toml)")
	pf.BoolVar(&c.flags.json, "json", false, "print results as JSON")
	pf.BoolVar(&c.flags.refresh, "refresh", false, "bypass cached responses")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "disable the response cache")
	pf.BoolVar(&c.flags.genome, "genome", false, "use the GenomeNet mirror (rest.genome.jp)")
	pf.StringVar(&c.flags.baseURL, "base-url", "", "KEGG REST endpoint")
	pf.DurationVar(&c.flags.timeout, "timeout", 0, "per-request timeout (e.g. 30s)")
	pf.IntVar(&c.flags.retries, "retries", 0, "attempts for transient failures (1 = no retry)")
	pf.StringVar(&c.flags.cacheStore, "cache-backend", "", "cache backend: none, file, redis, mongo")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&c.flags.logFormat, "log-format", logFormatText, "log format on stderr: text, json, logfmt")

	// Register all subcommands
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.organismsCommand())
	root.AddCommand(c.findCommand())
	root.AddCommand(c.getCommand())
	root.AddCommand(c.seqCommand())
	root.AddCommand(c.convCommand())
	root.AddCommand(c.linkCommand())
	root.AddCommand(c.compoundsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and environment, then applies the
// flags that were set on the command line.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	switch {
	case flags.Changed("base-url"):
		cfg.BaseURL = c.flags.baseURL
	case c.flags.genome:
		cfg.BaseURL = kegg.GenomeBaseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = c.flags.timeout
	}
	if flags.Changed("retries") {
		cfg.Retries = c.flags.retries
	}
	if flags.Changed("cache-backend") {
		cfg.Cache.Backend = c.flags.cacheStore
	}
	if c.flags.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.Config = cfg
	c.Logger.Debug("loaded config", "base_url", cfg.BaseURL, "cache", cfg.Cache.Backend, "timeout", cfg.Timeout)
	return nil
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient opens the configured cache and returns a KEGG client using it.
// The returned close function releases the cache.
func (c *CLI) newClient(ctx context.Context) (*kegg.Client, func(), error) {
	backend, err := c.Config.Cache.OpenCache(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.Config.Cache.Backend, "error", err)
		backend = cache.NewNullCache()
	}

	client := kegg.NewClient(backend, c.Config.Cache.TTL,
		integrations.WithTimeout(c.Config.Timeout),
		integrations.WithRetry(c.Config.Retries, c.Config.RetryDelay),
		integrations.WithRefresh(c.flags.refresh),
		integrations.WithHeaders(map[string]string{"User-Agent": buildinfo.UserAgent()}),
		integrations.WithLogger(c.Logger),
	)
	if err := client.SetBaseURL(c.Config.BaseURL); err != nil {
		backend.Close()
		return nil, nil, err
	}
	return client, func() { backend.Close() }, nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
