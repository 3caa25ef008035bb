// Package cli implements the bumpkit command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bumpkit/pkg/buildinfo"
	"github.com/matzehuels/bumpkit/pkg/cache"
	"github.com/matzehuels/bumpkit/pkg/config"
	"github.com/matzehuels/bumpkit/pkg/corpus"
	"github.com/matzehuels/bumpkit/pkg/httputil"
	"github.com/matzehuels/bumpkit/pkg/integrations"
	"github.com/matzehuels/bumpkit/pkg/integrations/github"
	"github.com/matzehuels/bumpkit/pkg/mapping"
	"github.com/matzehuels/bumpkit/pkg/notify"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "bumpkit"

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
	opts   globalOptions
}

// globalOptions are the persistent flags. Zero values leave the
// configuration file in charge.
type globalOptions struct {
	configPath string
	dirs       []string
	mapping    string
	tagSource  string
	strict     bool
	dryRun     bool
	noCache    bool
	notify     bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level HTTP and cache
// events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		installDebugHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "bumpkit curates a corpus of breaking dependency updates",
		Long: `bumpkit enriches the bump records of a breaking-dependency-update corpus
with license, repository, compare-link and source-jar metadata, and builds a
pre-labelled failure dataset from Maven build logs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	f := root.PersistentFlags()
	f.StringVar(&c.opts.configPath, "config", "", "configuration file (default ./"+config.DefaultFile+" if present)")
	f.StringSliceVarP(&c.opts.dirs, "dir", "d", nil, "record directory, repeatable (overrides corpus.dirs)")
	f.StringVar(&c.opts.mapping, "mapping", "", "manual repository mapping file (overrides corpus.mapping)")
	f.StringVar(&c.opts.tagSource, "tag-source", "", "where tags are listed from: api or git")
	f.BoolVar(&c.opts.strict, "strict", false, "stop at the first failing record")
	f.BoolVar(&c.opts.dryRun, "dry-run", false, "process records without writing them")
	f.BoolVar(&c.opts.noCache, "no-cache", false, "disable the persistent tag cache")
	f.BoolVar(&c.opts.notify, "notify", false, "post the run summary to Slack ($"+config.EnvSlackWebhookURL+")")

	root.AddCommand(c.licensesCommand())
	root.AddCommand(c.linksCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.sourcesCommand())
	root.AddCommand(c.mappingCommand())
	root.AddCommand(c.labelsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the configuration and applies flag overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.opts.configPath)
	if err != nil {
		return nil, err
	}
	if len(c.opts.dirs) > 0 {
		cfg.Corpus.Dirs = c.opts.dirs
	}
	if c.opts.mapping != "" {
		cfg.Corpus.Mapping = c.opts.mapping
	}
	if c.opts.tagSource != "" {
		cfg.GitHub.TagSource = c.opts.tagSource
	}
	if c.opts.noCache {
		cfg.Cache.Backend = config.CacheNone
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.Logger.Debug("configuration loaded", "dirs", cfg.Corpus.Dirs, "tag_source", cfg.GitHub.TagSource, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// =============================================================================
// Factories
// =============================================================================

// newRunner creates a corpus runner for CLI use.
func (c *CLI) newRunner(cfg *config.Config) *corpus.Runner {
	return corpus.NewRunner(corpus.Options{
		Dirs:   cfg.Corpus.Dirs,
		Strict: c.opts.strict,
		DryRun: c.opts.dryRun,
	}, c.Logger)
}

// retryPolicy builds the 401 retry policy and logs every retry.
func (c *CLI) retryPolicy(cfg *config.Config) httputil.Policy {
	return httputil.Policy{
		Attempts: cfg.HTTP.RetryAttempts,
		Delay:    cfg.HTTP.RetryDelay.Duration,
		OnRetry: func(attempt int, err error) {
			c.Logger.Warn("retrying", "attempt", attempt, "of", cfg.HTTP.RetryAttempts,
				"delay", cfg.HTTP.RetryDelay.Duration, "err", err)
		},
	}
}

func (c *CLI) newGitHubClient(cfg *config.Config) (*github.Client, error) {
	if cfg.GitHub.Token == "" {
		c.Logger.Warn("no GitHub token set, requests are rate limited", "env", config.EnvGitHubToken)
	}
	return github.NewClient(github.Config{
		Token:      cfg.GitHub.Token,
		APIURL:     cfg.GitHub.APIURL,
		WebURL:     cfg.GitHub.WebURL,
		HTTPClient: integrations.NewHTTPClient(cfg.HTTP.Timeout.Duration),
	})
}

// webPrefix is the GitHub web root with a trailing slash, the prefix the
// normalization pass strips.
func webPrefix(cfg *config.Config) string {
	return strings.TrimSuffix(cfg.GitHub.WebURL, "/") + "/"
}

// openCache opens the configured persistent cache backend.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	case config.CacheFile:
		return cache.NewFileCache(cfg.Cache.Dir)
	default:
		return cache.NewNullCache(), nil
	}
}

// newTagLister builds the configured tag source behind the memo and the
// persistent cache.
func (c *CLI) newTagLister(cfg *config.Config, client *github.Client, store cache.Cache) (github.TagLister, error) {
	var inner github.TagLister = github.NewAPITagLister(client)
	if cfg.GitHub.TagSource == github.SourceGit {
		inner = github.NewGitTagLister(client)
	}
	return github.NewCachedTagLister(inner, github.CachedTagListerOptions{
		Source: cfg.GitHub.TagSource,
		Store:  store,
		TTL:    cfg.Cache.TTL.Duration,
	})
}

// loadMapping loads the manual repository mapping table.
func (c *CLI) loadMapping(cfg *config.Config) (*mapping.Table, error) {
	table, err := mapping.Load(cfg.Corpus.Mapping)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("mapping loaded", "path", cfg.Corpus.Mapping, "entries", table.Len())
	return table, nil
}

// =============================================================================
// Reporting
// =============================================================================

// finish prints the report of a pass, sends the notification and turns
// record failures into a non-zero exit.
func (c *CLI) finish(ctx context.Context, cfg *config.Config, report *corpus.Report, err error) error {
	err = c.conclude(report, err)
	c.notify(ctx, cfg, notify.FromReport(report))
	return err
}

// conclude prints the report of a pass and turns record failures into a
// non-zero exit. Commands running several passes notify once at the end.
func (c *CLI) conclude(report *corpus.Report, err error) error {
	if report == nil {
		return err
	}
	printReport(report, c.opts.dryRun)

	if err != nil {
		return err
	}
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%s: %d records failed", report.Step, n)
	}
	return nil
}

// notifier returns the Slack notifier when --notify is set and a webhook
// is configured, and a no-op one otherwise.
func (c *CLI) notifier(cfg *config.Config) notify.Notifier {
	if !c.opts.notify {
		return notify.Nop{}
	}
	if cfg.Notify.SlackWebhookURL == "" {
		printWarning("--notify needs $%s", config.EnvSlackWebhookURL)
		return notify.Nop{}
	}
	return notify.NewSlack(cfg.Notify.SlackWebhookURL, integrations.NewHTTPClient(cfg.HTTP.Timeout.Duration))
}

// notify posts msg. Empty messages are dropped; delivery problems are
// logged, never returned.
func (c *CLI) notify(ctx context.Context, cfg *config.Config, msg notify.Message) {
	if msg.Summary == "" {
		return
	}
	if err := c.notifier(cfg).Notify(context.WithoutCancel(ctx), msg); err != nil {
		c.Logger.Warn("notification failed", "err", err)
	}
}
