// Package config loads bumpkit settings.
//
// Settings come from, in increasing precedence: built-in defaults, a TOML
// file (bumpkit.toml), the environment (optionally seeded from a .env
// file) and command-line flags. Secrets are only read from the
// environment and are never written back.
//
//	[corpus]
//	dirs = ["data/benchmark", "data/sanity-check-failures"]
//	mapping = "scripts/manual_repo_mapping.json"
//
//	[github]
//	tag_source = "git"
//
//	[http]
//	timeout = "30s"
//	retry_attempts = 3
//	retry_delay = "5s"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
	"github.com/matzehuels/bumpkit/pkg/integrations/github"
	"github.com/matzehuels/bumpkit/pkg/integrations/maven"
	"github.com/matzehuels/bumpkit/pkg/labels"
)

// DefaultFile is the configuration file looked up in the working
// directory when none is given.
const DefaultFile = "bumpkit.toml"

// Environment variables read by [Config.ApplyEnv].
const (
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvRedisURL        = "BUMPKIT_REDIS_URL"
	EnvMongoURI        = "BUMPKIT_MONGO_URI"
	EnvSlackWebhookURL = "BUMPKIT_SLACK_WEBHOOK_URL"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Label sinks.
const (
	SinkJSONL = "jsonl"
	SinkMongo = "mongo"
)

// Config is the complete bumpkit configuration.
type Config struct {
	Corpus Corpus `toml:"corpus"`
	GitHub GitHub `toml:"github"`
	Maven  Maven  `toml:"maven"`
	HTTP   HTTP   `toml:"http"`
	Cache  Cache  `toml:"cache"`
	Labels Labels `toml:"labels"`
	Notify Notify `toml:"notify"`
}

// Corpus locates the records and the mapping table.
type Corpus struct {
	Dirs    []string `toml:"dirs"`
	Mapping string   `toml:"mapping"`
}

// GitHub selects the GitHub instance.
type GitHub struct {
	Token     string `toml:"-"`
	APIURL    string `toml:"api_url"`
	WebURL    string `toml:"web_url"`
	TagSource string `toml:"tag_source"`
}

// Maven selects the Maven repository.
type Maven struct {
	RepoURL string `toml:"repo_url"`
}

// HTTP tunes outgoing requests.
type HTTP struct {
	Timeout       Duration `toml:"timeout"`
	RetryAttempts int      `toml:"retry_attempts"`
	RetryDelay    Duration `toml:"retry_delay"`
}

// Cache configures the persistent tag cache.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"-"`
	TTL      Duration `toml:"ttl"`
}

// Labels configures the failure-log labeller.
type Labels struct {
	LogsDir    string `toml:"logs_dir"`
	Sink       string `toml:"sink"`
	Output     string `toml:"output"`
	MongoURI   string `toml:"-"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Notify configures run summaries.
type Notify struct {
	SlackWebhookURL string `toml:"-"`
}

// Duration is a time.Duration written as a string ("5s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the settings the corpus scripts always used.
func Default() *Config {
	return &Config{
		Corpus: Corpus{
			Dirs: []string{
				"data/benchmark",
				"data/sanity-check-failures",
				"data/unsuccessful-reproductions",
			},
			Mapping: "scripts/manual_repo_mapping.json",
		},
		GitHub: GitHub{
			APIURL:    github.DefaultAPIURL,
			WebURL:    github.DefaultWebURL,
			TagSource: github.SourceAPI,
		},
		Maven: Maven{RepoURL: maven.DefaultRepoURL},
		HTTP: HTTP{
			Timeout:       Duration{30 * time.Second},
			RetryAttempts: 3,
			RetryDelay:    Duration{5 * time.Second},
		},
		Cache: Cache{
			Backend: CacheFile,
			TTL:     Duration{24 * time.Hour},
		},
		Labels: Labels{
			LogsDir:    "reproductionLogs/successfulReproductionLogs",
			Sink:       SinkJSONL,
			Output:     "failure-labels.jsonl",
			Database:   labels.DefaultMongoDatabase,
			Collection: labels.DefaultMongoCollection,
		},
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path reads [DefaultFile] if it exists; an
// explicit path must exist. A .env file in the working directory is
// loaded first without overriding variables that are already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, bkerrors.Wrap(bkerrors.ErrCodeInvalidConfig, err, "load .env")
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case errors.Is(err, os.ErrNotExist):
			return nil, bkerrors.Wrap(bkerrors.ErrCodeFileNotFound, err, "config file %s", path)
		default:
			return nil, bkerrors.Wrap(bkerrors.ErrCodeInvalidConfig, err, "parse config file %s", path)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults. It does not consult the
// environment.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, bkerrors.Wrap(bkerrors.ErrCodeInvalidConfig, err, "parse config")
	}
	return cfg, nil
}

// ApplyEnv copies secrets and endpoints from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvGitHubToken)); v != "" {
		c.GitHub.Token = v
	}
	if v := strings.TrimSpace(getenv(EnvRedisURL)); v != "" {
		c.Cache.RedisURL = v
	}
	if v := strings.TrimSpace(getenv(EnvMongoURI)); v != "" {
		c.Labels.MongoURI = v
	}
	if v := strings.TrimSpace(getenv(EnvSlackWebhookURL)); v != "" {
		c.Notify.SlackWebhookURL = v
	}
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if len(c.Corpus.Dirs) == 0 {
		return bkerrors.New(bkerrors.ErrCodeInvalidConfig, "corpus.dirs is empty")
	}
	for _, u := range []string{c.GitHub.APIURL, c.GitHub.WebURL, c.Maven.RepoURL} {
		if err := bkerrors.ValidateURL(u); err != nil {
			return bkerrors.Wrap(bkerrors.ErrCodeInvalidConfig, err, "invalid endpoint")
		}
	}
	switch c.GitHub.TagSource {
	case github.SourceAPI, github.SourceGit:
	default:
		return bkerrors.New(bkerrors.ErrCodeInvalidConfig, "github.tag_source must be %q or %q, got %q",
			github.SourceAPI, github.SourceGit, c.GitHub.TagSource)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return bkerrors.New(bkerrors.ErrCodeInvalidConfig, "cache backend redis needs %s", EnvRedisURL)
		}
	default:
		return bkerrors.New(bkerrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Labels.Sink {
	case SinkJSONL, SinkMongo:
	default:
		return bkerrors.New(bkerrors.ErrCodeInvalidConfig, "unknown labels sink %q", c.Labels.Sink)
	}
	if c.HTTP.RetryAttempts < 1 {
		return bkerrors.New(bkerrors.ErrCodeInvalidConfig, "http.retry_attempts must be at least 1")
	}
	if c.HTTP.Timeout.Duration <= 0 {
		return bkerrors.New(bkerrors.ErrCodeInvalidConfig, "http.timeout must be positive")
	}
	return nil
}

// String renders the effective configuration as TOML, without secrets.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
