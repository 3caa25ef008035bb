package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Corpus.Dirs, 3)
	assert.Equal(t, "https://api.github.com/", cfg.GitHub.APIURL)
	assert.Equal(t, "https://github.com", cfg.GitHub.WebURL)
	assert.Equal(t, "https://repo1.maven.org/maven2", cfg.Maven.RepoURL)
	assert.Equal(t, 3, cfg.HTTP.RetryAttempts)
	assert.Equal(t, 5*time.Second, cfg.HTTP.RetryDelay.Duration)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout.Duration)
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[corpus]
dirs = ["records"]

[github]
tag_source = "git"

[http]
retry_delay = "250ms"

[cache]
backend = "none"
`)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"records"}, cfg.Corpus.Dirs)
	assert.Equal(t, "scripts/manual_repo_mapping.json", cfg.Corpus.Mapping, "unset keys keep defaults")
	assert.Equal(t, "git", cfg.GitHub.TagSource)
	assert.Equal(t, 250*time.Millisecond, cfg.HTTP.RetryDelay.Duration)
	assert.Equal(t, 3, cfg.HTTP.RetryAttempts)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[corpus\n"},
		{"bad duration", "[http]\nretry_delay = \"soon\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.True(t, bkerrors.Is(err, bkerrors.ErrCodeInvalidConfig), "err = %v", err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no dirs", func(c *Config) { c.Corpus.Dirs = nil }},
		{"bad api url", func(c *Config) { c.GitHub.APIURL = "api.github.com" }},
		{"bad tag source", func(c *Config) { c.GitHub.TagSource = "svn" }},
		{"redis without url", func(c *Config) { c.Cache.Backend = CacheRedis }},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"unknown sink", func(c *Config) { c.Labels.Sink = "argilla" }},
		{"zero attempts", func(c *Config) { c.HTTP.RetryAttempts = 0 }},
		{"zero timeout", func(c *Config) { c.HTTP.Timeout.Duration = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.True(t, bkerrors.Is(err, bkerrors.ErrCodeInvalidConfig), "err = %v", err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvGitHubToken:     " ghp_test ",
		EnvRedisURL:        "redis://localhost:6379/0",
		EnvMongoURI:        "mongodb://localhost:27017",
		EnvSlackWebhookURL: "https://hooks.slack.com/services/T/B/X",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Labels.MongoURI)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", cfg.Notify.SlackWebhookURL)

	cfg.Cache.Backend = CacheRedis
	assert.NoError(t, cfg.Validate())

	assert.NotContains(t, cfg.String(), "ghp_test")
	assert.NotContains(t, cfg.String(), "hooks.slack.com")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvGitHubToken, "from-env")

	cfg, err := Load("")
	require.NoError(t, err, "a missing default file is fine")
	assert.Equal(t, "from-env", cfg.GitHub.Token)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, bkerrors.Is(err, bkerrors.ErrCodeFileNotFound))

	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[corpus]\ndirs = [\"a\", \"b\"]\n"), 0644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.Corpus.Dirs)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("BUMPKIT_MONGO_URI=mongodb://dotenv:27017\n"), 0600))
	t.Setenv(EnvMongoURI, "")
	os.Unsetenv(EnvMongoURI)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://dotenv:27017", cfg.Labels.MongoURI)
}

func TestString(t *testing.T) {
	out := Default().String()
	assert.True(t, strings.Contains(out, "[corpus]"))
	assert.Contains(t, out, `retry_delay = "5s"`)
}
