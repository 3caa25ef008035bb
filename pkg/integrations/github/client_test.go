package github

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bumpkit/internal/testutil"
	"github.com/matzehuels/bumpkit/pkg/httputil"
)

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)

	assert.Equal(t, "api.github.com", c.APIHost())
	assert.Equal(t, "github.com", c.WebHost())
	assert.Equal(t, "https://github.com/apache/maven", c.RepoURL("apache/maven"))
	assert.Equal(t, "https://github.com/", c.WebPrefix())
}

func TestNewClientCustomURLs(t *testing.T) {
	c, err := NewClient(Config{
		APIURL:     "https://ghe.example.com/api/v3",
		WebURL:     "https://ghe.example.com/",
		HTTPClient: &http.Client{},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://ghe.example.com/api/v3/", c.api.BaseURL.String())
	assert.Equal(t, "https://ghe.example.com/x/y", c.RepoURL("x/y"))
}

// testClient returns a client whose API and web roots both point at the
// fake server.
func testClient(t *testing.T, fake *testutil.FakeGitHub, token string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		Token:      token,
		APIURL:     fake.URL(),
		WebURL:     fake.URL(),
		HTTPClient: fake.Server.Client(),
	})
	require.NoError(t, err)
	return c
}

func fastRetry() httputil.Policy {
	return httputil.Policy{Attempts: 3, Delay: time.Millisecond}
}
