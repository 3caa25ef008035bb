package github

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/bumpkit/internal/testutil"
)

func TestCompareLink(t *testing.T) {
	tests := []struct {
		repoURL, from, to, want string
	}{
		{"https://github.com/apache/maven", "maven-3.9.5", "maven-3.9.6", "https://github.com/apache/maven/compare/maven-3.9.5...maven-3.9.6"},
		{"https://github.com/apache/maven/", "v1", "v2", "https://github.com/apache/maven/compare/v1...v2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompareLink(tt.repoURL, tt.from, tt.to))
	}
}

func TestCompareURL(t *testing.T) {
	fake := testutil.NewFakeGitHub(t)
	fake.AddCompare("apache/maven", "v1.0.0", "v1.0.1")
	c := testClient(t, fake, "secret")
	ctx := context.Background()

	link, ok := c.CompareURL(ctx, c.RepoURL("apache/maven"), "v1.0.0", "v1.0.1")
	assert.True(t, ok)
	assert.Equal(t, fake.URL()+"/apache/maven/compare/v1.0.0...v1.0.1", link)
	assert.Empty(t, fake.Authorization("/apache/maven/compare/v1.0.0...v1.0.1"), "compare pages are fetched without credentials")

	link, ok = c.CompareURL(ctx, c.RepoURL("apache/maven"), "v1.0.0", "v9.9.9")
	assert.False(t, ok)
	assert.Empty(t, link)
}
