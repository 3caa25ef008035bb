package annotate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bumpkit/internal/testutil"
	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
	"github.com/matzehuels/bumpkit/pkg/httputil"
	"github.com/matzehuels/bumpkit/pkg/integrations/github"
	"github.com/matzehuels/bumpkit/pkg/mapping"
	"github.com/matzehuels/bumpkit/pkg/record"
)

type stubLicenses map[string]string

func (s stubLicenses) Lookup(_ context.Context, slug string) string {
	if v, ok := s[slug]; ok {
		return v
	}
	return record.NoLicenseFound
}

var testTable = mapping.New([]mapping.Entry{
	{GroupID: "org.apache.maven", ArtifactID: mapping.Wildcard, RepoLink: "https://github.com/apache/maven"},
})

func parse(t *testing.T, s string) *record.Record {
	t.Helper()
	r, err := record.Parse([]byte(s))
	require.NoError(t, err)
	return r
}

func TestResolveSlug(t *testing.T) {
	a := New(stubLicenses{}, testTable, "github.com", nil)

	tests := []struct {
		name   string
		dep    record.Dependency
		want   string
		wantOK bool
	}{
		{
			name:   "compare link",
			dep:    record.Dependency{CompareLink: "https://github.com/FasterXML/jackson-core/compare/a...b"},
			want:   "FasterXML/jackson-core",
			wantOK: true,
		},
		{
			name:   "wildcard mapping",
			dep:    record.Dependency{GroupID: "org.apache.maven", ArtifactID: "maven-core", CompareLink: record.RepositoryUnresolved},
			want:   "apache/maven",
			wantOK: true,
		},
		{
			name:   "unparseable github text falls back to mapping",
			dep:    record.Dependency{GroupID: "org.apache.maven", ArtifactID: "x", CompareLink: record.TagsNotFound("https://github.com/apache/maven")},
			want:   "apache/maven",
			wantOK: true,
		},
		{
			name:   "api link is not a web link",
			dep:    record.Dependency{GroupID: "org.apache.maven", ArtifactID: "x", CompareLink: "https://api.github.com/repos/other/repo/compare/a...b"},
			want:   "apache/maven",
			wantOK: true,
		},
		{
			name:   "nothing known",
			dep:    record.Dependency{GroupID: "org.example", ArtifactID: "thing", CompareLink: record.RepositoryUnresolved},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := a.ResolveSlug(tt.dep)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnnotate(t *testing.T) {
	licenses := stubLicenses{
		"apache/maven":   "Apache-2.0",
		"versly/wsdoc":   "MIT",
		"jenkinsci/core": "MIT",
	}
	a := New(licenses, testTable, "github.com", nil)

	tests := []struct {
		name       string
		in         string
		depLicense string
		slug       string
		license    string
	}{
		{
			name: "mapped dependency with url",
			in: `{"url":"https://github.com/versly/wsdoc/pull/80","updatedDependency":{
				"dependencyGroupID":"org.apache.maven","dependencyArtifactID":"maven-core",
				"githubCompareLink":"A GitHub repository could not be found for the updated dependency."}}`,
			depLicense: "Apache-2.0",
			slug:       "apache/maven",
			license:    "MIT",
		},
		{
			name: "no link and no mapping",
			in: `{"updatedDependency":{"dependencyGroupID":"org.example","dependencyArtifactID":"thing",
				"githubCompareLink":"A GitHub repository could not be found for the updated dependency."}}`,
			depLicense: record.NoLicenseFound,
			slug:       record.RepositoryNotFound,
			license:    record.NoLicenseFound,
		},
		{
			name:       "no url keeps existing top-level license",
			in:         `{"licenseInfo":"GPL-3.0","updatedDependency":{"githubCompareLink":"https://github.com/apache/maven/compare/a...b"}}`,
			depLicense: "Apache-2.0",
			slug:       "apache/maven",
			license:    "GPL-3.0",
		},
		{
			name:       "no url replaces empty top-level license",
			in:         `{"licenseInfo":"","updatedDependency":{"githubCompareLink":"https://github.com/apache/maven/compare/a...b"}}`,
			depLicense: "Apache-2.0",
			slug:       "apache/maven",
			license:    record.NoLicenseFound,
		},
		{
			name:       "url without slug",
			in:         `{"url":"https://github.com/","updatedDependency":{}}`,
			depLicense: record.NoLicenseFound,
			slug:       record.RepositoryNotFound,
			license:    record.NoLicenseFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parse(t, tt.in)
			require.NoError(t, a.Annotate(context.Background(), r))
			assert.Equal(t, tt.depLicense, r.Get(record.PathDependencyLicense))
			assert.Equal(t, tt.slug, r.Get(record.PathRepoSlug))
			assert.Equal(t, tt.license, r.Get(record.PathLicense))
		})
	}
}

func TestAnnotateRequiresDependency(t *testing.T) {
	a := New(stubLicenses{}, nil, "github.com", nil)
	err := a.Annotate(context.Background(), parse(t, `{"breakingCommit":"0a1b2c3"}`))
	assert.True(t, bkerrors.Is(err, bkerrors.ErrCodeInvalidRecord))
}

type emptyLicenses struct{}

func (emptyLicenses) Lookup(context.Context, string) string { return "" }

func TestAnnotatePostcondition(t *testing.T) {
	a := New(emptyLicenses{}, testTable, "github.com", nil)
	r := parse(t, `{"updatedDependency":{"dependencyGroupID":"org.apache.maven","dependencyArtifactID":"x"}}`)

	err := a.Annotate(context.Background(), r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPostcondition))
	assert.True(t, bkerrors.Is(err, bkerrors.ErrCodePostcondition))
}

func TestAnnotateIdempotent(t *testing.T) {
	fake := testutil.NewFakeGitHub(t)
	fake.AddRepo("apache/maven", "Apache-2.0")
	fake.AddRepo("versly/wsdoc", "")

	client, err := github.NewClient(github.Config{APIURL: fake.URL(), HTTPClient: fake.Server.Client()})
	require.NoError(t, err)
	licenses := github.NewLicenseCache(client, httputil.Policy{Attempts: 3, Delay: time.Millisecond}, nil)
	a := New(licenses, testTable, client.WebHost(), nil)

	in := `{
  "url" : "https://github.com/versly/wsdoc/pull/80",
  "breakingCommit" : "0a1b2c3",
  "updatedDependency" : {
    "dependencyGroupID" : "org.apache.maven",
    "dependencyArtifactID" : "maven-core",
    "githubCompareLink" : "A GitHub repository could not be found for the updated dependency."
  }
}`
	r := parse(t, in)
	require.NoError(t, a.Annotate(context.Background(), r))
	first, err := r.Bytes()
	require.NoError(t, err)

	again := parse(t, string(first))
	require.NoError(t, a.Annotate(context.Background(), again))
	second, err := again.Bytes()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, 1, fake.Hits("/repos/apache/maven"), "license lookups are memoized across records")
	assert.Equal(t, 1, fake.Hits("/repos/versly/wsdoc"))
	assert.Contains(t, string(first), `"githubRepoSlug" : "apache/maven"`)
	assert.Contains(t, string(first), `"licenseInfo" : "No license found"`)
}
