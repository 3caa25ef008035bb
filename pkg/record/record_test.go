package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
)

const sampleRecord = `{
  "url" : "https://github.com/versly/wsdoc/pull/80",
  "project" : "wsdoc",
  "breakingCommit" : "0a1b2c3",
  "updatedDependency" : {
    "dependencyGroupID" : "org.apache.maven",
    "dependencyArtifactID" : "maven-core",
    "previousVersion" : "1.0",
    "newVersion" : "2.0",
    "githubCompareLink" : "A GitHub repository could not be found for the updated dependency."
  }
}`

func TestParse(t *testing.T) {
	r, err := Parse([]byte(sampleRecord))
	require.NoError(t, err)

	assert.Equal(t, "0a1b2c3", r.BreakingCommit())
	assert.Equal(t, "https://github.com/versly/wsdoc/pull/80", r.Get(PathURL))
	assert.True(t, r.HasDependency())
	assert.Equal(t, Dependency{
		GroupID:         "org.apache.maven",
		ArtifactID:      "maven-core",
		PreviousVersion: "1.0",
		NewVersion:      "2.0",
		CompareLink:     RepositoryUnresolved,
	}, r.Dependency())
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{`not json`, `["array"]`, `"string"`, `{"a":`} {
		_, err := Parse([]byte(in))
		require.Error(t, err, in)
		assert.True(t, bkerrors.Is(err, bkerrors.ErrCodeInvalidRecord), in)
	}
}

func TestGetNonString(t *testing.T) {
	r, err := Parse([]byte(`{"licenseInfo":null,"n":3}`))
	require.NoError(t, err)

	assert.Equal(t, "", r.Get(PathLicense))
	assert.True(t, r.Has(PathLicense))
	assert.Equal(t, "", r.Get("n"))
	assert.False(t, r.Has("missing"))
	assert.False(t, r.HasDependency())
}

func TestSetKeepsOrder(t *testing.T) {
	r, err := Parse([]byte(sampleRecord))
	require.NoError(t, err)

	require.NoError(t, r.Set(PathURL, "https://github.com/other/repo/pull/1"))
	require.NoError(t, r.Set(PathDependencyLicense, "Apache-2.0"))
	require.NoError(t, r.Set(PathRepoSlug, "apache/maven"))
	require.NoError(t, r.Set(PathLicense, "MIT"))

	out, err := r.Bytes()
	require.NoError(t, err)

	want := `{
  "url" : "https://github.com/other/repo/pull/1",
  "project" : "wsdoc",
  "breakingCommit" : "0a1b2c3",
  "updatedDependency" : {
    "dependencyGroupID" : "org.apache.maven",
    "dependencyArtifactID" : "maven-core",
    "previousVersion" : "1.0",
    "newVersion" : "2.0",
    "githubCompareLink" : "A GitHub repository could not be found for the updated dependency.",
    "licenseInfo" : "Apache-2.0",
    "githubRepoSlug" : "apache/maven"
  },
  "licenseInfo" : "MIT"
}`
	assert.Equal(t, want, string(out))
}

func TestSetStrings(t *testing.T) {
	r, err := Parse([]byte(`{"updatedDependency":{}}`))
	require.NoError(t, err)

	links := []string{"https://repo1.maven.org/a-1.0-sources.jar", "https://repo1.maven.org/a-2.0-sources.jar"}
	require.NoError(t, r.SetStrings(PathSourceLinks, links))
	assert.Equal(t, links, r.Strings(PathSourceLinks))

	require.NoError(t, r.SetStrings("empty", nil))
	out, err := r.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"empty" : []`)
}

func TestChanged(t *testing.T) {
	r, err := Parse([]byte(sampleRecord))
	require.NoError(t, err)

	changed, err := r.Changed()
	require.NoError(t, err)
	assert.False(t, changed, "canonical input should not be reported as changed")

	require.NoError(t, r.Set(PathRepoSlug, "apache/maven"))
	changed, err = r.Changed()
	require.NoError(t, err)
	assert.True(t, changed)

	compact, err := Parse([]byte(`{"a":"b"}`))
	require.NoError(t, err)
	changed, err = compact.Changed()
	require.NoError(t, err)
	assert.True(t, changed, "reformatting alone counts as a change")
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0a1b2c3.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"breakingCommit":"0a1b2c3"}`), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, r.Path())

	require.NoError(t, r.Set(PathLicense, NoLicenseFound))
	require.NoError(t, r.Save(""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"breakingCommit\" : \"0a1b2c3\",\n  \"licenseInfo\" : \"No license found\"\n}", string(data))

	changed, err := r.Changed()
	require.NoError(t, err)
	assert.False(t, changed, "saved record matches disk")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, bkerrors.Is(err, bkerrors.ErrCodeFileNotFound))
}

func TestSaveWithoutPath(t *testing.T) {
	r, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	err = r.Save("")
	assert.True(t, bkerrors.Is(err, bkerrors.ErrCodeInvalidPath))
}

func TestSentinels(t *testing.T) {
	assert.Equal(t,
		"Relevant tags were not found in the GitHub repository apache/maven for the updated dependency.",
		TagsNotFound("apache/maven"))
	assert.True(t, IsTagsNotFound(TagsNotFound("https://github.com/apache/maven")))
	assert.False(t, IsTagsNotFound(RepositoryUnresolved))

	assert.True(t, HasUsableLicense("MIT"))
	assert.False(t, HasUsableLicense(NoAssertion))
	assert.False(t, HasUsableLicense(NoLicenseFound))
	assert.False(t, HasUsableLicense(""))
}
