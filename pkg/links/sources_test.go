package links

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bumpkit/internal/testutil"
	"github.com/matzehuels/bumpkit/pkg/corpus"
	"github.com/matzehuels/bumpkit/pkg/integrations/maven"
	"github.com/matzehuels/bumpkit/pkg/record"
)

func TestSources(t *testing.T) {
	fake := testutil.NewFakeGitHub(t)
	fake.AddArtifact("org/apache/maven/maven-core/3.9.6/maven-core-3.9.6-sources.jar")

	s := NewSources(maven.NewClient(fake.Server.Client(), fake.URL()+"/maven2"), nil)

	r := parse(t, candidate("org.apache.maven", "maven-core", "3.8.1", "3.9.6", record.RepositoryUnresolved))
	require.NoError(t, s.Step()(context.Background(), r))
	assert.Equal(t, []string{
		fake.URL() + "/maven2/org/apache/maven/maven-core/3.8.1/maven-core-3.8.1-sources.jar",
		fake.URL() + "/maven2/org/apache/maven/maven-core/3.9.6/maven-core-3.9.6-sources.jar",
	}, r.Strings(record.PathSourceLinks))
}

func TestSourcesSkip(t *testing.T) {
	fake := testutil.NewFakeGitHub(t)
	s := NewSources(maven.NewClient(fake.Server.Client(), fake.URL()+"/maven2"), nil)

	tests := []struct {
		name string
		doc  string
		hits int
	}{
		{"no dependency", `{"breakingCommit":"0a1b2c3"}`, 0},
		{"no versions", `{"updatedDependency":{"dependencyGroupID":"g","dependencyArtifactID":"a"}}`, 0},
		{"no jars", candidate("org.example", "thing", "1.0", "2.0", ""), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := fake.TotalHits()
			r := parse(t, tt.doc)
			err := s.Step()(context.Background(), r)
			assert.True(t, errors.Is(err, corpus.ErrSkip))
			assert.False(t, r.Has(record.PathSourceLinks))
			assert.Equal(t, tt.hits, fake.TotalHits()-before)
		})
	}
}

type failingLinker struct{}

func (failingLinker) SourceLinks(context.Context, string, string, string, string) ([]string, bool, error) {
	return nil, false, errors.New("connection refused")
}

func TestSourcesError(t *testing.T) {
	s := NewSources(failingLinker{}, nil)
	r := parse(t, candidate("org.example", "thing", "1.0", "2.0", ""))
	err := s.Step()(context.Background(), r)
	require.Error(t, err)
	assert.False(t, errors.Is(err, corpus.ErrSkip))
}
