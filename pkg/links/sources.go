package links

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bumpkit/pkg/corpus"
	"github.com/matzehuels/bumpkit/pkg/record"
)

// SourceLinker finds the source-jar links of two versions of an
// artifact. *maven.Client implements it.
type SourceLinker interface {
	SourceLinks(ctx context.Context, groupID, artifactID, previous, next string) ([]string, bool, error)
}

// Sources stores the source-jar links of the previous and new dependency
// version in updatedDependency.mavenSourceLinks.
type Sources struct {
	linker SourceLinker
	logger *log.Logger
}

// NewSources creates the source-link step.
func NewSources(linker SourceLinker, logger *log.Logger) *Sources {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sources{linker: linker, logger: logger}
}

// Add looks up the links of r and stores them. It reports false when the
// record lacks coordinates or the repository has neither jar.
func (s *Sources) Add(ctx context.Context, r *record.Record) (bool, error) {
	if !r.HasDependency() {
		return false, nil
	}
	dep := r.Dependency()
	if dep.GroupID == "" || dep.ArtifactID == "" || dep.PreviousVersion == "" || dep.NewVersion == "" {
		return false, nil
	}

	links, found, err := s.linker.SourceLinks(ctx, dep.GroupID, dep.ArtifactID, dep.PreviousVersion, dep.NewVersion)
	if err != nil {
		return false, err
	}
	if !found {
		s.logger.Debug("no source jars", "group", dep.GroupID, "artifact", dep.ArtifactID)
		return false, nil
	}
	return true, r.SetStrings(record.PathSourceLinks, links)
}

// Step adapts Add to the corpus driver.
func (s *Sources) Step() corpus.Step {
	return func(ctx context.Context, r *record.Record) error {
		ok, err := s.Add(ctx, r)
		if err != nil {
			return err
		}
		if !ok {
			return corpus.ErrSkip
		}
		return nil
	}
}
