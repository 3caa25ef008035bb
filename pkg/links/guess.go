package links

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bumpkit/pkg/corpus"
	"github.com/matzehuels/bumpkit/pkg/integrations"
	"github.com/matzehuels/bumpkit/pkg/integrations/github"
	"github.com/matzehuels/bumpkit/pkg/record"
)

// GuessSlug derives a repository from Maven coordinates the way most
// projects publish: the owner is the second groupId segment
// ("com.fasterxml.jackson" gives "fasterxml"), or the whole groupId when
// it has a single segment, and the repository is the artifactId. It
// reports false when the result is not a valid owner/repo pair.
func GuessSlug(groupID, artifactID string) (string, bool) {
	owner := groupID
	if parts := strings.Split(groupID, "."); len(parts) > 1 {
		owner = parts[1]
	}
	slug := owner + "/" + artifactID
	if _, _, err := github.ParseRepoRef(slug); err != nil {
		return "", false
	}
	return slug, true
}

// GuesserOptions configures a [Guesser].
type GuesserOptions struct {
	Tags github.TagLister

	// WebPrefix is the GitHub web root with a trailing slash; compare
	// links are built under it.
	WebPrefix string

	Logger *log.Logger
}

// Guesser fills in the compare link of records that have none, guessing
// the repository from the dependency coordinates.
type Guesser struct {
	tags      github.TagLister
	webPrefix string
	logger    *log.Logger
}

// NewGuesser creates a Guesser.
func NewGuesser(opts GuesserOptions) *Guesser {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	prefix := opts.WebPrefix
	if prefix == "" {
		prefix = github.DefaultWebURL + "/"
	}
	return &Guesser{tags: opts.Tags, webPrefix: prefix, logger: logger}
}

// Guess sets updatedDependency.githubCompareLink of a record that has no
// compare link yet. The link is not checked for liveness. A guessed
// repository that does not exist yields the repository-not-found
// sentinel, and one without exactly one tag per version yields the
// tags-not-found sentinel naming owner/repo. Other listing failures fail
// the record unless some tags were gathered.
func (g *Guesser) Guess(ctx context.Context, r *record.Record) (Outcome, error) {
	if !r.HasDependency() {
		return NotCandidate, nil
	}
	dep := r.Dependency()
	if dep.CompareLink != "" {
		return NotCandidate, nil
	}

	slug, ok := GuessSlug(dep.GroupID, dep.ArtifactID)
	if !ok {
		g.logger.Debug("no repository guess", "group", dep.GroupID, "artifact", dep.ArtifactID)
		return NoRepository, r.Set(record.PathCompareLink, record.RepositoryUnresolved)
	}

	tags, err := g.tags.ListTags(ctx, slug)
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		g.logger.Debug("guessed repository not found", "slug", slug)
		return NoRepository, r.Set(record.PathCompareLink, record.RepositoryUnresolved)
	case err != nil && (ctx.Err() != nil || len(tags) == 0):
		return NotCandidate, err
	case err != nil:
		g.logger.Warn("tag listing incomplete", "slug", slug, "tags", len(tags), "err", err)
	}

	from, to, ok := github.MatchVersionTags(tags, dep.PreviousVersion, dep.NewVersion)
	if !ok {
		g.logger.Debug("version tags not found", "slug", slug,
			"previous", dep.PreviousVersion, "new", dep.NewVersion)
		return Unresolved, r.Set(record.PathCompareLink, record.TagsNotFound(slug))
	}
	return Resolved, r.Set(record.PathCompareLink, github.CompareLink(g.webPrefix+slug, from, to))
}

// Step adapts Guess to the corpus driver. Records that already have a
// compare link are skipped.
func (g *Guesser) Step() corpus.Step {
	return func(ctx context.Context, r *record.Record) error {
		outcome, err := g.Guess(ctx, r)
		if err != nil {
			return err
		}
		if outcome == NotCandidate {
			return corpus.ErrSkip
		}
		g.logger.Info("compare link "+outcome.String(), "commit", r.BreakingCommit())
		return nil
	}
}
