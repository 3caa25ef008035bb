package links

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bumpkit/pkg/corpus"
	"github.com/matzehuels/bumpkit/pkg/integrations/github"
	"github.com/matzehuels/bumpkit/pkg/mapping"
	"github.com/matzehuels/bumpkit/pkg/record"
)

// Outcome is what [Fixer.Fix] did with a record.
type Outcome int

const (
	// NotCandidate records already have a usable compare link.
	NotCandidate Outcome = iota
	// Unmapped candidates have no mapping entry and are left untouched.
	Unmapped
	// Resolved candidates received a live compare URL.
	Resolved
	// Unresolved candidates received the tags-not-found sentinel.
	Unresolved
	// NoRepository candidates received the repository-not-found sentinel.
	NoRepository
)

func (o Outcome) String() string {
	switch o {
	case NotCandidate:
		return "not-candidate"
	case Unmapped:
		return "unmapped"
	case Resolved:
		return "resolved"
	case Unresolved:
		return "unresolved"
	case NoRepository:
		return "no-repository"
	default:
		return "unknown"
	}
}

// Comparer checks that a compare page between two tags exists.
type Comparer interface {
	CompareURL(ctx context.Context, repoURL, from, to string) (string, bool)
}

// FixerOptions configures a [Fixer].
type FixerOptions struct {
	Table    *mapping.Table
	Tags     github.TagLister
	Comparer Comparer

	// IncludeUnresolved also retries records that already carry a
	// tags-not-found sentinel.
	IncludeUnresolved bool

	Logger *log.Logger
}

// Fixer resolves compare links through the mapping table.
type Fixer struct {
	table             *mapping.Table
	tags              github.TagLister
	compare           Comparer
	includeUnresolved bool
	logger            *log.Logger
}

// NewFixer creates a Fixer. A nil table behaves as an empty one.
func NewFixer(opts FixerOptions) *Fixer {
	table := opts.Table
	if table == nil {
		table = mapping.New(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Fixer{
		table:             table,
		tags:              opts.Tags,
		compare:           opts.Comparer,
		includeUnresolved: opts.IncludeUnresolved,
		logger:            logger,
	}
}

// IsCandidate reports whether a record with this compare link needs
// fixing.
func (f *Fixer) IsCandidate(link string) bool {
	if link == record.RepositoryUnresolved {
		return true
	}
	return f.includeUnresolved && record.IsTagsNotFound(link)
}

// Fix updates the compare link of r when it is a candidate with a
// mapping entry. Tag listing failures are not errors: whatever tags were
// gathered are used, and a missing pair yields the sentinel.
func (f *Fixer) Fix(ctx context.Context, r *record.Record) (Outcome, error) {
	if !r.HasDependency() {
		return NotCandidate, nil
	}
	dep := r.Dependency()
	if !f.IsCandidate(dep.CompareLink) {
		return NotCandidate, nil
	}

	entry, ok := f.table.Lookup(dep.GroupID, dep.ArtifactID)
	if !ok {
		f.logger.Debug("no mapping entry", "group", dep.GroupID, "artifact", dep.ArtifactID)
		return Unmapped, nil
	}

	if link, ok := f.resolve(ctx, entry.RepoLink, dep); ok {
		return Resolved, r.Set(record.PathCompareLink, link)
	}
	return Unresolved, r.Set(record.PathCompareLink, record.TagsNotFound(entry.RepoLink))
}

func (f *Fixer) resolve(ctx context.Context, repoLink string, dep record.Dependency) (string, bool) {
	slug, ok := github.RepoSlug(repoLink)
	if !ok {
		f.logger.Warn("mapping link has no repository", "link", repoLink)
		return "", false
	}

	tags, err := f.tags.ListTags(ctx, slug)
	if err != nil {
		f.logger.Warn("tag listing incomplete", "slug", slug, "tags", len(tags), "err", err)
	}

	from, okFrom := github.FindVersionTag(tags, dep.PreviousVersion)
	to, okTo := github.FindVersionTag(tags, dep.NewVersion)
	if !okFrom || !okTo {
		f.logger.Debug("version tags not found", "slug", slug,
			"previous", dep.PreviousVersion, "new", dep.NewVersion)
		return "", false
	}

	link, ok := f.compare.CompareURL(ctx, repoLink, from, to)
	if !ok {
		f.logger.Debug("compare page unavailable", "slug", slug, "from", from, "to", to)
	}
	return link, ok
}

// Step adapts Fix to the corpus driver. Records that are not candidates
// or have no mapping entry are skipped.
func (f *Fixer) Step() corpus.Step {
	return func(ctx context.Context, r *record.Record) error {
		outcome, err := f.Fix(ctx, r)
		if err != nil {
			return err
		}
		switch outcome {
		case NotCandidate, Unmapped:
			return corpus.ErrSkip
		}
		f.logger.Info("compare link "+outcome.String(), "commit", r.BreakingCommit())
		return nil
	}
}

// Missing returns a placeholder mapping entry for a candidate record the
// table cannot resolve.
func (f *Fixer) Missing(r *record.Record) (mapping.Entry, bool) {
	if !r.HasDependency() {
		return mapping.Entry{}, false
	}
	dep := r.Dependency()
	if !f.IsCandidate(dep.CompareLink) {
		return mapping.Entry{}, false
	}
	if _, ok := f.table.Lookup(dep.GroupID, dep.ArtifactID); ok {
		return mapping.Entry{}, false
	}
	return mapping.Entry{GroupID: dep.GroupID, ArtifactID: dep.ArtifactID}, true
}
