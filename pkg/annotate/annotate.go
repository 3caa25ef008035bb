// Package annotate fills in the license and repository fields of bump
// records.
package annotate

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
	"github.com/matzehuels/bumpkit/pkg/integrations/github"
	"github.com/matzehuels/bumpkit/pkg/mapping"
	"github.com/matzehuels/bumpkit/pkg/record"
)

// ErrPostcondition is wrapped by the error returned when an annotated
// record still lacks a license or slug.
var ErrPostcondition = errors.New("annotation incomplete")

// LicenseLookup resolves a repository slug to an SPDX id or
// [record.NoLicenseFound].
type LicenseLookup interface {
	Lookup(ctx context.Context, slug string) string
}

// Annotator writes licenseInfo and githubRepoSlug into records.
type Annotator struct {
	licenses LicenseLookup
	table    *mapping.Table
	webHost  string
	logger   *log.Logger
}

// New creates an Annotator. webHost is the GitHub web host compare links
// are recognized by ("github.com"). A nil table behaves as an empty one.
func New(licenses LicenseLookup, table *mapping.Table, webHost string, logger *log.Logger) *Annotator {
	if table == nil {
		table = mapping.New(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Annotator{
		licenses: licenses,
		table:    table,
		webHost:  webHost,
		logger:   logger,
	}
}

// ResolveSlug determines the repository of a dependency: from its compare
// link when that points at GitHub, otherwise from the mapping table.
func (a *Annotator) ResolveSlug(dep record.Dependency) (string, bool) {
	if github.IsWebLink(dep.CompareLink, a.webHost) {
		if slug, ok := github.RepoSlug(dep.CompareLink); ok && validSlug(slug) {
			return slug, true
		}
	}
	if e, ok := a.table.Lookup(dep.GroupID, dep.ArtifactID); ok {
		if slug, ok := github.RepoSlug(e.RepoLink); ok {
			return slug, true
		}
	}
	return "", false
}

// Annotate updates r in place:
//
//   - updatedDependency.licenseInfo and updatedDependency.githubRepoSlug from
//     the dependency repository, or the "not found" sentinels;
//   - the top-level licenseInfo from the repository of the top-level url,
//     or the sentinel when there is no url and no license yet.
//
// It fails with [ErrPostcondition] when any of the three fields ends up
// empty.
func (a *Annotator) Annotate(ctx context.Context, r *record.Record) error {
	if !r.HasDependency() {
		return bkerrors.New(bkerrors.ErrCodeInvalidRecord, "record has no %s object", record.PathDependency)
	}

	dep := r.Dependency()
	depLicense, slug := record.NoLicenseFound, record.RepositoryNotFound
	if s, ok := a.ResolveSlug(dep); ok {
		slug = s
		depLicense = a.licenses.Lookup(ctx, s)
	} else {
		a.logger.Debug("no repository for dependency", "group", dep.GroupID, "artifact", dep.ArtifactID)
	}
	if err := r.Set(record.PathDependencyLicense, depLicense); err != nil {
		return err
	}
	if err := r.Set(record.PathRepoSlug, slug); err != nil {
		return err
	}

	if url := r.Get(record.PathURL); url != "" {
		license := record.NoLicenseFound
		if s, ok := github.RepoSlug(url); ok {
			license = a.licenses.Lookup(ctx, s)
		}
		if err := r.Set(record.PathLicense, license); err != nil {
			return err
		}
	} else if r.Get(record.PathLicense) == "" {
		if err := r.Set(record.PathLicense, record.NoLicenseFound); err != nil {
			return err
		}
	}

	return checkPostcondition(r)
}

func checkPostcondition(r *record.Record) error {
	for _, path := range []string{record.PathDependencyLicense, record.PathLicense, record.PathRepoSlug} {
		if r.Get(path) == "" {
			return bkerrors.Wrap(bkerrors.ErrCodePostcondition, ErrPostcondition, "%s is empty", path)
		}
	}
	return nil
}

func validSlug(slug string) bool {
	_, _, err := github.ParseRepoRef(slug)
	return err == nil
}
