// Package record reads, edits and writes bump records.
//
// A bump record is one JSON object per breaking commit. bumpkit only owns a
// handful of its fields; every other key is preserved untouched and in its
// original order. Edits therefore operate on the raw document with gjson
// and sjson instead of round-tripping through a Go struct, and [Format]
// writes the canonical corpus layout:
//
//	{
//	  "breakingCommit" : "0a1b2c3",
//	  "updatedDependency" : {
//	    "dependencyGroupID" : "org.apache.maven"
//	  }
//	}
package record

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
)

// Field paths, in gjson/sjson syntax.
const (
	PathBreakingCommit = "breakingCommit"
	PathURL            = "url"
	PathLicense        = "licenseInfo"

	PathDependency        = "updatedDependency"
	PathGroupID           = "updatedDependency.dependencyGroupID"
	PathArtifactID        = "updatedDependency.dependencyArtifactID"
	PathPreviousVersion   = "updatedDependency.previousVersion"
	PathNewVersion        = "updatedDependency.newVersion"
	PathCompareLink       = "updatedDependency.githubCompareLink"
	PathDependencyLicense = "updatedDependency.licenseInfo"
	PathRepoSlug          = "updatedDependency.githubRepoSlug"
	PathSourceLinks       = "updatedDependency.mavenSourceLinks"
)

// Record is one bump record held as raw JSON.
type Record struct {
	path string
	raw  []byte
	orig []byte
}

// Dependency is a read-only view of the updatedDependency object.
type Dependency struct {
	GroupID         string
	ArtifactID      string
	PreviousVersion string
	NewVersion      string
	CompareLink     string
	License         string
	RepoSlug        string
}

// Parse wraps data as a record. data must be a single JSON object.
func Parse(data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, bkerrors.New(bkerrors.ErrCodeInvalidRecord, "malformed JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, bkerrors.New(bkerrors.ErrCodeInvalidRecord, "record is not a JSON object")
	}
	raw := append([]byte(nil), data...)
	return &Record{raw: raw, orig: data}, nil
}

// Load reads and parses the record stored at path.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bkerrors.Wrap(bkerrors.ErrCodeFileNotFound, err, "record %s", path)
		}
		return nil, fmt.Errorf("read record %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.path = path
	return r, nil
}

// Path returns the file the record was loaded from, or "" for parsed data.
func (r *Record) Path() string {
	return r.path
}

// Get returns the string at path, or "" when the field is missing or not
// a string.
func (r *Record) Get(path string) string {
	res := gjson.GetBytes(r.raw, path)
	if res.Type != gjson.String {
		return ""
	}
	return res.Str
}

// Has reports whether path exists, whatever its type.
func (r *Record) Has(path string) bool {
	return gjson.GetBytes(r.raw, path).Exists()
}

// HasDependency reports whether the record carries an updatedDependency
// object.
func (r *Record) HasDependency() bool {
	return gjson.GetBytes(r.raw, PathDependency).IsObject()
}

// Set stores a string at path. Existing keys keep their position; new keys
// are appended to their enclosing object.
func (r *Record) Set(path, value string) error {
	raw, err := sjson.SetBytes(r.raw, path, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	r.raw = raw
	return nil
}

// SetStrings stores a string array at path.
func (r *Record) SetStrings(path string, values []string) error {
	if values == nil {
		values = []string{}
	}
	raw, err := sjson.SetBytes(r.raw, path, values)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	r.raw = raw
	return nil
}

// Strings returns the string elements of the array at path.
func (r *Record) Strings(path string) []string {
	var out []string
	for _, v := range gjson.GetBytes(r.raw, path).Array() {
		if v.Type == gjson.String {
			out = append(out, v.Str)
		}
	}
	return out
}

// BreakingCommit returns the breakingCommit field.
func (r *Record) BreakingCommit() string {
	return r.Get(PathBreakingCommit)
}

// Dependency returns the updatedDependency fields bumpkit works with.
func (r *Record) Dependency() Dependency {
	return Dependency{
		GroupID:         r.Get(PathGroupID),
		ArtifactID:      r.Get(PathArtifactID),
		PreviousVersion: r.Get(PathPreviousVersion),
		NewVersion:      r.Get(PathNewVersion),
		CompareLink:     r.Get(PathCompareLink),
		License:         r.Get(PathDependencyLicense),
		RepoSlug:        r.Get(PathRepoSlug),
	}
}

// Bytes returns the record in canonical corpus formatting.
func (r *Record) Bytes() ([]byte, error) {
	return Format(r.raw)
}

// Changed reports whether the canonical form differs from the bytes the
// record was parsed from.
func (r *Record) Changed() (bool, error) {
	out, err := r.Bytes()
	if err != nil {
		return false, err
	}
	return string(out) != string(r.orig), nil
}

// Save writes the canonical form to path, or to the load path when path
// is empty.
func (r *Record) Save(path string) error {
	if path == "" {
		path = r.path
	}
	if path == "" {
		return bkerrors.New(bkerrors.ErrCodeInvalidPath, "record has no path")
	}
	out, err := r.Bytes()
	if err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write record %s: %w", path, err)
	}
	r.orig = out
	return nil
}
