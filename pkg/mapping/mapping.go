// Package mapping loads the manually curated table that maps Maven
// coordinates to GitHub repositories.
//
// The table is a JSON array kept next to the corpus:
//
//	[
//	  {
//	    "updatedDependency.dependencyGroupID" : "org.apache.maven",
//	    "updatedDependency.dependencyArtifactID" : "*",
//	    "githubRepoLink" : "https://github.com/apache/maven"
//	  }
//	]
//
// An artifact id of "*" covers every artifact of the group. Lookups prefer
// an exact (group, artifact) entry and fall back to the group wildcard;
// within each kind the first entry in file order wins.
package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
	"github.com/matzehuels/bumpkit/pkg/record"
)

// Wildcard matches any artifact id of a group.
const Wildcard = "*"

// Entry is one row of the table.
type Entry struct {
	GroupID    string `json:"updatedDependency.dependencyGroupID"`
	ArtifactID string `json:"updatedDependency.dependencyArtifactID"`
	RepoLink   string `json:"githubRepoLink"`
}

type coord struct {
	group, artifact string
}

// Table is a read-only mapping table.
type Table struct {
	entries []Entry
	exact   map[coord]int
	groups  map[string]int
}

// New indexes entries. Entries with an empty RepoLink are kept for
// reporting but never returned by [Table.Lookup].
func New(entries []Entry) *Table {
	t := &Table{
		entries: entries,
		exact:   make(map[coord]int),
		groups:  make(map[string]int),
	}
	for i, e := range entries {
		if e.RepoLink == "" {
			continue
		}
		if e.ArtifactID == Wildcard {
			if _, dup := t.groups[e.GroupID]; !dup {
				t.groups[e.GroupID] = i
			}
			continue
		}
		k := coord{e.GroupID, e.ArtifactID}
		if _, dup := t.exact[k]; !dup {
			t.exact[k] = i
		}
	}
	return t
}

// Parse decodes a JSON table.
func Parse(data []byte) (*Table, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, bkerrors.Wrap(bkerrors.ErrCodeInvalidMapping, err, "decode mapping table")
	}
	for i, e := range entries {
		if e.GroupID == "" {
			return nil, bkerrors.New(bkerrors.ErrCodeInvalidMapping, "entry %d has no group id", i)
		}
	}
	return New(entries), nil
}

// Load reads the table at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bkerrors.Wrap(bkerrors.ErrCodeFileNotFound, err, "mapping table %s", path)
		}
		return nil, fmt.Errorf("read mapping table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Lookup returns the entry for a dependency.
func (t *Table) Lookup(groupID, artifactID string) (Entry, bool) {
	if i, ok := t.exact[coord{groupID, artifactID}]; ok {
		return t.entries[i], true
	}
	if i, ok := t.groups[groupID]; ok {
		return t.entries[i], true
	}
	return Entry{}, false
}

// Len returns the number of entries, including ones without a link.
func (t *Table) Len() int {
	return len(t.entries)
}

// Placeholders turns coordinates without a mapping into entries with an
// empty RepoLink, deduplicated and sorted by group then artifact, ready
// to be filled in by hand.
func Placeholders(missing []Entry) []Entry {
	seen := make(map[coord]bool)
	var out []Entry
	for _, e := range missing {
		k := coord{e.GroupID, e.ArtifactID}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Entry{GroupID: e.GroupID, ArtifactID: e.ArtifactID})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		return out[i].ArtifactID < out[j].ArtifactID
	})
	return out
}

// Encode writes entries in the corpus JSON layout.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return record.Format(data)
}
