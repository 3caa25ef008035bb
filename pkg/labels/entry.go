package labels

import "github.com/google/uuid"

// Entry is one dataset row.
type Entry struct {
	ID          string `json:"id" bson:"_id"`
	CommitHash  string `json:"commitHash" bson:"commitHash"`
	Text        string `json:"text" bson:"text"`
	Label       Label  `json:"label" bson:"label"`
	LicenseInfo string `json:"licenseInfo,omitempty" bson:"licenseInfo,omitempty"`
}

// entryNamespace scopes dataset ids so they do not collide with other
// name-based UUIDs of the same commit.
var entryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/bumpkit/labels"))

// EntryID derives the stable id of the entry for commit. Re-running the
// labeller therefore replaces rows instead of duplicating them.
func EntryID(commit string) string {
	return uuid.NewSHA1(entryNamespace, []byte(commit)).String()
}

// NewEntry creates an entry with its id filled in.
func NewEntry(commit, text string, label Label, license string) Entry {
	return Entry{
		ID:          EntryID(commit),
		CommitHash:  commit,
		Text:        text,
		Label:       label,
		LicenseInfo: license,
	}
}
