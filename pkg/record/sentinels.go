package record

import "strings"

// Sentinel values written into records when a lookup cannot produce a
// real value. They are part of the published corpus format and must not
// change.
const (
	// NoLicenseFound replaces a license that could not be determined.
	NoLicenseFound = "No license found"

	// RepositoryNotFound replaces a slug that could not be determined.
	RepositoryNotFound = "Repository not found"

	// RepositoryUnresolved is the compare link of a record whose
	// dependency repository is unknown. The link fixer looks for it.
	RepositoryUnresolved = "A GitHub repository could not be found for the updated dependency."

	// NoAssertion is the SPDX identifier GitHub reports for a license file
	// it cannot classify.
	NoAssertion = "NOASSERTION"

	// TagsNotFoundMarker prefixes every compare link written by
	// [TagsNotFound].
	TagsNotFoundMarker = "Relevant tags were not found in the"
)

// TagsNotFound is the compare link written when the repository of a
// dependency is known but no tag pair for its versions exists.
func TagsNotFound(repo string) string {
	return TagsNotFoundMarker + " GitHub repository " + repo + " for the updated dependency."
}

// IsTagsNotFound reports whether link is a [TagsNotFound] sentinel.
func IsTagsNotFound(link string) bool {
	return strings.Contains(link, TagsNotFoundMarker)
}

// HasUsableLicense reports whether license names an actual license
// rather than one of the "unknown" markers.
func HasUsableLicense(license string) bool {
	return license != "" && license != NoLicenseFound && license != NoAssertion
}
