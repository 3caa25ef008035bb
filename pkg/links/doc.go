// Package links repairs and normalizes the GitHub compare links of bump
// records.
//
// The [Fixer] revisits records whose dependency repository was unknown
// when the corpus was mined. It finds the repository in the manual
// mapping table, lists its tags, picks the tags of the previous and new
// dependency version and stores the compare URL between them. When no
// usable tag pair exists the record gets a "relevant tags were not found"
// sentinel naming the repository.
//
// [Normalize] is the post pass that runs over every record afterwards. It
// shortens those sentinels to the owner/repo form and rewrites each file
// in the canonical corpus formatting.
//
// [Sources] adds the Maven Central source-jar links of both dependency
// versions.
package links
