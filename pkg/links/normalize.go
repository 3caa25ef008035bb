package links

import (
	"context"
	"strings"

	"github.com/matzehuels/bumpkit/pkg/corpus"
	"github.com/matzehuels/bumpkit/pkg/record"
)

// Normalize strips webPrefix ("https://github.com/") from a
// tags-not-found compare link, leaving "owner/repo" in the sentence. It
// reports whether the link changed. Other links are left alone.
func Normalize(r *record.Record, webPrefix string) (bool, error) {
	link := r.Get(record.PathCompareLink)
	if webPrefix == "" || !record.IsTagsNotFound(link) {
		return false, nil
	}
	short := strings.ReplaceAll(link, webPrefix, "")
	if short == link {
		return false, nil
	}
	return true, r.Set(record.PathCompareLink, short)
}

// NormalizeStep returns the post pass applied to every record. It never
// skips, so the driver also rewrites records whose only change is the
// canonical formatting.
func NormalizeStep(webPrefix string) corpus.Step {
	return func(_ context.Context, r *record.Record) error {
		_, err := Normalize(r, webPrefix)
		return err
	}
}
