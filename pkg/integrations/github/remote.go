package github

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/matzehuels/bumpkit/pkg/integrations"
)

// GitTagLister lists tags over the git smart HTTP protocol, the
// equivalent of `git ls-remote --tags`. It costs one request per
// repository regardless of the number of tags and does not count against
// the REST API rate limit.
type GitTagLister struct {
	client *Client
}

// NewGitTagLister creates a lister that talks to the client's web host.
func NewGitTagLister(client *Client) *GitTagLister {
	return &GitTagLister{client: client}
}

// ListTags returns the short names of refs/tags/* on the remote. Peeled
// entries are skipped. The smart protocol does not preserve advertisement
// order, so names are sorted in descending byte order, which matches the
// REST API for the common vX.Y.Z naming.
func (l *GitTagLister) ListTags(ctx context.Context, slug string) ([]string, error) {
	if slug == "" {
		return nil, nil
	}

	var tags []string
	err := withSlug(ctx, slug, func(owner, repo string) error {
		remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
			Name: "origin",
			URLs: []string{l.client.RepoURL(owner+"/"+repo) + ".git"},
		})

		refs, err := remote.ListContext(ctx, &git.ListOptions{
			Auth:          l.auth(),
			PeelingOption: git.IgnorePeeled,
		})
		if err != nil {
			if errors.Is(err, transport.ErrEmptyRemoteRepository) {
				return nil
			}
			if errors.Is(err, transport.ErrRepositoryNotFound) {
				return fmt.Errorf("ls-remote %s: %w", slug, integrations.ErrNotFound)
			}
			return fmt.Errorf("ls-remote %s: %w", slug, err)
		}

		for _, ref := range refs {
			if !ref.Name().IsTag() {
				continue
			}
			name := ref.Name().Short()
			if strings.HasSuffix(name, "^{}") {
				continue
			}
			tags = append(tags, name)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(tags)))
		return nil
	})
	return tags, err
}

func (l *GitTagLister) auth() transport.AuthMethod {
	if l.client.token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: "x-access-token", Password: l.client.token}
}
