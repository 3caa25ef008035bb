package maven

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
	"github.com/matzehuels/bumpkit/pkg/integrations"
)

// DefaultRepoURL is the Maven Central repository root.
const DefaultRepoURL = "https://repo1.maven.org/maven2"

// Client checks artifacts in a Maven repository laid out like Central.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a client for the repository at baseURL ("" selects
// [DefaultRepoURL]). A nil httpClient selects the shared default.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultRepoURL
	}
	return &Client{
		Client:  integrations.NewClient(httpClient, nil),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// SourcesJarURL returns the location of the sources jar of one artifact
// version:
//
//	{repo}/{group path}/{artifact}/{version}/{artifact}-{version}-sources.jar
func (c *Client) SourcesJarURL(groupID, artifactID, version string) (string, error) {
	for _, part := range []string{groupID, artifactID, version} {
		if err := bkerrors.ValidateCoordinate(part); err != nil {
			return "", err
		}
	}
	groupPath := strings.ReplaceAll(groupID, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s-%s-sources.jar",
		c.baseURL, groupPath, artifactID, version, artifactID, version), nil
}

// SourceLinks returns the sources jar URLs of the previous and new
// version of a dependency, in that order. The links are reported as found
// when at least one of them answers with something other than 404; a
// version without published sources still yields both links so the pair
// stays aligned.
//
// An error is returned only when neither URL could be queried.
func (c *Client) SourceLinks(ctx context.Context, groupID, artifactID, previous, next string) ([]string, bool, error) {
	links := make([]string, 0, 2)
	for _, v := range []string{previous, next} {
		u, err := c.SourcesJarURL(groupID, artifactID, v)
		if err != nil {
			return nil, false, err
		}
		links = append(links, u)
	}

	var errs []error
	found := false
	for _, u := range links {
		code, err := c.Probe(ctx, u)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if code != http.StatusNotFound {
			found = true
		}
	}

	if len(errs) == len(links) {
		return nil, false, errors.Join(errs...)
	}
	if !found {
		return nil, false, nil
	}
	return links, true, nil
}
