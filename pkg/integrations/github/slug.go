package github

import (
	"net/url"
	"strings"
)

// RepoSlug extracts "owner/repo" from any URL whose first two path
// segments name a repository, such as a pull request, compare page or
// repository link. Empty segments are ignored. It reports false when the
// URL does not parse or has fewer than two segments.
//
//	RepoSlug("https://github.com/versly/wsdoc/pull/80") // "versly/wsdoc", true
func RepoSlug(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}

	var segs []string
	for _, s := range strings.Split(strings.Trim(u.Path, "/ "), "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) < 2 {
		return "", false
	}
	return segs[0] + "/" + segs[1], true
}

// IsWebLink reports whether raw is an http(s) URL on the GitHub web host
// (for example "github.com", or the host of a configured GitHub
// Enterprise instance). The API host and other subdomains do not match.
func IsWebLink(raw, webHost string) bool {
	if webHost == "" {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	return strings.EqualFold(u.Host, webHost)
}
