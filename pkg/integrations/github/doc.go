// Package github resolves the GitHub facts bumpkit writes into bump
// records.
//
// # Overview
//
//   - [RepoSlug] turns any repository-scoped URL into "owner/repo".
//   - [LicenseCache] looks up the SPDX license of a repository once per run,
//     retrying HTTP 401 answers a fixed number of times.
//   - [APITagLister] and [GitTagLister] list tag names through the REST API
//     or the git protocol; [CachedTagLister] memoizes either.
//   - [FindVersionTag] picks the tag for a dependency version.
//   - [Client.CompareURL] builds and checks a compare page between two tags.
//
// # Usage
//
//	client, err := github.NewClient(github.Config{Token: os.Getenv("GITHUB_TOKEN")})
//	if err != nil {
//	    return err
//	}
//	licenses := github.NewLicenseCache(client, httputil.DefaultPolicy(), logger)
//	spdx := licenses.Lookup(ctx, "apache/maven") // "Apache-2.0"
//
//	tags, _ := github.NewAPITagLister(client).ListTags(ctx, "apache/maven")
//	from, _ := github.FindVersionTag(tags, "3.9.5")
//	to, _ := github.FindVersionTag(tags, "3.9.6")
//	link, ok := client.CompareURL(ctx, client.RepoURL("apache/maven"), from, to)
//
// # Authentication
//
// The token is optional but recommended. Without a token, the REST API
// allows 60 requests per hour; with one, 5000. Compare pages are always
// fetched without credentials.
package github
