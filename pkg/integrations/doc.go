// Package integrations holds the HTTP plumbing shared by bumpkit's
// external lookups.
//
// # Overview
//
// Each remote system has its own subpackage:
//
//   - [github]: repository license, tag listing and compare-page checks
//   - [maven]: Maven Central source-jar links
//
// # Shared Infrastructure
//
// [NewHTTPClient] builds the single *http.Client used for a run. Its
// transport sets the bumpkit User-Agent and reports every request to the
// [observability.HTTPHooks] registered at startup. [Client] wraps it for
// the unauthenticated GET probes, and [CheckStatus] maps status codes to
// the sentinel errors [ErrNotFound], [ErrUnauthorized] and [ErrNetwork].
//
// [github]: github.com/matzehuels/bumpkit/pkg/integrations/github
// [maven]: github.com/matzehuels/bumpkit/pkg/integrations/maven
// [observability.HTTPHooks]: github.com/matzehuels/bumpkit/pkg/observability.HTTPHooks
package integrations
