// Package pkg provides the libraries behind the bumpkit command.
//
// # Overview
//
// bumpkit curates a corpus of breaking dependency updates: one JSON "bump
// record" per breaking commit. The pkg directory is organized into four
// areas:
//
//  1. Records: [record] (document access and canonical formatting) and
//     [mapping] (the manual Maven coordinate to GitHub repository table).
//  2. Passes: [corpus] drives one step over every record; [annotate],
//     [links] and [labels] provide the steps.
//  3. Integrations: [integrations/github] (licenses, tags, compare pages)
//     and [integrations/maven] (source jars), sharing the HTTP client of
//     [integrations].
//  4. Infrastructure: [config], [cache], [httputil], [errors],
//     [observability], [notify] and [buildinfo].
//
// # Data Flow
//
//	bump records (*.json)
//	         ↓
//	    [corpus] Runner (one record at a time)
//	         ↓
//	    step: [annotate] | [links] | Sources
//	         ↓
//	    GitHub REST / web, git, Maven Central
//	         ↓
//	    record rewritten in canonical form when changed
//
// # Quick Start
//
//	client, _ := github.NewClient(github.Config{Token: os.Getenv("GITHUB_TOKEN")})
//	licenses := github.NewLicenseCache(client, httputil.DefaultPolicy(), nil)
//	table, _ := mapping.Load("scripts/manual_repo_mapping.json")
//	annotator := annotate.New(licenses, table, client.WebHost(), nil)
//
//	runner := corpus.NewRunner(corpus.Options{Dirs: []string{"data/benchmark"}}, nil)
//	report, err := runner.Run(ctx, "licenses", annotator.Annotate)
package pkg
