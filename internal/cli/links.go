package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bumpkit/pkg/links"
	"github.com/matzehuels/bumpkit/pkg/notify"
)

// linksCommand creates the "links" command.
func (c *CLI) linksCommand() *cobra.Command {
	var includeUnresolved bool

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Repair compare links of records without a known repository",
		Long: `Find the repository of records whose compare link is missing in the manual
mapping table, match the previous and new dependency version against the
repository tags and store the compare URL between them. Records whose tags
cannot be matched get a "Relevant tags were not found" note.

A normalization pass over every record runs afterwards (see "normalize").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			table, err := c.loadMapping(cfg)
			if err != nil {
				return err
			}
			client, err := c.newGitHubClient(cfg)
			if err != nil {
				return err
			}
			store, err := openCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			tags, err := c.newTagLister(cfg, client, store)
			if err != nil {
				return err
			}
			fixer := links.NewFixer(links.FixerOptions{
				Table:             table,
				Tags:              tags,
				Comparer:          client,
				IncludeUnresolved: includeUnresolved,
				Logger:            logger,
			})

			runner := c.newRunner(cfg)
			report, err := runner.Run(ctx, "links", fixer.Step())
			fixErr := c.conclude(report, err)
			if err != nil {
				c.notify(ctx, cfg, notify.FromReport(report))
				return fixErr
			}

			normReport, err := runner.Run(ctx, "normalize", links.NormalizeStep(webPrefix(cfg)))
			normErr := c.conclude(normReport, err)
			c.notify(ctx, cfg, notify.FromReports(report, normReport))
			if normErr != nil {
				return normErr
			}
			return fixErr
		},
	}

	cmd.Flags().BoolVar(&includeUnresolved, "include-unresolved", false,
		`also retry records that already carry a "Relevant tags were not found" note`)
	cmd.AddCommand(c.guessCommand())
	return cmd
}

// guessCommand creates the "links guess" command.
func (c *CLI) guessCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "guess",
		Short: "Fill in missing compare links from the dependency coordinates",
		Long: `For records without a compare link, guess the dependency repository as
<second groupId segment>/<artifactId>, look for exactly one tag per version
(tag names compared with everything but digits and dots removed) and store
the compare URL between them.

Records whose guessed repository does not exist get the "A GitHub repository
could not be found" note that "links" later resolves through the mapping;
records without a matching tag pair get a "Relevant tags were not found" note.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client, err := c.newGitHubClient(cfg)
			if err != nil {
				return err
			}
			store, err := openCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			tags, err := c.newTagLister(cfg, client, store)
			if err != nil {
				return err
			}
			guesser := links.NewGuesser(links.GuesserOptions{
				Tags:      tags,
				WebPrefix: webPrefix(cfg),
				Logger:    loggerFromContext(ctx),
			})

			report, err := c.newRunner(cfg).Run(ctx, "guess", guesser.Step())
			return c.finish(ctx, cfg, report, err)
		},
	}
}

// normalizeCommand creates the "normalize" command.
func (c *CLI) normalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Shorten tags-not-found notes and rewrite records canonically",
		Long: `Strip the GitHub web prefix from "Relevant tags were not found" notes so
they name the repository as owner/repo, and rewrite every record with the
canonical corpus formatting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			report, err := c.newRunner(cfg).Run(ctx, "normalize", links.NormalizeStep(webPrefix(cfg)))
			return c.finish(ctx, cfg, report, err)
		},
	}
}
