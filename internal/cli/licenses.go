package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bumpkit/pkg/annotate"
	"github.com/matzehuels/bumpkit/pkg/integrations/github"
)

// licensesCommand creates the "licenses" command.
func (c *CLI) licensesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "licenses",
		Short: "Annotate records with dependency and project licenses",
		Long: `Resolve the GitHub repository of every updated dependency and write its
SPDX license and owner/repo slug into the record. The license of the project
named by the top-level url is written too.

Repositories come from the GitHub compare link of the record, or from the
manual mapping table when there is none. Each repository is looked up once
per run.`,
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

			licenses := github.NewLicenseCache(client, c.retryPolicy(cfg), logger)
			annotator := annotate.New(licenses, table, client.WebHost(), logger)

			report, err := c.newRunner(cfg).Run(ctx, "licenses", annotator.Annotate)
			if report != nil {
				printDetail("%d repositories looked up", licenses.Len())
			}
			return c.finish(ctx, cfg, report, err)
		},
	}
}
