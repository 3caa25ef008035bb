package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bumpkit/pkg/integrations"
	"github.com/matzehuels/bumpkit/pkg/integrations/maven"
	"github.com/matzehuels/bumpkit/pkg/links"
)

// sourcesCommand creates the "sources" command.
func (c *CLI) sourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Add Maven Central source-jar links to records",
		Long: `Look up the sources jar of the previous and new dependency version in the
Maven repository and store both links in updatedDependency.mavenSourceLinks
when at least one of them exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client := maven.NewClient(integrations.NewHTTPClient(cfg.HTTP.Timeout.Duration), cfg.Maven.RepoURL)
			step := links.NewSources(client, loggerFromContext(ctx)).Step()

			report, err := c.newRunner(cfg).Run(ctx, "sources", step)
			return c.finish(ctx, cfg, report, err)
		},
	}
}
