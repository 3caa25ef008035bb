package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bumpkit/pkg/links"
	"github.com/matzehuels/bumpkit/pkg/mapping"
	"github.com/matzehuels/bumpkit/pkg/record"
)

// mappingCommand creates the mapping command group.
func (c *CLI) mappingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Inspect the manual repository mapping",
	}
	cmd.AddCommand(c.mappingMissingCommand())
	return cmd
}

// mappingMissingCommand creates the "mapping missing" subcommand.
func (c *CLI) mappingMissingCommand() *cobra.Command {
	var includeUnresolved bool

	cmd := &cobra.Command{
		Use:   "missing",
		Short: "Print mapping entries still needed by the link fixer",
		Long: `List the (groupId, artifactId) pairs of records without a repository that
the mapping table does not cover. The output is a JSON array of mapping
entries with an empty githubRepoLink, sorted by group then artifact, ready
to be completed and merged into the mapping file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			table, err := c.loadMapping(cfg)
			if err != nil {
				return err
			}
			fixer := links.NewFixer(links.FixerOptions{Table: table, IncludeUnresolved: includeUnresolved})

			spinner := newSpinner(ctx, "Scanning records...")
			spinner.Start()
			var missing []mapping.Entry
			err = c.newRunner(cfg).Scan(ctx, func(r *record.Record) error {
				if e, ok := fixer.Missing(r); ok {
					missing = append(missing, e)
				}
				return nil
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			entries := mapping.Placeholders(missing)
			out, err := mapping.Encode(entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(out))

			if len(entries) > 0 {
				printNextStep(fmt.Sprintf("Fill in %d links and add them to", len(entries)), cfg.Corpus.Mapping)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeUnresolved, "include-unresolved", false,
		`also consider records that carry a "Relevant tags were not found" note`)
	return cmd
}
