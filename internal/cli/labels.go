package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bumpkit/pkg/config"
	"github.com/matzehuels/bumpkit/pkg/labels"
	"github.com/matzehuels/bumpkit/pkg/notify"
)

// labelsCommand creates the "labels" command.
func (c *CLI) labelsCommand() *cobra.Command {
	var (
		logsDir string
		sink    string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Build the pre-labelled failure dataset from build logs",
		Long: `Cut every <commit>.log build log down to the part after "[INFO] BUILD FAILURE",
suggest a failure label for it and write the result to a JSON Lines file or
a MongoDB collection ($` + config.EnvMongoURI + `).

Logs of commits whose record license is NOASSERTION or "No license found"
are left out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if logsDir != "" {
				cfg.Labels.LogsDir = logsDir
			}
			if sink != "" {
				cfg.Labels.Sink = sink
			}
			if output != "" {
				cfg.Labels.Output = output
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			prog := newProgress(logger)
			licenses := make(map[string]string)
			if err := c.newRunner(cfg).Scan(ctx, labels.Licenses(licenses)); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Collected %d record licenses", len(licenses)))

			out, err := openSink(ctx, cfg, c.opts.dryRun)
			if err != nil {
				return err
			}

			stats, err := labels.NewLabeller(cfg.Labels.LogsDir, licenses, logger).Run(ctx, out)
			if cerr := out.Close(context.WithoutCancel(ctx)); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			if toStdout(cfg) {
				logger.Info(stats.Summary())
			} else {
				printSuccess("%s", stats.Summary())
				if !c.opts.dryRun {
					printKeyValue("sink", sinkDescription(cfg))
				}
			}
			c.notify(ctx, cfg, notify.Message{Summary: stats.Summary()})
			return nil
		},
	}

	cmd.Flags().StringVar(&logsDir, "logs", "", "directory of <commit>.log files (overrides labels.logs_dir)")
	cmd.Flags().StringVar(&sink, "sink", "", "where entries go: jsonl or mongo")
	cmd.Flags().StringVarP(&output, "output", "o", "", "JSON Lines output file, - for stdout")
	return cmd
}

// openSink opens the configured dataset sink. A dry run discards entries.
func openSink(ctx context.Context, cfg *config.Config, dryRun bool) (labels.Sink, error) {
	if dryRun {
		return labels.NewJSONLSink(io.Discard), nil
	}
	switch cfg.Labels.Sink {
	case config.SinkMongo:
		if cfg.Labels.MongoURI == "" {
			return nil, fmt.Errorf("labels sink mongo needs $%s", config.EnvMongoURI)
		}
		return labels.NewMongoSink(ctx, cfg.Labels.MongoURI, cfg.Labels.Database, cfg.Labels.Collection)
	default:
		if toStdout(cfg) {
			// Hide Close so the sink does not close stdout.
			return labels.NewJSONLSink(struct{ io.Writer }{os.Stdout}), nil
		}
		f, err := os.Create(cfg.Labels.Output)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", cfg.Labels.Output, err)
		}
		return labels.NewJSONLSink(f), nil
	}
}

func sinkDescription(cfg *config.Config) string {
	if cfg.Labels.Sink == config.SinkMongo {
		return cfg.Labels.Database + "." + cfg.Labels.Collection
	}
	return cfg.Labels.Output
}

func toStdout(cfg *config.Config) bool {
	return cfg.Labels.Sink == config.SinkJSONL && cfg.Labels.Output == "-"
}
