package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/pkg/logger"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync over all active indicators, or only the given ids",
		RunE:  runSync,
	}
	cmd.Flags().StringSlice("id", nil, "Indicator ids to sync instead of the active catalog")
	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.close()

	ids, _ := cmd.Flags().GetStringSlice("id")
	out := cmd.OutOrStdout()

	var report *domain.RunReport
	if len(ids) > 0 {
		report, err = app.orchestrator.RunItems(ctx, ids, printProgress(out))
	} else {
		report, err = app.orchestrator.Run(ctx, printProgress(out))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "done: %d/%d indicators, %d rows written, %d failed\n",
		report.Succeeded, report.Total, report.Rows, report.Failed)
	return nil
}

func printProgress(w io.Writer) func(domain.Progress) {
	return func(p domain.Progress) {
		label := p.Item.Label
		if label == "" {
			label = p.Item.ID
		}
		if p.Result.Success {
			fmt.Fprintf(w, "[%3d%%] %s: %d rows\n", p.Percent, label, p.Result.Count)
			return
		}
		fmt.Fprintf(w, "[%3d%%] %s: failed at %s: %s\n", p.Percent, label, p.Result.Stage, p.Result.Error)
	}
}
