package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"getsupabase/dbexport"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every configured table (default command)",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	return withClient(cmd, func(ctx context.Context, s *session) error {
		return exportTables(ctx, s, dbexport.ResolveTables(s.cfg.Export.Tables), flagStrict)
	})
}

// exportTables runs the exporter, prints the summary and writes the
// optional summary and metrics files. With strict set, failed tables turn
// into an error.
func exportTables(ctx context.Context, s *session, tables []string, strict bool) error {
	var metrics *dbexport.Metrics
	if flagMetricsFile != "" {
		metrics = dbexport.NewMetrics()
	}
	e := dbexport.New(s.client, dbexport.Options{
		OutputDir: s.cfg.Export.OutputDir,
		Format:    s.cfg.Export.Format,
		PageSize:  s.cfg.Export.PageSize,
		Mode:      s.cfg.Mode().String(),
		Out:       s.out,
		Logger:    s.logger,
		Metrics:   metrics,
	})
	summary, runErr := e.Run(ctx, tables)
	printSummary(s.out, summary)

	if flagSummary != "" {
		if err := dbexport.WriteSummary(flagSummary, summary); err != nil {
			return err
		}
	}
	if metrics != nil {
		if err := metrics.WriteTextfile(flagMetricsFile); err != nil {
			return fmt.Errorf("error writing metrics: %w", err)
		}
	}
	if runErr != nil {
		return runErr
	}
	if failed := summary.Failed(); strict && len(failed) > 0 {
		if len(failed) == 1 {
			return withTableHint(failed[0].Err)
		}
		return fmt.Errorf("%d of %d tables failed", len(failed), len(summary.Results))
	}
	return nil
}

func printSummary(out io.Writer, s *dbexport.Summary) {
	fmt.Fprintf(out, "\nDone in %s: %s\n", s.Duration().Round(time.Millisecond), s)
	for _, r := range s.Failed() {
		fmt.Fprintf(out, "  %s: %v\n", r.Table, r.Err)
		if hint := tableHint(r.Err); hint != "" {
			fmt.Fprintf(out, "    %s\n", hint)
		}
	}
	fmt.Fprintf(out, "Files are in %s/\n", s.OutputDir)
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
