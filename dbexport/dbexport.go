// Package dbexport copies tables from the data API into local files.
//
// An Exporter walks a list of tables one at a time. Each table is read in
// fixed-size pages (see FetchAll), checked for a consistent header, and
// handed to the Writer selected by the output format. A table that cannot be
// fetched is recorded as failed and the run moves on; a table that cannot be
// written, including one whose rows do not fit the header, aborts the run.
package dbexport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Options configures an Exporter.
type Options struct {
	OutputDir string
	Format    string
	PageSize  int
	// Mode is recorded in the summary only.
	Mode string
	// Out receives one human readable progress line per table.
	Out     io.Writer
	Logger  *slog.Logger
	Metrics *Metrics
}

// Exporter exports tables through a PageFetcher.
type Exporter struct {
	fetcher PageFetcher
	opts    Options
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Exporter. Zero options fall back to exports/, csv and
// 1000-row pages.
func New(fetcher PageFetcher, opts Options) *Exporter {
	if opts.OutputDir == "" {
		opts.OutputDir = "exports"
	}
	if opts.Format == "" {
		opts.Format = FormatCSV
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger.With(slog.String("component", "exporter")),
		now:     time.Now,
	}
}

// Run exports tables in order and returns the summary. The error is non-nil
// only when the output cannot be prepared or written; the summary then holds
// the tables processed so far.
func (e *Exporter) Run(ctx context.Context, tables []string) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		Mode:      e.opts.Mode,
		Format:    e.opts.Format,
		OutputDir: e.opts.OutputDir,
		Started:   e.now(),
	}
	defer func() {
		summary.Finished = e.now()
		e.opts.Metrics.ObserveRun(summary)
	}()

	if err := os.MkdirAll(e.opts.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("error creating output directory: %w", err)
	}
	w, err := NewWriter(e.opts.Format, e.opts.OutputDir)
	if err != nil {
		return summary, err
	}

	e.logger.Info("export started", "run_id", summary.RunID, "tables", len(tables), "format", e.opts.Format, "dir", e.opts.OutputDir)
	for _, table := range tables {
		res, err := e.exportTable(ctx, w, table)
		summary.Results = append(summary.Results, res)
		e.opts.Metrics.ObserveTable(res)
		if err != nil {
			w.Close()
			return summary, err
		}
	}
	if err := w.Close(); err != nil {
		return summary, fmt.Errorf("error closing %s output: %w", e.opts.Format, err)
	}
	e.logger.Info("export finished", "run_id", summary.RunID, "summary", summary.String())
	return summary, nil
}

// exportTable fetches and writes one table. Fetch problems are reported in
// the result; write errors, header mismatches included, are returned.
func (e *Exporter) exportTable(ctx context.Context, w Writer, table string) (TableResult, error) {
	start := e.now()
	res := TableResult{Table: table, Status: StatusFailed}
	fmt.Fprintf(e.opts.Out, "Exporting table '%s'... ", table)

	if err := validTableName(table); err != nil {
		res.Err = err
		e.skip(res)
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		e.skip(res)
		return res, nil
	}

	rows, pages, err := FetchAll(ctx, e.fetcher, table, e.opts.PageSize, e.logger)
	res.Pages = pages
	if err != nil {
		res.Err = err
		e.skip(res)
		return res, nil
	}
	if len(rows) == 0 {
		res.Status = StatusOK
		fmt.Fprintln(e.opts.Out, "empty, no file written")
		return res, nil
	}

	cols := Header(rows)
	if err := CheckColumns(rows, cols); err != nil {
		res.Err = err
		fmt.Fprintf(e.opts.Out, "FAILED (%v)\n", err)
		return res, fmt.Errorf("error writing table %s: %w", table, err)
	}

	path, err := w.Write(table, cols, rows)
	if err != nil {
		res.Err = err
		fmt.Fprintf(e.opts.Out, "FAILED (%v)\n", err)
		return res, fmt.Errorf("error writing table %s: %w", table, err)
	}
	res.Status = StatusOK
	res.Rows = len(rows)
	res.Path = path
	fmt.Fprintf(e.opts.Out, "%d rows written to %s in %s\n", res.Rows, path, e.now().Sub(start).Round(time.Millisecond))
	return res, nil
}

func (e *Exporter) skip(res TableResult) {
	fmt.Fprintf(e.opts.Out, "SKIP (%v)\n", res.Err)
	e.logger.Warn("table skipped", "table", res.Table, "error", res.Err)
}
