package dbexport

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"getsupabase/restclient"
)

// DefaultPageSize is the window requested per page.
const DefaultPageSize = 1000

// FetchAll reads every row of table visible to the current credentials,
// pageSize rows at a time from offset 0. It stops at the first page shorter
// than pageSize, so a table whose size is a multiple of pageSize costs one
// extra request that returns no rows.
//
// A server that returns a short page while more rows remain (for example a
// max-rows setting below pageSize) makes the export stop early.
func FetchAll(ctx context.Context, f PageFetcher, table string, pageSize int, logger *slog.Logger) ([]restclient.Row, int, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var all []restclient.Row
	pages := 0
	for offset := 0; ; offset += pageSize {
		rows, err := f.SelectRange(ctx, table, offset, offset+pageSize-1)
		if err != nil {
			return nil, pages, fmt.Errorf("error fetching %s rows %d-%d: %w", table, offset, offset+pageSize-1, err)
		}
		pages++
		all = append(all, rows...)
		logger.Debug("page fetched", "table", table, "offset", offset, "rows", len(rows), "total", len(all))
		if len(rows) < pageSize {
			if len(rows) > 0 {
				logger.Debug("short page treated as end of data", "table", table, "offset", offset)
			}
			break
		}
	}
	return all, pages, nil
}

// ListTables prints the table names, with their exact row count when
// counter is not nil. Count failures are printed next to the table and do
// not stop the listing.
func ListTables(ctx context.Context, counter RowCounter, tables []string, out io.Writer) error {
	fmt.Fprintln(out, "Tables to export:")
	for _, table := range tables {
		if counter == nil {
			fmt.Fprintln(out, table)
			continue
		}
		n, err := counter.Count(ctx, table)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			fmt.Fprintf(out, "%s\t(error: %v)\n", table, err)
			continue
		}
		fmt.Fprintf(out, "%s\t%d\n", table, n)
	}
	return nil
}

// ListFields prints the columns of table as seen in its first row.
func ListFields(ctx context.Context, f PageFetcher, table string, out io.Writer) error {
	rows, err := f.SelectRange(ctx, table, 0, 0)
	if err != nil {
		return fmt.Errorf("error querying fields: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintf(out, "Table '%s' returned no rows; columns are unknown.\n", table)
		return nil
	}
	fmt.Fprintf(out, "Fields in table '%s':\n", table)
	fmt.Fprintln(out, "Column Name\tSample")
	for _, field := range rows[0] {
		fmt.Fprintf(out, "%s\t%s\n", field.Name, FormatValue(field.Value))
	}
	return nil
}
