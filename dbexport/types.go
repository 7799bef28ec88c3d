package dbexport

import (
	"context"
	"encoding/json"
	"errors"

	"getsupabase/restclient"
)

// PageFetcher returns rows from..to (inclusive) of a table. *restclient.Client
// implements it; tests use in-memory fakes.
type PageFetcher interface {
	SelectRange(ctx context.Context, table string, from, to int) ([]restclient.Row, error)
}

// RowCounter returns the exact row count of a table.
type RowCounter interface {
	Count(ctx context.Context, table string) (int64, error)
}

// Writer stores the rows of one table and returns the artifact path.
// Writers are only called with at least one row.
type Writer interface {
	Write(table string, cols []string, rows []restclient.Row) (string, error)
	Close() error
}

// ErrUnknownColumn is returned when a row carries a column absent from the
// header taken from the first row.
var ErrUnknownColumn = errors.New("row has a column not in the header")

// Status is the outcome of one table export.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// TableResult is Ok(Rows) when Status is StatusOK and Failed(Err) otherwise.
// An ok result with zero rows wrote no file.
type TableResult struct {
	Table  string
	Status Status
	Rows   int
	Pages  int
	Path   string
	Err    error
}

// OK reports whether the table was exported.
func (r TableResult) OK() bool {
	return r.Status == StatusOK
}

func (r TableResult) MarshalJSON() ([]byte, error) {
	out := struct {
		Table  string `json:"table"`
		Status Status `json:"status"`
		Rows   int    `json:"rows"`
		Pages  int    `json:"pages"`
		Path   string `json:"path,omitempty"`
		Error  string `json:"error,omitempty"`
	}{
		Table:  r.Table,
		Status: r.Status,
		Rows:   r.Rows,
		Pages:  r.Pages,
		Path:   r.Path,
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}
