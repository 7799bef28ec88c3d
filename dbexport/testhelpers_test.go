package dbexport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"getsupabase/restclient"
)

// row builds a restclient.Row from alternating name/value pairs.
func row(kv ...any) restclient.Row {
	r := make(restclient.Row, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		v := kv[i+1]
		if n, ok := v.(int); ok {
			v = json.Number(fmt.Sprint(n))
		}
		r = append(r, restclient.Field{Name: kv[i].(string), Value: v})
	}
	return r
}

// numberedRows returns n rows {"id": 1..n}.
func numberedRows(n int) []restclient.Row {
	rows := make([]restclient.Row, n)
	for i := range rows {
		rows[i] = row("id", i+1)
	}
	return rows
}

type pageCall struct {
	table    string
	from, to int
}

// fakeFetcher serves in-memory tables page by page.
type fakeFetcher struct {
	tables map[string][]restclient.Row
	errs   map[string]error
	calls  []pageCall
}

func (f *fakeFetcher) SelectRange(ctx context.Context, table string, from, to int) ([]restclient.Row, error) {
	f.calls = append(f.calls, pageCall{table, from, to})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.errs[table]; ok {
		return nil, err
	}
	rows := f.tables[table]
	if from >= len(rows) {
		return nil, nil
	}
	end := min(to+1, len(rows))
	return rows[from:end], nil
}

func (f *fakeFetcher) callsFor(table string) int {
	n := 0
	for _, c := range f.calls {
		if c.table == table {
			n++
		}
	}
	return n
}

type fakeCounter map[string]int64

func (c fakeCounter) Count(ctx context.Context, table string) (int64, error) {
	n, ok := c[table]
	if !ok {
		return 0, &restclient.APIError{Status: 404, Code: "PGRST205", Message: "table not found"}
	}
	return n, nil
}

func containsAll(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q:\n%s", w, got)
		}
	}
}
