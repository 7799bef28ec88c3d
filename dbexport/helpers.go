package dbexport

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"getsupabase/restclient"
)

// FormatValue renders a row value as text: nil is empty, numbers keep their
// JSON text, nested objects and arrays are compact JSON.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case json.RawMessage:
		return string(t)
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Header returns the column order of the first row.
func Header(rows []restclient.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0].Keys()
}

// CheckColumns fails when any row has a column outside cols. Rows missing a
// column are accepted; the cell is left empty.
func CheckColumns(rows []restclient.Row, cols []string) error {
	known := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		known[c] = struct{}{}
	}
	for i, row := range rows {
		for _, f := range row {
			if _, ok := known[f.Name]; !ok {
				return fmt.Errorf("%w: row %d has %q, header is %s", ErrUnknownColumn, i, f.Name, strings.Join(cols, ","))
			}
		}
	}
	return nil
}

// AlignValues returns the raw values of row in cols order, nil for missing columns.
func AlignValues(row restclient.Row, cols []string) []any {
	vals := make([]any, len(cols))
	for i, c := range cols {
		if i < len(row) && row[i].Name == c {
			vals[i] = row[i].Value
			continue
		}
		vals[i], _ = row.Get(c)
	}
	return vals
}

// AlignStrings is AlignValues rendered with FormatValue.
func AlignStrings(row restclient.Row, cols []string) []string {
	vals := AlignValues(row, cols)
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = FormatValue(v)
	}
	return out
}

// validTableName rejects names that would escape the output directory.
func validTableName(table string) error {
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("empty table name")
	}
	if table == "." || table == ".." || strings.ContainsAny(table, `/\`) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}
