package dbexport

import (
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// DuckDB uses double quotes for identifiers.
var duckdbDialect = sqlDialect{
	name:   "DuckDB",
	driver: "duckdb",
	file:   "export.duckdb",
	quote: func(ident string) string {
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	},
}
