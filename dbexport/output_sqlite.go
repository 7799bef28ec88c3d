package dbexport

import (
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteDialect = sqlDialect{
	name:   "SQLite3",
	driver: "sqlite3",
	file:   "export.sqlite3",
	quote: func(ident string) string {
		return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
	},
}
