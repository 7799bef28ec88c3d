package dbexport

import (
	"database/sql"
	"os"
)

var openSQLite = func(driver, dsn string) (*sql.DB, error) {
	return sql.Open(driver, dsn)
}
var openDuckDB = func(driver, dsn string) (*sql.DB, error) {
	return sql.Open(driver, dsn)
}
var createFile = func(name string) (*os.File, error) {
	return os.Create(name)
}
