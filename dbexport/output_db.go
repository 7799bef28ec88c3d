package dbexport

import (
	"database/sql"
	"fmt"
	"strings"

	"getsupabase/restclient"
)

const insertBatchSize = 10000

// sqlDialect covers the differences between the embedded databases.
type sqlDialect struct {
	name   string
	driver string
	file   string
	quote  func(string) string
}

// sqlWriter stores every table in one embedded database file. Each table is
// dropped and recreated with TEXT columns. The file is opened on the first
// write so a run with only empty tables leaves nothing behind.
type sqlWriter struct {
	dialect sqlDialect
	path    string
	db      *sql.DB
}

func (w *sqlWriter) open() error {
	if w.db != nil {
		return nil
	}
	var (
		db  *sql.DB
		err error
	)
	switch w.dialect.driver {
	case duckdbDialect.driver:
		db, err = openDuckDB(w.dialect.driver, w.path)
	default:
		db, err = openSQLite(w.dialect.driver, w.path)
	}
	if err != nil {
		return fmt.Errorf("error opening %s database: %w", w.dialect.name, err)
	}
	w.db = db
	return nil
}

func (w *sqlWriter) Write(table string, cols []string, rows []restclient.Row) (string, error) {
	if err := w.open(); err != nil {
		return "", err
	}
	if err := WriteTable(w.db, w.dialect, table, cols, rows); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (table: %s)", w.path, table), nil
}

func (w *sqlWriter) Close() error {
	if w.db == nil {
		return nil
	}
	err := w.db.Close()
	w.db = nil
	return err
}

// WriteTable replaces table in db with rows. Inserts are committed every
// insertBatchSize rows; nil values are stored as NULL.
func WriteTable(db *sql.DB, d sqlDialect, table string, cols []string, rows []restclient.Row) error {
	dropStmt := fmt.Sprintf("DROP TABLE IF EXISTS %s", d.quote(table))
	if _, err := db.Exec(dropStmt); err != nil {
		return fmt.Errorf("error dropping table in %s: %w", d.name, err)
	}

	colDefs := make([]string, len(cols))
	quotedCols := make([]string, len(cols))
	for i, col := range cols {
		quotedCols[i] = d.quote(col)
		colDefs[i] = quotedCols[i] + " TEXT"
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s)", d.quote(table), strings.Join(colDefs, ", "))
	if _, err := db.Exec(createStmt); err != nil {
		return fmt.Errorf("error creating table in %s: %w", d.name, err)
	}

	insertStmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", d.quote(table), strings.Join(quotedCols, ", "), strings.TrimRight(strings.Repeat("?,", len(cols)), ","))
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		if err := insertBatch(db, d, insertStmt, cols, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func insertBatch(db *sql.DB, d sqlDialect, insertStmt string, cols []string, rows []restclient.Row) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting %s transaction: %w", d.name, err)
	}
	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error preparing %s statement: %w", d.name, err)
	}
	defer stmt.Close()
	for _, row := range rows {
		if _, err := stmt.Exec(sqlValues(row, cols)...); err != nil {
			tx.Rollback()
			return fmt.Errorf("error inserting row into %s: %w", d.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing %s transaction: %w", d.name, err)
	}
	return nil
}

// sqlValues renders row for a TEXT column insert, keeping NULLs.
func sqlValues(row restclient.Row, cols []string) []any {
	vals := AlignValues(row, cols)
	for i, v := range vals {
		if v != nil {
			vals[i] = FormatValue(v)
		}
	}
	return vals
}
