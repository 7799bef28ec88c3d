package dbexport

import (
	"fmt"
	"path/filepath"
)

// Output formats.
const (
	FormatCSV     = "csv"
	FormatTSV     = "tsv"
	FormatJSON    = "json"
	FormatSQLite  = "sqlite3"
	FormatDuckDB  = "duckdb"
	FormatParquet = "parquet"
	FormatXLSX    = "xlsx"
)

// NewWriter returns the Writer for format, storing artifacts under dir.
func NewWriter(format, dir string) (Writer, error) {
	switch format {
	case FormatCSV, FormatTSV, FormatJSON:
		return &fileWriter{dir: dir, format: format}, nil
	case FormatSQLite:
		return &sqlWriter{dialect: sqliteDialect, path: filepath.Join(dir, sqliteDialect.file)}, nil
	case FormatDuckDB:
		return &sqlWriter{dialect: duckdbDialect, path: filepath.Join(dir, duckdbDialect.file)}, nil
	case FormatParquet:
		return &parquetWriter{dir: dir}, nil
	case FormatXLSX:
		return &xlsxWriter{dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
