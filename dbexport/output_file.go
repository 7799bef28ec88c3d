package dbexport

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"getsupabase/restclient"
)

// fileWriter writes one <table>.<format> file per table.
type fileWriter struct {
	dir    string
	format string
}

func (w *fileWriter) Write(table string, cols []string, rows []restclient.Row) (string, error) {
	filename := filepath.Join(w.dir, fmt.Sprintf("%s.%s", table, w.format))
	file, err := createFile(filename)
	if err != nil {
		return "", fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	switch w.format {
	case FormatTSV:
		err = WriteDelimited(buf, '\t', cols, rows)
	case FormatJSON:
		err = WriteJSON(buf, rows)
	default:
		err = WriteDelimited(buf, ',', cols, rows)
	}
	if err != nil {
		return "", err
	}
	if err := buf.Flush(); err != nil {
		return "", fmt.Errorf("error writing %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error closing %s: %w", filename, err)
	}
	return filename, nil
}

func (w *fileWriter) Close() error { return nil }

// WriteDelimited writes the header line followed by one line per row, values
// in header order. comma is ',' for CSV and '\t' for TSV.
func WriteDelimited(out io.Writer, comma rune, cols []string, rows []restclient.Row) error {
	cw := csv.NewWriter(out)
	cw.Comma = comma
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(AlignStrings(row, cols)); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes rows as a JSON array, one object per line, keys in the
// order received.
func WriteJSON(out io.Writer, rows []restclient.Row) error {
	if _, err := io.WriteString(out, "[\n"); err != nil {
		return err
	}
	for i, row := range rows {
		b, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("error marshaling row %d: %w", i, err)
		}
		if i > 0 {
			if _, err := io.WriteString(out, ",\n"); err != nil {
				return fmt.Errorf("error writing JSON separator: %w", err)
			}
		}
		if _, err := out.Write(b); err != nil {
			return fmt.Errorf("error writing JSON row: %w", err)
		}
	}
	_, err := io.WriteString(out, "\n]\n")
	return err
}
