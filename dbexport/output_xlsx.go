package dbexport

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"getsupabase/restclient"
)

const (
	maxSheetNameLen = 31
	// Excel keeps 15 significant digits; larger integers stay text.
	maxExactXLSXInt = 1e15
)

// xlsxWriter writes <table>.xlsx with a single sheet named after the table.
type xlsxWriter struct {
	dir string
}

func (w *xlsxWriter) Write(table string, cols []string, rows []restclient.Row) (string, error) {
	filename := filepath.Join(w.dir, table+".xlsx")
	if err := WriteXLSX(filename, table, cols, rows); err != nil {
		return "", err
	}
	return filename, nil
}

func (w *xlsxWriter) Close() error { return nil }

// WriteXLSX writes a header row and one row per record. Numbers and booleans
// become typed cells, everything else text.
func WriteXLSX(filePath, table string, cols []string, rows []restclient.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(table)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := xlsxValues(row, cols)
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
	}
	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("error saving %s: %w", filePath, err)
	}
	return nil
}

func xlsxValues(row restclient.Row, cols []string) []any {
	vals := AlignValues(row, cols)
	for i, v := range vals {
		switch t := v.(type) {
		case nil, bool, string:
		case json.Number:
			vals[i] = xlsxNumber(t)
		default:
			vals[i] = FormatValue(t)
		}
	}
	return vals
}

func xlsxNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		if math.Abs(float64(i)) < maxExactXLSXInt {
			return i
		}
		return n.String()
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// sheetName strips characters Excel rejects and truncates to 31 characters.
func sheetName(table string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, table)
	if r := []rune(name); len(r) > maxSheetNameLen {
		name = string(r[:maxSheetNameLen])
	}
	return name
}
