package dbexport

import (
	"fmt"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"getsupabase/restclient"
)

const parquetBatchSize = 10000

// parquetWriter writes <table>.parquet with one nullable UTF-8 column per header column.
type parquetWriter struct {
	dir string
}

func (w *parquetWriter) Write(table string, cols []string, rows []restclient.Row) (string, error) {
	filename := filepath.Join(w.dir, table+".parquet")
	if err := WriteParquet(filename, cols, rows); err != nil {
		return "", err
	}
	return filename, nil
}

func (w *parquetWriter) Close() error { return nil }

// WriteParquet exports rows to a Snappy compressed Parquet file.
func WriteParquet(filePath string, cols []string, rows []restclient.Row) error {
	fields := make([]arrow.Field, len(cols))
	for i, col := range cols {
		fields[i] = arrow.Field{Name: col, Type: arrow.BinaryTypes.String, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	file, err := createFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	pw, err := pqarrow.NewFileWriter(schema, file, props, pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()
	for start := 0; start < len(rows); start += parquetBatchSize {
		end := min(start+parquetBatchSize, len(rows))
		for _, row := range rows[start:end] {
			for i, v := range AlignValues(row, cols) {
				sb := b.Field(i).(*array.StringBuilder)
				if v == nil {
					sb.AppendNull()
				} else {
					sb.Append(FormatValue(v))
				}
			}
		}
		rec := b.NewRecord()
		err := pw.Write(rec)
		rec.Release()
		if err != nil {
			pw.Close()
			return fmt.Errorf("parquet write error: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("error closing parquet writer: %w", err)
	}
	return nil
}
