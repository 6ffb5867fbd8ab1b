package csv2mssql

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/array"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// FileType represents supported input file types. Compression is detected
// separately from the extension chain, so data.csv.gz is FileTypeCSV with
// gzip compression.
type FileType int

const (
	// FileTypeCSV represents CSV file type
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeXLSX represents Excel XLSX file type
	FileTypeXLSX
	// FileTypeParquet represents Parquet file type
	FileTypeParquet
	// FileTypeUnsupported represents unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	// extCSV is the CSV file extension
	extCSV = ".csv"
	// extTSV is the TSV file extension
	extTSV = ".tsv"
	// extXLSX is the Excel XLSX file extension
	extXLSX = ".xlsx"
	// extParquet is the Parquet file extension
	extParquet = ".parquet"
	// extSQL is the output script extension
	extSQL = ".sql"
)

// detectFileType detects the base file type from the extension, ignoring
// any trailing compression extension
func detectFileType(path string) FileType {
	basePath := removeCompressionExtension(path)

	switch strings.ToLower(filepath.Ext(basePath)) {
	case extCSV:
		return FileTypeCSV
	case extTSV:
		return FileTypeTSV
	case extXLSX:
		return FileTypeXLSX
	case extParquet:
		return FileTypeParquet
	default:
		return FileTypeUnsupported
	}
}

// file represents an input file that can be loaded into a table
type file struct {
	path     string
	fileType FileType
	encoding encoding.Encoding
}

// newFile creates a new file with an optional character encoding. A nil
// encoding means the input is consumed as UTF-8.
func newFile(path string, enc encoding.Encoding) *file {
	return &file{
		path:     path,
		fileType: detectFileType(path),
		encoding: enc,
	}
}

// resolveEncoding maps an IANA charset name to a text encoding. UTF-8 names
// and the empty string resolve to nil, meaning no transformation.
func resolveEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// openReader opens the file and returns a reader with decompression and
// character decoding applied. The cleanup function must be called after
// reading.
func (f *file) openReader() (io.Reader, func() error, error) {
	osFile, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, f.path)
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	reader, cleanup, err := newCompressionReader(osFile, detectCompressionType(f.path))
	if err != nil {
		_ = osFile.Close()
		return nil, nil, err
	}

	if f.encoding != nil {
		reader = transform.NewReader(reader, f.encoding.NewDecoder())
	}

	compositeCleanup := func() error {
		var cleanupErr error
		if cleanup != nil {
			cleanupErr = cleanup()
		}
		if closeErr := osFile.Close(); closeErr != nil && cleanupErr == nil {
			cleanupErr = closeErr
		}
		return cleanupErr
	}
	return reader, compositeCleanup, nil
}

// readSample reads up to n decoded bytes from the start of the file for
// delimiter sniffing
func (f *file) readSample(n int) (string, error) {
	reader, cleanup, err := f.openReader()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = cleanup() // Ignore close error for a read-only sample
	}()

	sample := make([]byte, n)
	read, err := io.ReadFull(reader, sample)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("failed to read sample: %w", err)
	}
	return string(sample[:read]), nil
}

// toTable loads the file into an in-memory table. The delimiter applies to
// delimited text formats only.
func (f *file) toTable(ctx context.Context, delimiter rune) (*table, error) {
	switch f.fileType {
	case FileTypeCSV, FileTypeTSV:
		return f.parseDelimitedFile(delimiter)
	case FileTypeXLSX:
		return f.parseXLSX()
	case FileTypeParquet:
		return f.parseParquet(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.path)
	}
}

// parseDelimitedFile parses CSV or TSV content with the given delimiter
func (f *file) parseDelimitedFile(delimiter rune) (*table, error) {
	reader, cleanup, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cleanup() // Ignore close error after a full read
	}()

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = -1 // Tolerate ragged rows
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, f.path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file: %s", ErrParse, f.path)
	}

	if err := validateColumnNames(records[0]); err != nil {
		return nil, err
	}

	tableRecords := make([]Record, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		tableRecords = append(tableRecords, newRecord(records[i]))
	}

	return newTable(newHeader(records[0]), tableRecords), nil
}

// parseXLSX parses the first sheet of an Excel workbook, treating the first
// row as the header
func (f *file) parseXLSX() (*table, error) {
	reader, cleanup, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cleanup() // Ignore close error after a full read
	}()

	// excelize needs random access, so buffer the (possibly decompressed)
	// content in memory
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, f.path, err)
	}
	xlsxFile, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, f.path, err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("%w: no sheets found in Excel file: %s", ErrParse, f.path)
	}

	// Only the first sheet maps to the target table
	rows, err := xlsxFile.GetRows(sheetNames[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %s: %v", ErrParse, sheetNames[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty in Excel file: %s", ErrParse, sheetNames[0], f.path)
	}

	if err := validateColumnNames(rows[0]); err != nil {
		return nil, err
	}

	headerRow := newHeader(rows[0])
	records := make([]Record, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		// excelize trims trailing empty cells, so pad to the header width
		row := rows[i]
		if len(row) < len(headerRow) {
			padded := make([]string, len(headerRow))
			copy(padded, row)
			row = padded
		}
		records = append(records, newRecord(row))
	}

	return newTable(headerRow, records), nil
}

// parseParquet reads a whole Parquet file through the arrow reader and
// stringifies every cell. Parquet-level nulls surface as empty strings,
// which the default sentinel set renders as SQL NULL.
func (f *file) parseParquet(ctx context.Context) (*table, error) {
	reader, cleanup, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cleanup() // Ignore close error after a full read
	}()

	// Parquet requires random access
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, f.path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty parquet file: %s", ErrParse, f.path)
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, f.path, err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, f.path, err)
	}

	arrowTable, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, f.path, err)
	}
	defer arrowTable.Release()

	schema := arrowTable.Schema()
	headerRow := make(header, schema.NumFields())
	for i, field := range schema.Fields() {
		headerRow[i] = field.Name
	}
	if err := validateColumnNames(headerRow); err != nil {
		return nil, err
	}

	tableReader := array.NewTableReader(arrowTable, 0)
	defer tableReader.Release()

	var records []Record
	for tableReader.Next() {
		batch := tableReader.Record()
		numRows := batch.NumRows()
		for i := range numRows {
			row := make(Record, batch.NumCols())
			for j, col := range batch.Columns() {
				if col.IsNull(int(i)) {
					row[j] = ""
					continue
				}
				row[j] = col.ValueStr(int(i))
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, f.path, err)
	}

	return newTable(headerRow, records), nil
}
