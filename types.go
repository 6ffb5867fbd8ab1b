package csv2mssql

import (
	"fmt"
	"strings"
)

// Processing constants
const (
	// DefaultBatchSize is the default number of rows per INSERT statement
	DefaultBatchSize = 1000
	// MinBatchSize is the minimum allowed rows per INSERT statement
	MinBatchSize = 1
	// sniffSampleSize is the number of bytes inspected for delimiter detection
	sniffSampleSize = 2048
)

// File format delimiters
const (
	// csvDelimiter is the delimiter for CSV files
	csvDelimiter = ','
	// tsvDelimiter is the delimiter for TSV files
	tsvDelimiter = '\t'
)

// DefaultNullValues are the raw cell values treated as SQL NULL when no
// explicit sentinel list is configured.
var DefaultNullValues = []string{"", "NA", "NaN", "null", "NULL"}

// header is file header.
type header []string

// newHeader create new header.
func newHeader(h []string) header {
	return header(h)
}

// equal compare header.
func (h header) equal(h2 header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record represents one data row as a slice of raw string fields aligned
// to the header order.
type Record []string

// newRecord create new record.
func newRecord(r []string) Record {
	return Record(r)
}

// equal compare record.
func (r Record) equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// nullSet is the set of raw cell values interpreted as SQL NULL.
// Matching is exact and case-sensitive.
type nullSet map[string]struct{}

// newNullSet creates a nullSet from sentinel values. A nil or empty slice
// yields the default sentinel set.
func newNullSet(values []string) nullSet {
	if values == nil {
		values = DefaultNullValues
	}
	set := make(nullSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// isNull reports whether a raw cell value is a NULL sentinel.
func (ns nullSet) isNull(value string) bool {
	_, ok := ns[value]
	return ok
}

// columnType represents the inferred semantic type of a column
type columnType int

const (
	// columnTypeText represents free text, the fallback type
	columnTypeText columnType = iota
	// columnTypeInteger represents 64-bit integers
	columnTypeInteger
	// columnTypeFloat represents floating-point numbers
	columnTypeFloat
	// columnTypeBoolean represents boolean literals
	columnTypeBoolean
	// columnTypeDatetime represents full date+time values
	columnTypeDatetime
	// columnTypeDate represents date-only values
	columnTypeDate
	// columnTypeTime represents time-only values
	columnTypeTime
)

// SQL Server type keywords
const (
	sqlTypeBigInt    = "BIGINT"
	sqlTypeFloat     = "FLOAT"
	sqlTypeBit       = "BIT"
	sqlTypeDatetime2 = "DATETIME2"
	sqlTypeDate      = "DATE"
	sqlTypeTime      = "TIME"
	sqlTypeNVarchar  = "NVARCHAR(MAX)"
)

// sqlType returns the SQL Server type keyword for the column type
func (ct columnType) sqlType() string {
	switch ct {
	case columnTypeInteger:
		return sqlTypeBigInt
	case columnTypeFloat:
		return sqlTypeFloat
	case columnTypeBoolean:
		return sqlTypeBit
	case columnTypeDatetime:
		return sqlTypeDatetime2
	case columnTypeDate:
		return sqlTypeDate
	case columnTypeTime:
		return sqlTypeTime
	case columnTypeText:
		return sqlTypeNVarchar
	default:
		return sqlTypeNVarchar
	}
}

// String returns the SQL Server type keyword (public method)
func (ct columnType) String() string {
	return ct.sqlType()
}

// isNumeric reports whether values of this type render as bare numbers
func (ct columnType) isNumeric() bool {
	return ct == columnTypeInteger || ct == columnTypeFloat
}

// validateColumnNames checks for duplicate column names and returns error if found.
// Column name comparison is case-sensitive.
func validateColumnNames(columns []string) error {
	columnsSeen := make(map[string]bool)
	for _, col := range columns {
		trimmedCol := strings.TrimSpace(col)
		if columnsSeen[trimmedCol] {
			return fmt.Errorf("%w: %s", errDuplicateColumnName, col)
		}
		columnsSeen[trimmedCol] = true
	}
	return nil
}

// columnInfo represents column information with name and inferred type
type columnInfo struct {
	Name string
	Type columnType
}

// columnInfoList represents a collection of column information
type columnInfoList []columnInfo

// newColumnInfoList infers column information from header and data records.
// NULL sentinel values never participate in type inference.
func newColumnInfoList(header header, records []Record, nulls nullSet) columnInfoList {
	columnCount := len(header)
	if columnCount == 0 {
		return nil
	}

	columns := make(columnInfoList, columnCount)
	for i, name := range header {
		columns[i] = columnInfo{
			Name: name,
			Type: columnTypeText, // Default to TEXT
		}
	}

	if len(records) == 0 {
		return columns
	}

	for i := range columnCount {
		var values []string
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}
		columns[i].Type = inferColumnType(values, nulls)
	}

	return columns
}
