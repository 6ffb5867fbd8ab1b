package csv2mssql

import (
	"fmt"
	"strconv"
	"strings"
)

// batchSeparator is the directive understood by SSMS and sqlcmd that ends
// a statement batch.
const batchSeparator = "GO"

// noRowsComment replaces the insert section when the source holds no data
// rows. Emitting an INSERT with an empty VALUES clause would be invalid
// T-SQL.
const noRowsComment = "-- No rows to insert."

// bracketIdent quotes an identifier with square brackets, doubling any
// embedded closing bracket, so reserved words and names with spaces stay
// syntactically a single identifier.
func bracketIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// quoteString renders a Unicode string literal with every single quote
// doubled. Escaping covers every occurrence so no value can break out of
// the literal.
func quoteString(value string) string {
	return "N'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// renderValue converts one cell into a SQL Server literal.
//
// NULL sentinels become the unquoted NULL keyword. Numeric columns render
// bare numbers: integers without a decimal point, floats with their
// decimal representation preserved. Everything else, including booleans
// and date/time values, renders as a quoted N'...' literal.
func renderValue(value string, colType columnType, nulls nullSet) string {
	if nulls.isNull(value) {
		return "NULL"
	}

	if colType.isNumeric() {
		if literal, ok := numericLiteral(value, colType); ok {
			return literal
		}
		// A value that slipped past inference still must not break the
		// statement, so fall through to a quoted literal.
	}

	return quoteString(value)
}

// numericLiteral renders a bare numeric literal, truncating integer values
// that carry a fractional representation. Float values must satisfy
// isFloat, not merely strconv.ParseFloat, so Go-only syntax never reaches
// the script as a bare literal.
func numericLiteral(value string, colType columnType) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if colType == columnTypeInteger {
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		if isFloat(trimmed) {
			f, _ := strconv.ParseFloat(trimmed, 64)
			return strconv.FormatInt(int64(f), 10), true
		}
		return "", false
	}

	if isFloat(trimmed) {
		return trimmed, true
	}
	return "", false
}

// buildCreateTable renders the schema block: a conditional DROP of any
// pre-existing table with the same fully-qualified name, followed by the
// CREATE TABLE statement. The table name is emitted as given so
// schema-qualified names like dbo.Users work unchanged.
func buildCreateTable(columns columnInfoList, tableName string) string {
	columnDefs := make([]string, 0, len(columns))
	for _, col := range columns {
		columnDefs = append(columnDefs, bracketIdent(col.Name)+" "+col.Type.sqlType())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "IF OBJECT_ID(N'%s', N'U') IS NOT NULL DROP TABLE %s;\n", tableName, tableName)
	sb.WriteString(batchSeparator)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "CREATE TABLE %s (\n    %s\n);\n", tableName, strings.Join(columnDefs, ",\n    "))
	sb.WriteString(batchSeparator)
	return sb.String()
}

// buildInserts renders multi-row INSERT statements in batches of at most
// batchSize rows, preserving the original row order within and across
// batches. Zero records yield the no-rows comment instead of a statement.
func buildInserts(records []Record, columns columnInfoList, tableName string, batchSize int, nulls nullSet) string {
	if len(records) == 0 {
		return noRowsComment
	}
	if batchSize < MinBatchSize {
		batchSize = DefaultBatchSize
	}

	idents := make([]string, 0, len(columns))
	for _, col := range columns {
		idents = append(idents, bracketIdent(col.Name))
	}
	columnList := strings.Join(idents, ", ")

	statements := make([]string, 0, (len(records)+batchSize-1)/batchSize)
	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))

		tuples := make([]string, 0, end-start)
		for _, record := range records[start:end] {
			tuples = append(tuples, renderTuple(record, columns, nulls))
		}

		statements = append(statements, fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES\n%s;\n%s",
			tableName, columnList, strings.Join(tuples, ",\n"), batchSeparator,
		))
	}

	return strings.Join(statements, "\n")
}

// renderTuple renders one parenthesized value tuple aligned to the column
// order. Cells missing from a short record render as NULL.
func renderTuple(record Record, columns columnInfoList, nulls nullSet) string {
	values := make([]string, len(columns))
	for i, col := range columns {
		if i >= len(record) {
			values[i] = "NULL"
			continue
		}
		values[i] = renderValue(record[i], col.Type, nulls)
	}
	return "(" + strings.Join(values, ", ") + ")"
}
