package csv2mssql

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Type inference constants
const (
	// heuristicSampleSize limits how many non-null values the date/time
	// heuristics inspect
	heuristicSampleSize = 100
	// heuristicThreshold is the fraction of sampled values that must match
	// a heuristic before the column is classified by it
	heuristicThreshold = 0.9
)

// booleanLiterals are the recognized boolean cell values, compared
// case-insensitively. Only true and false qualify: SQL Server converts
// the strings 'true' and 'false' to BIT, while words like yes/no or t/f
// do not convert and would make the generated INSERT fail at execution.
// "0" and "1" are absent because integer parsing runs first, so numeric
// flag columns classify as BIGINT.
var booleanLiterals = map[string]struct{}{
	"true":  {},
	"false": {},
}

// datetimePattern pairs a cheap regexp gate with the time layouts it admits
type datetimePattern struct {
	pattern *regexp.Regexp
	formats []string // Multiple formats for the same pattern
}

// Common date+time patterns to detect. Date-only and time-only values are
// intentionally excluded; those are handled by the coarser heuristics that
// run after this check.
var datetimePatterns = []datetimePattern{
	// ISO8601 formats with timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339, time.RFC3339Nano},
	},
	// ISO8601 formats without timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.000"},
	},
	// ISO8601 date and time with space
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.000"},
	},
	// US formats
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}:\d{2}( (AM|PM))?$`),
		[]string{"1/2/2006 15:04:05", "1/2/2006 3:04:05 PM", "01/02/2006 15:04:05"},
	},
	// European formats
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4} \d{1,2}:\d{2}:\d{2}$`),
		[]string{"2.1.2006 15:04:05", "02.01.2006 15:04:05"},
	},
}

// isInteger checks if a value is a 64-bit integer
func isInteger(value string) bool {
	if len(value) == 0 {
		return false
	}
	first := value[0]
	if first != '+' && first != '-' && (first < '0' || first > '9') {
		return false
	}

	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

// isFloat checks if a value is a floating-point number in plain decimal
// or exponent notation. strconv.ParseFloat alone is too permissive: it
// accepts Go-only syntax such as digit-separating underscores, hex floats,
// and inf/NaN words, none of which are valid T-SQL numeric literals.
func isFloat(value string) bool {
	hasDigit := false
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '+' || r == '-' || r == '.' || r == 'e' || r == 'E':
		default:
			return false
		}
	}
	if !hasDigit {
		return false
	}

	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// isBoolean checks if a value is a recognized boolean literal
func isBoolean(value string) bool {
	_, ok := booleanLiterals[strings.ToLower(value)]
	return ok
}

// isDatetime checks if a string value represents a full date+time
func isDatetime(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	for _, dp := range datetimePatterns {
		if dp.pattern.MatchString(value) {
			// Try each format for this pattern
			for _, format := range dp.formats {
				if _, err := time.Parse(format, value); err == nil {
					return true
				}
			}
		}
	}

	return false
}

// looksLikeDate is the coarse date heuristic: a date separator plus at
// least one digit. Deliberately approximate; see looksLikeTime.
func looksLikeDate(value string) bool {
	return strings.ContainsAny(value, "-/") && containsDigit(value)
}

// looksLikeTime is the coarse time heuristic: a colon plus at least one
// digit. Both heuristics mirror presence checks rather than real parsing,
// so free text containing separators and digits can be misclassified.
func looksLikeTime(value string) bool {
	return strings.Contains(value, ":") && containsDigit(value)
}

// containsDigit reports whether the value contains an ASCII digit
func containsDigit(value string) bool {
	for _, r := range value {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// inferColumnType infers the column type from raw cell values.
//
// The checks are ordered and the first full match wins: integer, float,
// boolean, datetime. When none of those hold for every non-null value, the
// date and time heuristics are evaluated over a bounded sample with a 90%
// match threshold. Empty and all-null columns default to text.
func inferColumnType(values []string, nulls nullSet) columnType {
	nonNull := make([]string, 0, len(values))
	for _, value := range values {
		if nulls.isNull(value) {
			continue
		}
		nonNull = append(nonNull, value)
	}
	if len(nonNull) == 0 {
		return columnTypeText
	}

	if allMatch(nonNull, isInteger) {
		return columnTypeInteger
	}
	if allMatch(nonNull, isFloat) {
		return columnTypeFloat
	}
	if allMatch(nonNull, isBoolean) {
		return columnTypeBoolean
	}
	if allMatch(nonNull, isDatetime) {
		return columnTypeDatetime
	}

	sample := nonNull
	if len(sample) > heuristicSampleSize {
		sample = sample[:heuristicSampleSize]
	}
	if matchRatio(sample, looksLikeDate) > heuristicThreshold {
		return columnTypeDate
	}
	if matchRatio(sample, looksLikeTime) > heuristicThreshold {
		return columnTypeTime
	}

	return columnTypeText
}

// allMatch reports whether every value satisfies the predicate
func allMatch(values []string, predicate func(string) bool) bool {
	for _, value := range values {
		if !predicate(value) {
			return false
		}
	}
	return true
}

// matchRatio returns the fraction of values satisfying the predicate.
// An empty slice yields 0, which never crosses a threshold.
func matchRatio(values []string, predicate func(string) bool) float64 {
	if len(values) == 0 {
		return 0
	}
	matched := 0
	for _, value := range values {
		if predicate(value) {
			matched++
		}
	}
	return float64(matched) / float64(len(values))
}
