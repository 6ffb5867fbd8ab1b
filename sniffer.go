package csv2mssql

import "strings"

// candidateDelimiters are the delimiters considered during sniffing, in
// preference order for tie-breaking.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// sniffDelimiter guesses the field delimiter from a leading sample of the
// source file, typically its first 2KB.
//
// For each candidate the occurrence count per line is computed; a candidate
// scores when every sampled line contains the same non-zero count, and the
// most frequent consistent candidate wins. Detection never fails loudly:
// when no candidate is consistent, the comma is returned.
func sniffDelimiter(sample string) rune {
	lines := sampleLines(sample)
	if len(lines) == 0 {
		return csvDelimiter
	}

	bestDelimiter := csvDelimiter
	bestCount := 0
	for _, candidate := range candidateDelimiters {
		count, consistent := consistentCount(lines, candidate)
		if consistent && count > bestCount {
			bestDelimiter = candidate
			bestCount = count
		}
	}

	return bestDelimiter
}

// sampleLines splits the sample into complete non-empty lines. The final
// line is dropped unless the sample ends with a newline, since a truncated
// sample may cut a line (and its delimiter counts) in half.
func sampleLines(sample string) []string {
	if sample == "" {
		return nil
	}

	terminated := strings.HasSuffix(sample, "\n")
	lines := strings.Split(strings.ReplaceAll(sample, "\r\n", "\n"), "\n")
	if !terminated && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}

	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
	}
	return result
}

// consistentCount returns the per-line occurrence count of the delimiter
// when it is identical and non-zero across all lines.
func consistentCount(lines []string, delimiter rune) (int, bool) {
	count := strings.Count(lines[0], string(delimiter))
	if count == 0 {
		return 0, false
	}
	for _, line := range lines[1:] {
		if strings.Count(line, string(delimiter)) != count {
			return 0, false
		}
	}
	return count, true
}
