package csv2mssql

// table represents the fully loaded contents of one input file.
type table struct {
	// header is table header.
	header header
	// records is table records, read-only once loaded.
	records []Record
}

// newTable create new table.
func newTable(header header, records []Record) *table {
	return &table{
		header:  header,
		records: records,
	}
}

// getHeader return table header.
func (t *table) getHeader() header {
	return t.header
}

// getRecords return table records.
func (t *table) getRecords() []Record {
	return t.records
}

// limit caps the number of records. A non-positive n leaves the table
// unchanged.
func (t *table) limit(n int) {
	if n > 0 && n < len(t.records) {
		t.records = t.records[:n]
	}
}

// equal compare table.
func (t *table) equal(t2 *table) bool {
	if !t.header.equal(t2.header) {
		return false
	}
	if len(t.getRecords()) != len(t2.getRecords()) {
		return false
	}
	for i, record := range t.getRecords() {
		if !record.equal(t2.getRecords()[i]) {
			return false
		}
	}
	return true
}
