// Package csv2mssql converts tabular text files into SQL Server scripts
// containing a CREATE TABLE statement and batched INSERT statements.
//
// The package loads an entire source file into memory, infers a SQL column
// type for every column from its raw textual values, and renders a script
// that can be executed as-is in SSMS or sqlcmd. No database connection is
// ever opened; the output is plain text.
//
// # Supported inputs
//
//   - CSV and TSV files, with automatic delimiter detection for CSV
//   - gzip, bzip2, xz, and zstandard compressed variants (data.csv.gz, ...)
//   - Excel XLSX files (first sheet, first row as header)
//   - Parquet files
//
// # Basic usage
//
//	path, err := csv2mssql.Generate(ctx, csv2mssql.Options{
//	    Source: "users.csv",
//	    Table:  "dbo.Users",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", path)
//
// # Type inference
//
// Column types are decided by ordered predicate checks over the non-null
// values of each column: integer, float, boolean, datetime, then coarse
// date-like and time-like heuristics, falling back to NVARCHAR(MAX).
// Values matching a configurable NULL sentinel set (by default the empty
// string, "NA", "NaN", "null", and "NULL") are excluded from inference and
// rendered as unquoted NULL.
package csv2mssql
