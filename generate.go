package csv2mssql

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// outputSuffix is appended to the source base name when no output path is
// configured.
const outputSuffix = "_mssql"

// Options configures a single script generation run.
type Options struct {
	// Source is the input file path (required)
	Source string
	// Table is the target table identifier, optionally schema-qualified
	// like dbo.Users (required)
	Table string
	// Out is the output script path. Empty derives <source base>_mssql.sql
	// next to the source file. A compression extension (.gz, .xz, .zst)
	// compresses the script.
	Out string
	// Encoding is the IANA charset name of the input. Empty means UTF-8.
	Encoding string
	// Delimiter overrides delimiter detection for delimited text inputs.
	// Zero means auto-detect (TSV by extension, sniffing for CSV).
	Delimiter rune
	// NullValues are the raw cell values rendered as SQL NULL. Nil selects
	// DefaultNullValues; an explicit empty slice disables NULL handling.
	NullValues []string
	// Limit caps the number of processed rows. Zero or negative means no cap.
	Limit int
	// BatchSize is the maximum number of rows per INSERT statement.
	// Values below MinBatchSize select DefaultBatchSize.
	BatchSize int
}

// validate checks required options
func (o Options) validate() error {
	if strings.TrimSpace(o.Source) == "" {
		return fmt.Errorf("%w: source path is required", ErrInvalidOptions)
	}
	if strings.TrimSpace(o.Table) == "" {
		return fmt.Errorf("%w: table name is required", ErrInvalidOptions)
	}
	return nil
}

// outPath returns the configured or derived output path
func (o Options) outPath() string {
	if o.Out != "" {
		return o.Out
	}
	base := removeCompressionExtension(o.Source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + outputSuffix + extSQL
}

// Generate converts the source file into a SQL Server script and writes it
// to the output path, which is returned on success.
//
// The whole source is loaded into memory before anything is emitted, so a
// load failure never leaves a partial output file behind. The script
// contains, in order: two header comment lines, the CREATE TABLE block, a
// blank line, and either the batched INSERT blocks or a no-rows comment.
func Generate(ctx context.Context, opts Options) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	enc, err := resolveEncoding(opts.Encoding)
	if err != nil {
		return "", err
	}

	source := newFile(opts.Source, enc)
	if source.fileType == FileTypeUnsupported {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, opts.Source)
	}

	delimiter, err := resolveDelimiter(source, opts.Delimiter)
	if err != nil {
		return "", err
	}

	tbl, err := source.toTable(ctx, delimiter)
	if err != nil {
		return "", err
	}
	tbl.limit(opts.Limit)

	nulls := newNullSet(opts.NullValues)
	columns := newColumnInfoList(tbl.getHeader(), tbl.getRecords(), nulls)

	script := assembleScript(opts.Source, opts.Table, tbl, columns, opts.BatchSize, nulls)

	outPath := opts.outPath()
	if err := writeScript(outPath, script); err != nil {
		return "", err
	}
	return outPath, nil
}

// resolveDelimiter picks the field delimiter for delimited text inputs.
// An explicit delimiter always wins; TSV is forced by extension; CSV is
// sniffed from a leading sample. Sniffing failures silently fall back to
// the comma inside sniffDelimiter, but a missing file still surfaces here.
func resolveDelimiter(source *file, explicit rune) (rune, error) {
	if explicit != 0 {
		return explicit, nil
	}

	switch source.fileType {
	case FileTypeTSV:
		return tsvDelimiter, nil
	case FileTypeCSV:
		sample, err := source.readSample(sniffSampleSize)
		if err != nil {
			return 0, err
		}
		return sniffDelimiter(sample), nil
	default:
		return csvDelimiter, nil
	}
}

// assembleScript concatenates the header comments, schema block, and
// insert blocks into the final script text
func assembleScript(sourcePath, tableName string, tbl *table, columns columnInfoList, batchSize int, nulls nullSet) string {
	var sb strings.Builder
	sb.WriteString("-- Generated for SQL Server (SSMS)\n")
	fmt.Fprintf(&sb, "-- Source: %s\n\n", filepath.Base(sourcePath))
	sb.WriteString(buildCreateTable(columns, tableName))
	sb.WriteString("\n\n")
	sb.WriteString(buildInserts(tbl.getRecords(), columns, tableName, batchSize, nulls))
	sb.WriteString("\n")
	return sb.String()
}

// writeScript writes the script to disk, compressing when the output path
// carries a compression extension
func writeScript(path, script string) error {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer, cleanup, err := newCompressionWriter(outFile, detectCompressionType(path))
	if err != nil {
		// Don't leave an empty artifact behind when the output
		// compression is unwritable (bzip2 has no stdlib writer)
		_ = outFile.Close()
		_ = os.Remove(path)
		return err
	}

	_, writeErr := writer.Write([]byte(script))

	var cleanupErr error
	if cleanup != nil {
		cleanupErr = cleanup()
	}
	if closeErr := outFile.Close(); closeErr != nil && cleanupErr == nil {
		cleanupErr = closeErr
	}

	if writeErr != nil {
		return fmt.Errorf("failed to write output file: %w", writeErr)
	}
	return cleanupErr
}
