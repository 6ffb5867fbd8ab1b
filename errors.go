package csv2mssql

import "errors"

var (
	// errDuplicateColumnName is returned when a file contains duplicate column names
	errDuplicateColumnName = errors.New("duplicate column name")

	// ErrFileNotFound indicates the source file does not exist
	ErrFileNotFound = errors.New("csv2mssql: file not found")

	// ErrParse indicates the source file could not be parsed
	ErrParse = errors.New("csv2mssql: failed to parse input")

	// ErrUnsupportedFormat indicates an unsupported file format
	ErrUnsupportedFormat = errors.New("csv2mssql: unsupported file format")

	// ErrUnknownEncoding indicates an unrecognized character encoding name
	ErrUnknownEncoding = errors.New("csv2mssql: unknown encoding")

	// ErrInvalidOptions indicates missing or contradictory generation options
	ErrInvalidOptions = errors.New("csv2mssql: invalid options")
)
