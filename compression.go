package csv2mssql

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// compressionType represents the compression applied to a file
type compressionType int

const (
	// compressionNone represents an uncompressed file
	compressionNone compressionType = iota
	// compressionGZ represents gzip compression
	compressionGZ
	// compressionBZ2 represents bzip2 compression
	compressionBZ2
	// compressionXZ represents xz compression
	compressionXZ
	// compressionZSTD represents zstandard compression
	compressionZSTD
)

// Compression extensions
const (
	// extGZ is the gzip compression extension
	extGZ = ".gz"
	// extBZ2 is the bzip2 compression extension
	extBZ2 = ".bz2"
	// extXZ is the xz compression extension
	extXZ = ".xz"
	// extZSTD is the zstd compression extension
	extZSTD = ".zst"
)

// detectCompressionType detects the compression type from a file path
func detectCompressionType(path string) compressionType {
	path = strings.ToLower(path)

	switch {
	case strings.HasSuffix(path, extGZ):
		return compressionGZ
	case strings.HasSuffix(path, extBZ2):
		return compressionBZ2
	case strings.HasSuffix(path, extXZ):
		return compressionXZ
	case strings.HasSuffix(path, extZSTD):
		return compressionZSTD
	default:
		return compressionNone
	}
}

// removeCompressionExtension removes the compression extension from a file
// path if present
func removeCompressionExtension(path string) string {
	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(strings.ToLower(path), ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}

// newCompressionReader wraps a reader with the decompression reader matching
// the compression type. The returned cleanup function must be called after
// reading.
func newCompressionReader(reader io.Reader, compression compressionType) (io.Reader, func() error, error) {
	switch compression {
	case compressionNone:
		return reader, func() error { return nil }, nil

	case compressionGZ:
		gzReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzReader, gzReader.Close, nil

	case compressionBZ2:
		// bzip2.NewReader doesn't need closing
		return bzip2.NewReader(reader), func() error { return nil }, nil

	case compressionXZ:
		xzReader, err := xz.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		// xz.Reader doesn't have a Close method
		return xzReader, func() error { return nil }, nil

	case compressionZSTD:
		decoder, err := zstd.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return decoder, func() error {
			decoder.Close()
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported compression type for reading: %v", compression)
	}
}

// newCompressionWriter wraps a writer with the compression writer matching
// the compression type. The returned cleanup function flushes and closes the
// compressor and must be called before closing the underlying writer.
func newCompressionWriter(writer io.Writer, compression compressionType) (io.Writer, func() error, error) {
	switch compression {
	case compressionNone:
		return writer, func() error { return nil }, nil

	case compressionGZ:
		gzWriter := gzip.NewWriter(writer)
		return gzWriter, gzWriter.Close, nil

	case compressionBZ2:
		// bzip2 doesn't have a writer in the standard library
		return nil, nil, errors.New("bzip2 compression is not supported for writing")

	case compressionXZ:
		xzWriter, err := xz.NewWriter(writer)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xzWriter, xzWriter.Close, nil

	case compressionZSTD:
		zstdWriter, err := zstd.NewWriter(writer)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return zstdWriter, zstdWriter.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported compression type for writing: %v", compression)
	}
}
