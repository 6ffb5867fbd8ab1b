package csv2mssql

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFileType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want FileType
	}{
		{"data.csv", FileTypeCSV},
		{"data.CSV", FileTypeCSV},
		{"data.csv.gz", FileTypeCSV},
		{"data.csv.bz2", FileTypeCSV},
		{"data.csv.xz", FileTypeCSV},
		{"data.csv.zst", FileTypeCSV},
		{"data.tsv", FileTypeTSV},
		{"data.tsv.gz", FileTypeTSV},
		{"data.xlsx", FileTypeXLSX},
		{"data.parquet", FileTypeParquet},
		{"/path/to/data.csv", FileTypeCSV},
		{"data.json", FileTypeUnsupported},
		{"data", FileTypeUnsupported},
		{"data.gz", FileTypeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := detectFileType(tt.path); got != tt.want {
				t.Errorf("detectFileType(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDetectCompressionType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want compressionType
	}{
		{"data.csv", compressionNone},
		{"data.csv.gz", compressionGZ},
		{"data.csv.bz2", compressionBZ2},
		{"data.csv.xz", compressionXZ},
		{"data.csv.zst", compressionZSTD},
		{"data.CSV.GZ", compressionGZ},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := detectCompressionType(tt.path); got != tt.want {
				t.Errorf("detectCompressionType(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRemoveCompressionExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"data.csv.gz", "data.csv"},
		{"data.csv", "data.csv"},
		{"data.tsv.zst", "data.tsv"},
		{"archive.gz", "archive"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := removeCompressionExtension(tt.path); got != tt.want {
				t.Errorf("removeCompressionExtension(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveEncoding(t *testing.T) {
	t.Parallel()

	t.Run("utf-8 names resolve to nil", func(t *testing.T) {
		for _, name := range []string{"", "utf-8", "UTF-8", "utf8"} {
			enc, err := resolveEncoding(name)
			require.NoError(t, err)
			assert.Nil(t, enc)
		}
	})

	t.Run("known charset", func(t *testing.T) {
		enc, err := resolveEncoding("ISO-8859-1")
		require.NoError(t, err)
		assert.NotNil(t, enc)
	})

	t.Run("unknown charset", func(t *testing.T) {
		_, err := resolveEncoding("no-such-charset")
		require.ErrorIs(t, err, ErrUnknownEncoding)
	})
}

func TestFileReadSample(t *testing.T) {
	t.Parallel()

	t.Run("sample shorter than file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o600))

		sample, err := newFile(path, nil).readSample(4)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n", sample)
	})

	t.Run("sample longer than file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o600))

		sample, err := newFile(path, nil).readSample(sniffSampleSize)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n", sample)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := newFile(filepath.Join(t.TempDir(), "nope.csv"), nil).readSample(16)
		require.ErrorIs(t, err, ErrFileNotFound)
	})
}

func TestParseDelimitedFile(t *testing.T) {
	t.Parallel()

	t.Run("ragged rows tolerated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n3\n"), 0o600))

		tbl, err := newFile(path, nil).toTable(context.Background(), ',')
		require.NoError(t, err)
		assert.Len(t, tbl.getRecords(), 2)
		assert.Equal(t, Record{"3"}, tbl.getRecords()[1])
	})

	t.Run("quoted fields keep delimiters", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n\"x,y\",2\n"), 0o600))

		tbl, err := newFile(path, nil).toTable(context.Background(), ',')
		require.NoError(t, err)
		assert.Equal(t, Record{"x,y", "2"}, tbl.getRecords()[0])
	})
}
