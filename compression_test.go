package csv2mssql

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionRoundTrip(t *testing.T) {
	t.Parallel()

	payload := []byte("id,name\n1,Alice\n2,Bob\n")

	// bzip2 is read-only in the standard library, so it is excluded here
	// and covered by the reader-only test below
	for _, compression := range []compressionType{compressionNone, compressionGZ, compressionXZ, compressionZSTD} {
		var buf bytes.Buffer

		writer, cleanup, err := newCompressionWriter(&buf, compression)
		require.NoError(t, err)
		_, err = writer.Write(payload)
		require.NoError(t, err)
		require.NoError(t, cleanup())

		reader, readerCleanup, err := newCompressionReader(&buf, compression)
		require.NoError(t, err)
		decompressed, err := io.ReadAll(reader)
		require.NoError(t, err)
		require.NoError(t, readerCleanup())

		assert.Equal(t, payload, decompressed, "compression type %v", compression)
	}
}

func TestCompressionWriterBZ2Unsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, _, err := newCompressionWriter(&buf, compressionBZ2)
	require.Error(t, err)
}
