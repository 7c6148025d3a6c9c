package blobfs

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// zlibCompress returns the zlib (RFC 1950) compressed form of data.
// Compression failures here are a codec-internal error (out-of-memory,
// writer misuse) rather than an input-shape problem, so it is wrapped in
// ErrCompressionFailed.
func zlibCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, errWrap(ErrCompressionFailed, err)
	}
	if err := w.Close(); err != nil {
		return nil, errWrap(ErrCompressionFailed, err)
	}
	return buf.Bytes(), nil
}

// zlibDecompress inflates a zlib-compressed region and returns its first
// size decompressed bytes. A stream that yields fewer bytes fails with
// ErrDecompressionFailed; output beyond size is not read.
func zlibDecompress(data []byte, size uint32) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errWrap(ErrDecompressionFailed, err)
	}
	defer r.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, errWrap(ErrDecompressionFailed, err)
	}
	return out, nil
}
