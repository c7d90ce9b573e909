package cipher

import (
	"bytes"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

var (
	errCompressionFailed   = errors.New("cipher: compression failed")
	errDecompressionFailed = errors.New("cipher: decompression failed")
)

// CompressionLevel controls the speed/ratio tradeoff.
type CompressionLevel int

const (
	CompressionFast    CompressionLevel = iota // Fastest, lower ratio
	CompressionDefault                         // Balanced
	CompressionBest                            // Best ratio, slower
)

// ParseCompressionLevel maps a config string to a level.
func ParseCompressionLevel(s string) (CompressionLevel, error) {
	switch s {
	case "fast":
		return CompressionFast, nil
	case "", "default":
		return CompressionDefault, nil
	case "best":
		return CompressionBest, nil
	default:
		return CompressionDefault, errors.Errorf("cipher: unknown compression level %q", s)
	}
}

// compressorPool reuses LZ4 writers to reduce allocations.
var compressorPool = sync.Pool{
	New: func() interface{} {
		return lz4.NewWriter(nil)
	},
}

// decompressorPool reuses LZ4 readers.
var decompressorPool = sync.Pool{
	New: func() interface{} {
		return lz4.NewReader(nil)
	},
}

func compress(data []byte, level CompressionLevel) ([]byte, error) {
	var buf bytes.Buffer
	w := compressorPool.Get().(*lz4.Writer)
	defer compressorPool.Put(w)

	w.Reset(&buf)

	switch level {
	case CompressionFast:
		_ = w.Apply(lz4.CompressionLevelOption(lz4.Fast))
	case CompressionBest:
		_ = w.Apply(lz4.CompressionLevelOption(lz4.Level9))
	default:
		_ = w.Apply(lz4.CompressionLevelOption(lz4.Level4))
	}

	if _, err := w.Write(data); err != nil {
		return nil, errCompressionFailed
	}
	if err := w.Close(); err != nil {
		return nil, errCompressionFailed
	}
	return buf.Bytes(), nil
}

// decompress inflates data, refusing output larger than limit.
func decompress(data []byte, limit int) ([]byte, error) {
	r := decompressorPool.Get().(*lz4.Reader)
	defer decompressorPool.Put(r)

	r.Reset(bytes.NewReader(data))

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, errDecompressionFailed
	}
	if n > int64(limit) {
		return nil, errors.Wrapf(errDecompressionFailed, "output exceeds %d bytes", limit)
	}
	return buf.Bytes(), nil
}

// maybeCompress returns the compressed form of data only when it is smaller.
func maybeCompress(data []byte, level CompressionLevel) ([]byte, bool) {
	compressed, err := compress(data, level)
	if err != nil || len(compressed) >= len(data) {
		return data, false
	}
	return compressed, true
}
