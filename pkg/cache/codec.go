package cache

import (
	"bytes"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/lineage/pkg/analysis"
	"go.trai.ch/zerr"
)

// Codec is the serialize/compress pair for artifacts: msgpack inside a zstd
// frame. Decoding uses loose interface decoding so loaded snapshots carry the
// same value types as freshly cloned ones.
type Codec struct{}

// NewCodec creates a Codec.
func NewCodec() *Codec { return &Codec{} }

// Encode serializes and compresses a snapshot.
func (c *Codec) Encode(snap analysis.Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to initialize compressor")
	}
	if err := msgpack.NewEncoder(zw).Encode(map[string]any(snap)); err != nil {
		_ = zw.Close()
		return nil, zerr.Wrap(err, "failed to serialize snapshot")
	}
	if err := zw.Close(); err != nil {
		return nil, zerr.Wrap(err, "failed to compress snapshot")
	}
	return buf.Bytes(), nil
}

// Decode decompresses and deserializes an artifact. Corrupt or foreign-format
// input is an error.
func (c *Codec) Decode(data []byte) (analysis.Snapshot, error) {
	zr, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to initialize decompressor")
	}
	defer zr.Close()

	dec := msgpack.NewDecoder(zr)
	dec.UseLooseInterfaceDecoding(true)

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, zerr.Wrap(err, "failed to deserialize artifact")
	}
	if out == nil {
		out = map[string]any{}
	}
	return analysis.Snapshot(out), nil
}
