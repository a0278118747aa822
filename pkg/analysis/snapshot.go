package analysis

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/zerr"
)

// Snapshot is the mutable state mapping passed from a step to its dependents.
// Values must survive msgpack serialization; anything that does not cannot be
// cached and fails the run.
type Snapshot map[string]any

// NewSnapshot returns an empty snapshot.
func NewSnapshot() Snapshot {
	return Snapshot{}
}

// Clone returns an independent deep copy of the snapshot. A nil snapshot
// clones to a fresh empty one.
//
// The copy is produced by a msgpack round trip so that values normalize
// exactly as they do when an artifact is loaded from cache: integers come
// back as int64, floats as float64, and nested collections as map[string]any
// and []any. A freshly computed snapshot and a cache-loaded one are therefore
// indistinguishable to dependent steps.
func (s Snapshot) Clone() (Snapshot, error) {
	if s == nil {
		return NewSnapshot(), nil
	}

	data, err := msgpack.Marshal(map[string]any(s))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode snapshot for copying")
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)

	out := make(map[string]any, len(s))
	if err := dec.Decode(&out); err != nil {
		return nil, zerr.Wrap(err, "failed to decode snapshot copy")
	}
	return Snapshot(out), nil
}
