// Package cache implements the on-disk artifact store for analysis snapshots.
package cache

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/lineage/pkg/analysis"
	"go.trai.ch/zerr"
)

// Suffix is the artifact file extension.
const Suffix = ".cache"

// Store implements analysis.Store with one compressed file per fingerprint
// under a single directory. The file's presence is the only catalog: there is
// no index or manifest, and the store assumes one writing process per
// directory at a time.
type Store struct {
	dir   string
	codec *Codec
}

var _ analysis.Store = (*Store)(nil)

// NewStore creates a store rooted at dir. The directory itself is created
// lazily on first save.
func NewStore(dir string) *Store {
	return &Store{
		dir:   filepath.Clean(dir),
		codec: NewCodec(),
	}
}

func (s *Store) path(fingerprint string) string {
	return filepath.Join(s.dir, fingerprint+Suffix)
}

// Exists reports whether an artifact for the fingerprint is present.
func (s *Store) Exists(fingerprint string) bool {
	_, err := os.Stat(s.path(fingerprint))
	return err == nil
}

// Save persists the snapshot under the fingerprint, overwriting any previous
// artifact. The write goes through a temporary file and a rename so a crash
// cannot leave a half-written artifact under the final name.
func (s *Store) Save(fingerprint string, snap analysis.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	data, err := s.codec.Encode(snap)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "artifact-*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary artifact")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, "failed to write artifact"), "fingerprint", fingerprint)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to close temporary artifact")
	}
	if err := os.Rename(tmp.Name(), s.path(fingerprint)); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, "failed to publish artifact"), "fingerprint", fingerprint)
	}
	return nil
}

// Load reads and decodes the artifact for the fingerprint. A missing or
// corrupt file is an error; recovery is the caller's decision.
func (s *Store) Load(fingerprint string) (analysis.Snapshot, error) {
	//nolint:gosec // Path derives from a hex fingerprint under the store directory
	data, err := os.ReadFile(s.path(fingerprint))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read artifact"), "fingerprint", fingerprint)
	}

	snap, err := s.codec.Decode(data)
	if err != nil {
		return nil, zerr.With(err, "fingerprint", fingerprint)
	}
	return snap, nil
}

// Sweep deletes every artifact in the directory whose fingerprint is absent
// from used, plus temporary files left behind by interrupted saves.
func (s *Store) Sweep(used map[string]struct{}) error {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+Suffix))
	if err != nil {
		return zerr.Wrap(err, "failed to list artifacts")
	}
	for _, match := range matches {
		fingerprint := strings.TrimSuffix(filepath.Base(match), Suffix)
		if _, ok := used[fingerprint]; ok {
			continue
		}
		if err := os.Remove(match); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to delete stale artifact"), "path", match)
		}
	}

	leftovers, _ := filepath.Glob(filepath.Join(s.dir, "artifact-*.tmp"))
	for _, leftover := range leftovers {
		_ = os.Remove(leftover)
	}
	return nil
}
