package analysis

// Store persists one artifact per fingerprint.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type Store interface {
	// Exists reports whether an artifact for the fingerprint is present.
	Exists(fingerprint string) bool

	// Save persists the snapshot under the fingerprint, overwriting any
	// previous artifact.
	Save(fingerprint string, snap Snapshot) error

	// Load retrieves the snapshot saved under the fingerprint. A missing or
	// corrupt artifact is an error; there is no fallback to recomputation.
	Load(fingerprint string) (Snapshot, error)

	// Sweep deletes every artifact whose fingerprint is absent from used.
	Sweep(used map[string]struct{}) error
}
