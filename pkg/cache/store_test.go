package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lineage/pkg/cache"
	"go.trai.ch/lineage/pkg/analysis"
)

func TestStore_SaveAndLoad(t *testing.T) {
	store := cache.NewStore(filepath.Join(t.TempDir(), "artifacts"))

	snap := analysis.Snapshot{
		"x":      int64(2),
		"nested": map[string]any{"k": "v"},
	}

	require.False(t, store.Exists("aaaaaaaaaaaaaaaa"))
	require.NoError(t, store.Save("aaaaaaaaaaaaaaaa", snap))
	require.True(t, store.Exists("aaaaaaaaaaaaaaaa"))

	got, err := store.Load("aaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := cache.NewStore(t.TempDir())

	require.NoError(t, store.Save("bbbbbbbbbbbbbbbb", analysis.Snapshot{"v": int64(1)}))
	require.NoError(t, store.Save("bbbbbbbbbbbbbbbb", analysis.Snapshot{"v": int64(2)}))

	got, err := store.Load("bbbbbbbbbbbbbbbb")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got["v"])
}

func TestStore_LoadMissing(t *testing.T) {
	store := cache.NewStore(t.TempDir())

	_, err := store.Load("cccccccccccccccc")
	assert.Error(t, err)
}

func TestStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := cache.NewStore(dir)

	path := filepath.Join(dir, "dddddddddddddddd"+cache.Suffix)
	require.NoError(t, os.WriteFile(path, []byte("not a zstd frame"), 0o600))

	_, err := store.Load("dddddddddddddddd")
	assert.Error(t, err, "a corrupt artifact must fail, not fall back")
}

func TestStore_SweepDeletesOnlyUnused(t *testing.T) {
	dir := t.TempDir()
	store := cache.NewStore(dir)

	require.NoError(t, store.Save("1111111111111111", analysis.Snapshot{}))
	require.NoError(t, store.Save("2222222222222222", analysis.Snapshot{}))
	require.NoError(t, store.Save("3333333333333333", analysis.Snapshot{}))

	// A foreign file must never be touched by the sweep.
	foreign := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(foreign, []byte("keep"), 0o600))

	used := map[string]struct{}{
		"1111111111111111": {},
		"3333333333333333": {},
	}
	require.NoError(t, store.Sweep(used))

	assert.True(t, store.Exists("1111111111111111"))
	assert.False(t, store.Exists("2222222222222222"))
	assert.True(t, store.Exists("3333333333333333"))
	assert.FileExists(t, foreign)
}

func TestStore_SweepRemovesAbandonedTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := cache.NewStore(dir)

	abandoned := filepath.Join(dir, "artifact-123.tmp")
	require.NoError(t, os.WriteFile(abandoned, []byte("half written"), 0o600))

	require.NoError(t, store.Sweep(map[string]struct{}{}))
	assert.NoFileExists(t, abandoned)
}

func TestStore_SaveLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	store := cache.NewStore(dir)

	require.NoError(t, store.Save("eeeeeeeeeeeeeeee", analysis.Snapshot{"v": "x"}))

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := cache.NewCodec()

	snap := analysis.Snapshot{
		"int":    int64(42),
		"float":  1.5,
		"string": "hello",
		"list":   []any{int64(1), int64(2)},
		"map":    map[string]any{"inner": "value"},
	}

	data, err := codec.Encode(snap)
	require.NoError(t, err)

	got, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestCodec_DecodeGarbage(t *testing.T) {
	codec := cache.NewCodec()

	_, err := codec.Decode([]byte("garbage"))
	assert.Error(t, err)
}
