package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lineage/internal/adapters/config"
	"go.trai.ch/lineage/internal/core/domain"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeDoc(t, tmpDir, "report.yaml", `version: "1"
name: quarterly
cache_dir: artifacts
step:
  name: load
  cmd: ["sh", "-c", "cat data.csv"]
  steps:
    - name: summarize
      cmd: ["python3", "summarize.py"]
`)

	pipe, err := config.NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "quarterly", pipe.Name)
	assert.Equal(t, filepath.Join(tmpDir, "artifacts"), pipe.CacheDir)
	assert.Equal(t, "load", pipe.Root.Name)
	require.Len(t, pipe.Root.Steps, 1)
	assert.Equal(t, []string{"python3", "summarize.py"}, pipe.Root.Steps[0].Command)
}

func TestLoader_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeDoc(t, tmpDir, "nightly.yaml", `version: "1"
step:
  name: run
  cmd: ["true"]
`)

	pipe, err := config.NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nightly", pipe.Name, "name defaults to the file name")
	assert.Equal(t, filepath.Join(tmpDir, config.DefaultCacheDir), pipe.CacheDir)
}

func TestLoader_AbsoluteCacheDir(t *testing.T) {
	tmpDir := t.TempDir()
	cacheDir := filepath.Join(tmpDir, "elsewhere")
	path := writeDoc(t, tmpDir, "p.yaml", `version: "1"
cache_dir: `+cacheDir+`
step:
  name: run
  cmd: ["true"]
`)

	pipe, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, cacheDir, pipe.CacheDir)
}

func TestLoader_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		expected error
	}{
		{
			name:     "empty document",
			content:  `version: "1"`,
			expected: domain.ErrNoRootStep,
		},
		{
			name: "step without name",
			content: `version: "1"
step:
  cmd: ["true"]
`,
			expected: domain.ErrMissingStepName,
		},
		{
			name: "step without command",
			content: `version: "1"
step:
  name: run
`,
			expected: domain.ErrMissingCommand,
		},
		{
			name: "duplicate sibling steps",
			content: `version: "1"
step:
  name: root
  cmd: ["true"]
  steps:
    - name: twin
      cmd: ["true"]
    - name: twin
      cmd: ["true"]
`,
			expected: domain.ErrDuplicateStep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDoc(t, tmpDir, "doc.yaml", tt.content)
			_, err := config.NewLoader().Load(path)
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoader_InvalidYAML(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "broken.yaml", "step: [not: valid")
	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
}
