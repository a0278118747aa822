package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lineage/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger(t *testing.T) {
	log := logger.New()
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.Info("pipeline loaded")
	log.Warn("cache directory not present")
	log.Error(zerr.New("step logic failed"))

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "pipeline loaded")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "cache directory not present")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "step logic failed")
}
