package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", "production", &buf)

	log.WithFields(map[string]interface{}{
		"pool_id":   "pool-1",
		"bundle_id": "bundle-1",
	}).Info("Bundle submitted")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Bundle submitted", entry["msg"])
	assert.Equal(t, "pool-1", entry["pool_id"])
	assert.Equal(t, "bundle-1", entry["bundle_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", "production", &buf)

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("nonsense", "production", &buf)

	log.Debug("debug line")
	assert.Empty(t, buf.String())

	log.Info("info line")
	assert.Contains(t, buf.String(), "info line")
}

func TestRedactHook_MasksSensitiveFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", "production", &buf)

	log.WithFields(map[string]interface{}{
		"wallet_secret":    "5abc",
		"relay_auth_token": "uuid",
		"pool_id":          "pool-1",
	}).Info("config loaded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, RedactedValue, entry["wallet_secret"])
	assert.Equal(t, RedactedValue, entry["relay_auth_token"])
	assert.Equal(t, "pool-1", entry["pool_id"])
	assert.NotContains(t, buf.String(), "5abc")
}

func TestWithError_AddsErrorField(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", "production", &buf)

	log.WithError(errors.New("boom")).Error("failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
}
