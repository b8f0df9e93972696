package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "adaptly.log")
	log, err := New("warn", path)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("persist progress failed", zap.Int("level_id", 2))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), "exactly one JSON line expected: %s", data)
	assert.Equal(t, "persist progress failed", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, 2, entry["level_id"])
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New("chatty", "")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	Nop().Error("nothing happens")
}
