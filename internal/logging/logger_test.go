package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, slog.LevelDebug).WithMH("NEH").WithSeed(42).WithBatch("b1").WithComponent("factory")
	log.Debug("built", "init", "neh")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "NEH", rec["mh"])
	assert.EqualValues(t, 42, rec["seed"])
	assert.Equal(t, "factory", rec["component"])
	assert.Equal(t, "b1", rec["batch"])
	assert.Equal(t, "neh", rec["init"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(&buf, slog.LevelWarn)
	log.Info("hidden")
	assert.Zero(t, buf.Len())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")

	Noop().Error("nothing")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	_, err = ParseLevel("loud")
	assert.EqualError(t, err, "unknown log level: loud")
}
