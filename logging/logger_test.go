package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Component: ComponentLedger, Output: &buf})

	log.Info("Record persisted", FieldName, "Alice", FieldCount, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Record persisted", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, ComponentLedger, entry[FieldComponent])
	assert.Equal(t, "Alice", entry[FieldName])
	assert.Equal(t, float64(2), entry[FieldCount])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "loud", Output: &buf})

	log.Debug("hidden")
	log.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf}).
		WithComponent(ComponentStorage).
		WithError(errors.New("disk full"))

	log.Error("append failed")

	assert.Equal(t, ComponentStorage, log.Component())
	assert.Contains(t, buf.String(), `"component":"storage"`)
	assert.Contains(t, buf.String(), `"error":"disk full"`)
}

func TestFields_OddArgs(t *testing.T) {
	f := fields([]any{"a", 1, "dangling"})

	assert.Equal(t, 1, f["a"])
	assert.Equal(t, "dangling", f["!BADKEY"])
}

func TestNop_WritesNothing(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("ignored") })
}
