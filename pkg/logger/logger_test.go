package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("order id=%d created", 1)
	assert.Empty(t, buf.String())

	log.Warn("slot taken for order id=%d", 2)
	assert.Contains(t, buf.String(), "slot taken for order id=2")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestParseLevel(t *testing.T) {
	_, err := parseLevel("verbose")
	assert.Error(t, err)

	lvl, err := parseLevel("")
	require.NoError(t, err)
	assert.Equal(t, "info", lvl.String())
}

func TestDebug_OnlyAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "info")
	require.NoError(t, err)

	log.Debug("no pending orders")
	assert.Empty(t, buf.String())

	log, err = NewWithWriter(&buf, "debug")
	require.NoError(t, err)

	log.Debug("no pending orders")
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.NoError(t, log.Close())
}
