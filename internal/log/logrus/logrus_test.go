package logrus_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typer/internal/log"
	loglogrus "github.com/verte-zerg/typer/internal/log/logrus"
)

func TestLogrusWithValues(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.Out = &buf
	l.SetFormatter(&logrus.JSONFormatter{})

	logger := loglogrus.NewLogrus(logrus.NewEntry(l)).WithValues(log.Kv{"attempt": "01ABC"})
	logger.Infof("session ended with %d errors", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "01ABC", entry["attempt"])
	assert.Equal(t, "session ended with 3 errors", entry["msg"])
	assert.Equal(t, "info", entry["level"])
}

func TestLogrusDebugFilteredByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.Out = &buf

	logger := loglogrus.NewLogrus(logrus.NewEntry(l))
	logger.Debugf("hidden")
	assert.Empty(t, buf.String())

	l.SetLevel(logrus.DebugLevel)
	logger.Debugf("shown")
	assert.Contains(t, buf.String(), "shown")
}
