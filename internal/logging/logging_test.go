package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerRecordsEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("hello", Field{Key: "count", Value: 3})
	mock.WithField("institution", "Chase").Warn("slow parse")
	mock.WithError(errors.New("boom")).Error("failed")

	entries := mock.Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "hello", entries[0].Message)
	require.Len(t, entries[0].Fields, 1)
	assert.Equal(t, "count", entries[0].Fields[0].Key)

	assert.Equal(t, "warn", entries[1].Level)
	assert.Equal(t, Field{Key: "institution", Value: "Chase"}, entries[1].Fields[0])

	assert.Equal(t, "error", entries[2].Level)
	assert.EqualError(t, entries[2].Err, "boom")
}

func TestMockLoggerDerivedLoggersShareSink(t *testing.T) {
	mock := NewMockLogger()
	derived := mock.WithField("a", 1).WithFields(Field{Key: "b", Value: 2})

	derived.Debug("nested")

	entries := mock.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, []Field{{Key: "a", Value: 1}, {Key: "b", Value: 2}}, entries[0].Fields)
}

func TestLogrusAdapterFields(t *testing.T) {
	logger := logrus.New()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.DebugLevel)

	adapter := NewLogrusAdapterFromLogger(logger)
	adapter.WithField("institution", "HDFC").Info("parsed", Field{Key: "count", Value: 2})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "parsed", line["msg"])
	assert.Equal(t, "HDFC", line["institution"])
	assert.Equal(t, float64(2), line["count"])
}

func TestNewLogrusAdapterBadLevelFallsBack(t *testing.T) {
	// Must not panic; falls back to info.
	adapter := NewLogrusAdapter("nonsense", "text")
	assert.NotNil(t, adapter)
}
