package testutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// NopLogger returns a logger that drops every record
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LogCapture collects JSON log records written at debug level and above
type LogCapture struct {
	buf bytes.Buffer
}

// CaptureLogger returns a logger writing into a fresh LogCapture
func CaptureLogger() (*slog.Logger, *LogCapture) {
	c := &LogCapture{}
	return slog.New(slog.NewJSONHandler(&c.buf, &slog.HandlerOptions{Level: slog.LevelDebug})), c
}

// Records decodes every captured record
func (c *LogCapture) Records(t *testing.T) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(c.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

// Find returns the first record with the given message
func (c *LogCapture) Find(t *testing.T, msg string) (map[string]any, bool) {
	t.Helper()
	for _, rec := range c.Records(t) {
		if rec["msg"] == msg {
			return rec, true
		}
	}
	return nil, false
}
