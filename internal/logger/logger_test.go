package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		level    string
		debugged bool
	}{
		{"debug", true},
		{"DEBUG", true},
		{"info", false},
		{"", false},
		{"bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewLogger(Config{Level: tt.level, Output: &buf})
			log.LogDocumentSkipped("a.md", "no data dictionary")

			assert.Equal(t, tt.debugged, buf.Len() > 0)
		})
	}
}

func TestLogRecordSkipped(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Level: "info", Output: &buf}).Component("query")

	log.LogRecordSkipped("carbonblack", "procstart", "md5", "missing Standard Name")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "query", lines[0]["component"])
	assert.Equal(t, "carbonblack", lines[0]["product"])
	assert.Equal(t, "md5", lines[0]["field"])
	assert.Equal(t, "record skipped", lines[0]["message"])
}

func TestLogScrapeComplete(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Output: &buf})

	log.LogScrapeComplete(4, 3, 0, 12, time.Second)
	log.LogScrapeComplete(4, 2, 1, 8, time.Second)
	log.LogDocumentFailed("bad.md", errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, float64(12), lines[0]["fields"])
	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, "boom", lines[2]["error"])
}

func TestNop(t *testing.T) {
	log := Nop()
	log.LogDocumentFailed("x.md", errors.New("ignored"))
	log.Info().Msg("ignored")
}
