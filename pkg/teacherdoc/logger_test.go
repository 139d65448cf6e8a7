package teacherdoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name           string
		level          LogLevel
		expectedOutput []string
		notExpected    []string
	}{
		{
			name:           "debug level shows all messages",
			level:          LogDebug,
			expectedOutput: []string{"[DEBUG] debug message", "[INFO] info message", "[WARN] warn message", "[ERROR] error message"},
		},
		{
			name:           "info level hides debug messages",
			level:          LogInfo,
			expectedOutput: []string{"[INFO] info message", "[WARN] warn message", "[ERROR] error message"},
			notExpected:    []string{"debug message"},
		},
		{
			name:           "error level shows only errors",
			level:          LogError,
			expectedOutput: []string{"[ERROR] error message"},
			notExpected:    []string{"debug message", "info message", "warn message"},
		},
		{
			name:        "off hides everything",
			level:       LogOff,
			notExpected: []string{"message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(&buf, tt.level)
			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")
			l.Error("error message")

			out := buf.String()
			for _, want := range tt.expectedOutput {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notExpected {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&buf, LogInfo)
	child := base.WithFields(Fields{"template": "a.docx", "course": "clay"}).WithField("name", "Amy")

	child.Info("generating")
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "generating course=clay name=Amy template=a.docx"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "[INFO] plain"), "parent fields are not changed")
}

func TestLogger_SetLevelSharedByChildren(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&buf, LogInfo)
	base.SetLevel(LogDebug)
	assert.True(t, base.IsDebugMode())

	base.WithField("k", 1).Debug("child debug")
	assert.Contains(t, buf.String(), "child debug k=1")
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogDebug,
		" INFO ":  LogInfo,
		"warn":    LogWarn,
		"error":   LogError,
		"off":     LogOff,
		"verbose": LogInfo,
		"":        LogInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), "%q", in)
	}
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "WARN", LogWarn.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}
