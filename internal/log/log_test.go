package log_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/cssom/internal/log"
	"github.com/stretchr/testify/assert"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)
	defer log.SetLevel(log.GetLevel())

	tests := []struct {
		level log.Level
		shown []string
		quiet []string
	}{
		{log.LevelDebug, []string{"debug", "info", "warn", "error"}, nil},
		{log.LevelInfo, []string{"info", "warn", "error"}, []string{"debug"}},
		{log.LevelWarn, []string{"warn", "error"}, []string{"debug", "info"}},
		{log.LevelError, []string{"error"}, []string{"debug", "info", "warn"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf.Reset()
			log.SetLevel(tt.level)

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")
			log.Error("error message")

			output := buf.String()
			for _, name := range tt.shown {
				assert.Contains(t, output, name+" message")
			}
			for _, name := range tt.quiet {
				assert.NotContains(t, output, name+" message")
			}
		})
	}
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetLevel(log.LevelInfo)
	defer log.SetOutput(nil)

	t.Run("Messages include [CSSOM] prefix", func(t *testing.T) {
		buf.Reset()
		log.Info("test message")

		output := buf.String()
		assert.Contains(t, output, "[CSSOM]", "Should have [CSSOM] prefix")
		assert.Contains(t, output, "test message")
	})

	t.Run("Format strings work correctly", func(t *testing.T) {
		buf.Reset()
		log.Info("Loaded %d registrations from %s", 3, "props.yaml")

		output := buf.String()
		assert.Contains(t, output, "Loaded 3 registrations from props.yaml")
	})

	t.Run("Each log message ends with newline", func(t *testing.T) {
		buf.Reset()
		log.Info("message 1")
		log.Info("message 2")

		lines := strings.Split(buf.String(), "\n")
		// Should have 2 messages plus empty string after final newline
		assert.GreaterOrEqual(t, len(lines), 2)
		assert.Contains(t, lines[0], "message 1")
		assert.Contains(t, lines[1], "message 2")
	})

	t.Run("Messages include level labels", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelDebug)

		log.Debug("debug")
		log.Info("info")
		log.Warn("warn")
		log.Error("error")

		output := buf.String()
		assert.Contains(t, output, "DEBUG:", "Should include DEBUG level")
		assert.Contains(t, output, "INFO:", "Should include INFO level")
		assert.Contains(t, output, "WARN:", "Should include WARN level")
		assert.Contains(t, output, "ERROR:", "Should include ERROR level")
	})
}

func TestGetLevel(t *testing.T) {
	// Save original level
	originalLevel := log.GetLevel()
	defer log.SetLevel(originalLevel)

	log.SetLevel(log.LevelDebug)
	assert.Equal(t, log.LevelDebug, log.GetLevel())

	log.SetLevel(log.LevelError)
	assert.Equal(t, log.LevelError, log.GetLevel())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		want  log.Level
		error bool
	}{
		{name: "debug", want: log.LevelDebug},
		{name: "INFO", want: log.LevelInfo},
		{name: " warn ", want: log.LevelWarn},
		{name: "warning", want: log.LevelWarn},
		{name: "error", want: log.LevelError},
		{name: "verbose", want: log.LevelInfo, error: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := log.ParseLevel(tt.name)
			if tt.error {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", log.LevelDebug.String())
	assert.Equal(t, "error", log.LevelError.String())
	assert.Equal(t, "level(9)", log.Level(9).String())
}
