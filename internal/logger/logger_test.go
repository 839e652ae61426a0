package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		env   string
		level string
		want  zapcore.Level
	}{
		{"production", "", zapcore.InfoLevel},
		{"development", "", zapcore.DebugLevel},
		{"production", "warn", zapcore.WarnLevel},
		{"development", "bogus", zapcore.DebugLevel},
	}

	for _, c := range cases {
		log, err := New(c.env, c.level)
		if err != nil {
			t.Fatalf("%s/%s: %v", c.env, c.level, err)
		}
		if !log.Core().Enabled(c.want) {
			t.Fatalf("%s/%s: level %s should be enabled", c.env, c.level, c.want)
		}
		if c.want > zapcore.DebugLevel && log.Core().Enabled(c.want-1) {
			t.Fatalf("%s/%s: level %s should be disabled", c.env, c.level, c.want-1)
		}
	}
}
