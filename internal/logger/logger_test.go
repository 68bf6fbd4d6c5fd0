package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Debug(t *testing.T) {
	log, err := New(true)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug logger should log at debug level")
	}

	// Should not panic
	log.Debug("test message")
}

func TestNew_Default(t *testing.T) {
	log, err := New(false)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("default logger should not log at debug level")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("default logger should log at info level")
	}
}

func TestMust(t *testing.T) {
	// Should not panic
	log := Must(true)
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
}
