package logger

import "testing"

func TestNew(t *testing.T) {
	log, err := New("debug", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log == nil {
		t.Fatal("expected a logger")
	}
	if !log.Core().Enabled(-1) { // zapcore.DebugLevel
		t.Error("expected debug level to be enabled")
	}
}

func TestNewProductionLevel(t *testing.T) {
	log, err := New("warn", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Core().Enabled(0) { // zapcore.InfoLevel
		t.Error("expected info level to be disabled at warn")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New("shouty", false); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
