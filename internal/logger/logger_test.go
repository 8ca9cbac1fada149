package logger_test

import (
	"testing"

	"github.com/wikiroam/randomarticle/internal/logger"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name  string
		debug bool
	}{
		{name: "production mode", debug: false},
		{name: "debug mode", debug: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := logger.NewLogger(tc.debug)
			if err != nil {
				t.Fatalf("NewLogger(%v) error: %v", tc.debug, err)
			}
			if log == nil {
				t.Fatal("NewLogger returned nil logger")
			}

			// Exercise every level; none should panic.
			log.Debug("debug message", logger.String("key", "value"))
			log.Info("info message", logger.Int("count", 1))
			log.Warn("warn message", logger.Bool("flag", true))
			log.Error("error message")
		})
	}
}

func TestLogger_With(t *testing.T) {
	log := logger.NewNopLogger()

	child := log.With(logger.String("component", "test"))
	if child == nil {
		t.Fatal("With returned nil logger")
	}

	child.Info("message from child")
}

func TestNewNopLogger(t *testing.T) {
	log := logger.NewNopLogger()
	if log == nil {
		t.Fatal("NewNopLogger returned nil")
	}
	log.Info("discarded")
	if err := log.Sync(); err != nil {
		t.Errorf("Sync() error: %v", err)
	}
}
