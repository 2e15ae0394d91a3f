package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestLogger_KeyValuePairs(t *testing.T) {
	t.Parallel()

	logger, logs := newObservedLogger()
	logger.Info("import committed", "scope", "2025-14", "persisted", 42)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entry count: got=%d want=1", len(entries))
	}
	entry := entries[0]
	if entry.Message != "import committed" || entry.Level != zapcore.InfoLevel {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	fields := entry.ContextMap()
	if fields["scope"] != "2025-14" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if fields["persisted"] != int64(42) {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestLogger_ErrorValuesUseNamedError(t *testing.T) {
	t.Parallel()

	logger, logs := newObservedLogger()
	logger.Error("commit failed", "error", errors.New("disk on fire"))

	fields := logs.All()[0].ContextMap()
	if fields["error"] != "disk on fire" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestLogger_OddArgsDoNotPanic(t *testing.T) {
	t.Parallel()

	logger, logs := newObservedLogger()
	logger.Warn("odd", "dangling")

	fields := logs.All()[0].ContextMap()
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("dangling key must still be recorded: %+v", fields)
	}
}

func TestLogger_With(t *testing.T) {
	t.Parallel()

	logger, logs := newObservedLogger()
	logger.With("scope", "2025-14").Info("child")

	fields := logs.All()[0].ContextMap()
	if fields["scope"] != "2025-14" {
		t.Fatalf("with fields must propagate: %+v", fields)
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	// Must not panic; the nop default swallows it.
	logger.Info("into the void")
}

func TestMirror(t *testing.T) {
	// The mirror is package-global state; no t.Parallel here.
	type captured struct {
		level Level
		msg   string
		args  []any
	}
	var got []captured

	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, captured{level: level, msg: msg, args: args})
	})
	defer SetMirror(nil)

	logger, _ := newObservedLogger()
	logger.Info("import committed", "scope", "2025-14")
	logger.WarnContext(context.Background(), "roster import failed")

	if len(got) != 2 {
		t.Fatalf("mirror call count: got=%d want=2", len(got))
	}
	if got[0].msg != "import committed" || got[0].level != LevelInfo {
		t.Fatalf("unexpected first call: %+v", got[0])
	}
	if len(got[0].args) != 2 || got[0].args[0] != "scope" {
		t.Fatalf("unexpected args: %+v", got[0].args)
	}
	if got[1].msg != "roster import failed" || got[1].level != LevelWarn {
		t.Fatalf("unexpected second call: %+v", got[1])
	}

	// Clearing the mirror stops the calls.
	SetMirror(nil)
	logger.Info("after clear")
	if len(got) != 2 {
		t.Fatalf("cleared mirror must not be invoked, got %d calls", len(got))
	}
}
