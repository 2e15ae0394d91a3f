package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	t.Parallel()

	if !shouldSkipUptraceLog("http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("health probe access log must be skipped")
	}
	if shouldSkipUptraceLog("http request", []any{"method", "GET", "path", "/v1/scopes/2025-14/pool"}) {
		t.Fatalf("regular access log must ship")
	}
	if shouldSkipUptraceLog("import committed", []any{"path", "/healthz"}) {
		t.Fatalf("only access logs are filtered")
	}
	if shouldSkipUptraceLog("http request", nil) {
		t.Fatalf("access log without a path must ship")
	}
}

func TestToOTelSeverity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level zapcore.Level
		want  otellog.Severity
	}{
		{zapcore.DebugLevel, otellog.SeverityDebug},
		{zapcore.InfoLevel, otellog.SeverityInfo},
		{zapcore.WarnLevel, otellog.SeverityWarn},
		{zapcore.ErrorLevel, otellog.SeverityError},
		{zapcore.DPanicLevel, otellog.SeverityFatal},
		{zapcore.PanicLevel, otellog.SeverityFatal},
		{zapcore.FatalLevel, otellog.SeverityFatal},
	}
	for _, tc := range cases {
		if got := toOTelSeverity(tc.level); got != tc.want {
			t.Fatalf("toOTelSeverity(%s): got=%v want=%v", tc.level, got, tc.want)
		}
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	t.Parallel()

	attrs := buildOTelLogAttributes([]any{
		"scope", "2025-14",
		"persisted", 42,
		"error", errors.New("boom"),
		7, "not-a-string-key",
		"dangling",
	})
	if len(attrs) != 5 {
		t.Fatalf("attribute count: got=%d want=5", len(attrs))
	}

	if attrs[0].Key != "scope" || attrs[0].Value.AsString() != "2025-14" {
		t.Fatalf("unexpected attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "persisted" || attrs[1].Value.AsInt64() != 42 {
		t.Fatalf("unexpected attribute: %+v", attrs[1])
	}
	if attrs[2].Value.AsString() != "boom" {
		t.Fatalf("errors must flatten to their message: %+v", attrs[2])
	}
	if attrs[3].Key != "arg_3" {
		t.Fatalf("non-string keys get positional names: %+v", attrs[3])
	}
	if attrs[4].Key != "dangling" {
		t.Fatalf("a dangling key still appears: %+v", attrs[4])
	}
}

func TestToOTelLogValue(t *testing.T) {
	t.Parallel()

	if got := toOTelLogValue(3*time.Second, 0); got.AsString() != "3s" {
		t.Fatalf("duration: %v", got)
	}
	if got := toOTelLogValue(1.5, 0); got.AsFloat64() != 1.5 {
		t.Fatalf("float: %v", got)
	}

	n := 7
	if got := toOTelLogValue(&n, 0); got.AsInt64() != 7 {
		t.Fatalf("pointer must dereference: %v", got)
	}

	got := toOTelLogValue([]string{"a", "b"}, 0)
	if got.Kind() != otellog.KindSlice || len(got.AsSlice()) != 2 {
		t.Fatalf("slice: %v", got)
	}

	got = toOTelLogValue(map[string]any{"b": 2, "a": 1}, 0)
	if got.Kind() != otellog.KindMap {
		t.Fatalf("map: %v", got)
	}
	kvs := got.AsMap()
	if len(kvs) != 2 || kvs[0].Key != "a" {
		t.Fatalf("map keys must be sorted: %+v", kvs)
	}
}
