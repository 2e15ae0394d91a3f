package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every key Load reads so the host environment cannot
// leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "APP_SERVICE_NAME", "APP_SERVICE_VERSION", "APP_HTTP_ADDR",
		"DB_URL", "DB_DISABLE_PREPARED_BINARY_RESULT",
		"CACHE_ENABLED", "CACHE_TTL", "CORS_ALLOWED_ORIGINS",
		"APP_READ_TIMEOUT", "APP_WRITE_TIMEOUT", "APP_LOG_LEVEL",
		"IMPORT_FUZZY_THRESHOLD", "IMPORT_SALARY_MIN", "IMPORT_SALARY_MAX",
		"IMPORT_POSITIONS", "IMPORT_MAX_FILE_BYTES", "HISTORY_DELTA_WORKERS",
		"PPROF_ENABLED", "PPROF_ADDR",
		"UPTRACE_ENABLED", "UPTRACE_DSN", "UPTRACE_LOGS_ENABLED",
		"OTEL_EXPORTER_OTLP_HEADERS",
		"PYROSCOPE_ENABLED", "PYROSCOPE_SERVER_ADDRESS", "PYROSCOPE_APP_NAME",
		"PYROSCOPE_AUTH_TOKEN", "PYROSCOPE_BASIC_AUTH_USER",
		"PYROSCOPE_BASIC_AUTH_PASSWORD", "PYROSCOPE_UPLOAD_RATE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("app env: got=%q want=%q", cfg.AppEnv, EnvDev)
	}
	if cfg.ServiceName != "poolimport-api" || cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected service defaults: %+v", cfg)
	}
	if cfg.ImportFuzzyThreshold != 0.85 {
		t.Fatalf("fuzzy threshold: got=%g want=0.85", cfg.ImportFuzzyThreshold)
	}
	if cfg.ImportSalaryMin != 2000 || cfg.ImportSalaryMax != 50000 {
		t.Fatalf("salary bounds: got=[%d,%d]", cfg.ImportSalaryMin, cfg.ImportSalaryMax)
	}
	if strings.Join(cfg.ImportPositions, ",") != "QB,RB,WR,TE,DST,K" {
		t.Fatalf("unexpected positions: %v", cfg.ImportPositions)
	}
	if cfg.ImportMaxFileBytes != 16<<20 {
		t.Fatalf("max file bytes: got=%d", cfg.ImportMaxFileBytes)
	}
	if cfg.HistoryDeltaWorkers != 4 {
		t.Fatalf("delta workers: got=%d", cfg.HistoryDeltaWorkers)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected cache defaults: enabled=%t ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.DBURL != "" {
		t.Fatalf("db url defaults to empty (memory mode), got=%q", cfg.DBURL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors default: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.UptraceEnabled || cfg.PyroscopeEnabled || cfg.PprofEnabled {
		t.Fatalf("observability extras default to off: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "PROD")
	t.Setenv("IMPORT_FUZZY_THRESHOLD", "0.9")
	t.Setenv("IMPORT_SALARY_MIN", "1000")
	t.Setenv("IMPORT_SALARY_MAX", "60000")
	t.Setenv("IMPORT_POSITIONS", "qb, rb ,wr")
	t.Setenv("HISTORY_DELTA_WORKERS", "8")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppEnv != EnvProd {
		t.Fatalf("app env must lowercase: got=%q", cfg.AppEnv)
	}
	if cfg.ImportFuzzyThreshold != 0.9 || cfg.ImportSalaryMin != 1000 || cfg.ImportSalaryMax != 60000 {
		t.Fatalf("unexpected import overrides: %+v", cfg)
	}
	if len(cfg.ImportPositions) != 3 || cfg.ImportPositions[1] != "rb" {
		t.Fatalf("csv must trim entries: %v", cfg.ImportPositions)
	}
	if cfg.HistoryDeltaWorkers != 8 || cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"bad app env", "APP_ENV", "production"},
		{"threshold above one", "IMPORT_FUZZY_THRESHOLD", "1.5"},
		{"threshold zero", "IMPORT_FUZZY_THRESHOLD", "0"},
		{"threshold not a number", "IMPORT_FUZZY_THRESHOLD", "high"},
		{"salary min negative", "IMPORT_SALARY_MIN", "-1"},
		{"workers zero", "HISTORY_DELTA_WORKERS", "0"},
		{"bad cache ttl", "CACHE_TTL", "soon"},
		{"bad bool", "CACHE_ENABLED", "maybe"},
		{"max file bytes zero", "IMPORT_MAX_FILE_BYTES", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%q must fail", tc.key, tc.val)
			}
		})
	}
}

func TestLoad_SalaryBoundsMustBeOrdered(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMPORT_SALARY_MIN", "50000")
	t.Setenv("IMPORT_SALARY_MAX", "2000")

	if _, err := Load(); err == nil {
		t.Fatalf("inverted salary bounds must fail")
	}
}

func TestLoad_UptraceRequiresDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("uptrace without a dsn must fail")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `x-api-key=abc,uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("dsn must come from the otlp headers, got=%q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddress(t *testing.T) {
	clearEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("pyroscope without a server address must fail")
	}
}
