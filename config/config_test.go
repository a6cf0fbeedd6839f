package config

import (
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse error: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Session.Backend != SessionBackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Session.Backend)
	}
	if filepath.Base(cfg.Session.Path) != "session.db" {
		t.Errorf("Path = %q, want a session.db file", cfg.Session.Path)
	}
	if cfg.Workflow.WaitSeconds != 30 {
		t.Errorf("WaitSeconds = %d, want 30", cfg.Workflow.WaitSeconds)
	}
	if cfg.Workflow.RoleClaim != "authorities[0]" {
		t.Errorf("RoleClaim = %q", cfg.Workflow.RoleClaim)
	}
	if cfg.Observability.Logging.Level != slog.LevelWarn {
		t.Errorf("Level = %v, want WARN", cfg.Observability.Logging.Level)
	}
	if cfg.Observability.Metrics.IsEnabled() {
		t.Errorf("metrics enabled by default")
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("BALLOT_API_BASE_URL", " https://vote.example.edu/ ")
	t.Setenv("BALLOT_API_TIMEOUT", "3s")
	t.Setenv("BALLOT_SESSION_BACKEND", "Redis")
	t.Setenv("BALLOT_SESSION_KEY_PREFIX", "dorm:")
	t.Setenv("REDIS_URI", "redis://cache:6379/2")
	t.Setenv("REDIS_CLUSTER_NODES", "a:7000, ,b:7001")
	t.Setenv("REDIS_USE_CLUSTER", "true")
	t.Setenv("BALLOT_WAIT_SECONDS", "5")
	t.Setenv("BALLOT_ROLE_CLAIM", "realm_access.roles[0]")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("OBSERVABILITY_METRICS_ENABLED", "true")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse error: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "https://vote.example.edu" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Session.Backend != SessionBackendRedis {
		t.Errorf("Backend = %q", cfg.Session.Backend)
	}
	if cfg.Session.KeyPrefix != "dorm:" {
		t.Errorf("KeyPrefix = %q", cfg.Session.KeyPrefix)
	}
	if cfg.Session.Redis.URI != "redis://cache:6379/2" || !cfg.Session.Redis.UseCluster {
		t.Errorf("Redis = %+v", cfg.Session.Redis)
	}
	if !reflect.DeepEqual(cfg.Session.Redis.ClusterNodes, []string{"a:7000", "b:7001"}) {
		t.Errorf("ClusterNodes = %v", cfg.Session.Redis.ClusterNodes)
	}
	if cfg.Workflow.WaitSeconds != 5 || cfg.Workflow.RoleClaim != "realm_access.roles[0]" {
		t.Errorf("Workflow = %+v", cfg.Workflow)
	}
	if cfg.Observability.Logging.Level != slog.LevelDebug || cfg.Observability.Logging.Format != LogFormatJSON {
		t.Errorf("Logging = %+v", cfg.Observability.Logging)
	}
	if !cfg.Observability.Metrics.IsEnabled() {
		t.Errorf("expected metrics to be enabled")
	}
}

func TestSessionBackend_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    SessionBackend
		wantErr bool
	}{
		{input: "sqlite", want: SessionBackendSQLite},
		{input: " MEMORY ", want: SessionBackendMemory},
		{input: "redis", want: SessionBackendRedis},
		{input: "postgres", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var b SessionBackend
			err := b.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				if !strings.Contains(err.Error(), "valid options") {
					t.Errorf("error %q does not list valid options", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b != tt.want {
				t.Errorf("got %q, want %q", b, tt.want)
			}
		})
	}
}

func TestAppConfig_InvalidBackend(t *testing.T) {
	t.Setenv("BALLOT_SESSION_BACKEND", "etcd")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected parse error for unknown backend")
	}
}

func TestLogFormat_UnmarshalText(t *testing.T) {
	var f LogFormat
	if err := f.UnmarshalText([]byte("Text")); err != nil || f != LogFormatText {
		t.Fatalf("got %q, %v", f, err)
	}
	if err := f.UnmarshalText([]byte("xml")); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestAPIConfig_Sanitize(t *testing.T) {
	cfg := APIConfig{BaseURL: "http://h//", Timeout: -1}
	cfg.Sanitize()
	if cfg.BaseURL != "http://h" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != defaultAPITimeout {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}

	cfg = APIConfig{Timeout: time.Hour}
	cfg.Sanitize()
	if cfg.Timeout != maxAPITimeout {
		t.Errorf("Timeout = %v, want clamp to %v", cfg.Timeout, maxAPITimeout)
	}
}

func TestWorkflowConfig_Sanitize(t *testing.T) {
	cfg := WorkflowConfig{WaitSeconds: 0, RoleClaim: "  "}
	cfg.Sanitize()
	if cfg.WaitSeconds != defaultWaitSeconds || cfg.RoleClaim != defaultRoleClaim {
		t.Errorf("got %+v", cfg)
	}

	cfg = WorkflowConfig{WaitSeconds: 100000, RoleClaim: "x"}
	cfg.Sanitize()
	if cfg.WaitSeconds != maxWaitSeconds {
		t.Errorf("WaitSeconds = %d", cfg.WaitSeconds)
	}
}

func TestSessionConfig_Sanitize(t *testing.T) {
	cfg := SessionConfig{Path: " ", KeyPrefix: ""}
	cfg.Redis.DB = -3
	cfg.Sanitize()

	if cfg.Backend != SessionBackendSQLite {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.Path != DefaultSessionPath() {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.KeyPrefix != "ballot:session:" {
		t.Errorf("KeyPrefix = %q", cfg.KeyPrefix)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("DB = %d", cfg.Redis.DB)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}
	if cfg.Prefix != defaultMetricsPrefix {
		t.Fatalf("expected prefix default, got %q", cfg.Prefix)
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
}
