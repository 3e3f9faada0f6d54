package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Engine: EngineConfig{Driver: "solr", Addrs: []string{"http://localhost:8983"}},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `engine.driver must be "elasticsearch", "redis" or "bleve", got "solr"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_AddrsPerDriver(t *testing.T) {
	tests := []struct {
		driver  string
		addrs   []string
		wantErr bool
	}{
		{DriverElasticsearch, nil, true},
		{DriverElasticsearch, []string{"http://localhost:9200"}, false},
		{DriverRedis, nil, true},
		{DriverRedis, []string{"localhost:6379"}, false},
		{DriverBleve, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := Config{
				HTTP:   HTTPConfig{Port: 8080},
				Engine: EngineConfig{Driver: tt.driver, Addrs: tt.addrs},
			}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 0},
		Engine: EngineConfig{Driver: DriverBleve},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MaxResultsCap(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Engine: EngineConfig{Driver: DriverBleve},
		Search: SearchConfig{MaxResults: MaxResultsCap + 1},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for max_results above cap")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Engine.Driver != DriverElasticsearch {
		t.Errorf("expected Driver=elasticsearch, got %q", cfg.Engine.Driver)
	}
	if cfg.Engine.Index != "news" {
		t.Errorf("expected Index=news, got %q", cfg.Engine.Index)
	}
	if cfg.Engine.Timeout() != 5*time.Second {
		t.Errorf("expected Timeout=5s, got %s", cfg.Engine.Timeout())
	}
	if cfg.Engine.PoolSize != 10 {
		t.Errorf("expected PoolSize=10, got %d", cfg.Engine.PoolSize)
	}
	if cfg.Engine.ReadinessTimeout != 30 {
		t.Errorf("expected ReadinessTimeout=30, got %d", cfg.Engine.ReadinessTimeout)
	}
	if cfg.Search.MaxResults != 10 {
		t.Errorf("expected MaxResults=10, got %d", cfg.Search.MaxResults)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Engine: EngineConfig{Driver: DriverRedis, Index: "articles", TimeoutMs: 250},
		Search: SearchConfig{MaxResults: 25},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Engine.Driver != DriverRedis || cfg.Engine.Index != "articles" {
		t.Errorf("engine overridden: %+v", cfg.Engine)
	}
	if cfg.Engine.Timeout() != 250*time.Millisecond {
		t.Errorf("expected Timeout=250ms, got %s", cfg.Engine.Timeout())
	}
	if cfg.Search.MaxResults != 25 {
		t.Errorf("expected MaxResults=25, got %d", cfg.Search.MaxResults)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("NEWSDEX_TEST_ES", "http://es:9200")

	cfg, err := Parse([]byte(`
http:
  port: ${NEWSDEX_TEST_PORT:-8080}
engine:
  driver: elasticsearch
  addrs: ["${NEWSDEX_TEST_ES}"]
  password: "${NEWSDEX_TEST_UNSET}"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.HTTP.Port)
	}
	if len(cfg.Engine.Addrs) != 1 || cfg.Engine.Addrs[0] != "http://es:9200" {
		t.Errorf("addrs = %v", cfg.Engine.Addrs)
	}
	if cfg.Engine.Password != "" {
		t.Errorf("expected empty password, got %q", cfg.Engine.Password)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("expected parse error, got %v", err)
	}
	if _, err := Parse([]byte("http:\n  port: 8080\nengine:\n  driver: redis\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	body := "http:\n  port: 9000\nengine:\n  driver: bleve\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9000 || cfg.Engine.Driver != DriverBleve {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
