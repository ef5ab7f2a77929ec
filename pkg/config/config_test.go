package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsend/pkg/config"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(config.WithEnvFile(""), config.WithLookup(noEnv))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "formsend.yaml")
	yamlDoc := []byte(`
server:
  address: ":9090"
  rate_limit:
    rps: 5
  cors:
    max_age: 1h
client:
  timeout: 5s
log:
  level: debug
`)
	if err := os.WriteFile(file, yamlDoc, 0o600); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("FORMSEND_LOG_LEVEL=warn\nFORMSEND_CLIENT_BASE_URL=http://dotenv.test\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(
		config.WithFile(file),
		config.WithEnvFile(envFile),
		config.WithLookup(envMap(map[string]string{
			"FORMSEND_CLIENT_BASE_URL":     "http://env.test",
			"FORMSEND_SERVER_CORS_ORIGINS": "http://a.test, http://b.test",
		})),
	)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := config.Default()
	want.Server.Address = ":9090"
	want.Server.RateLimit.RPS = 5
	want.Server.CORS.MaxAge = time.Hour
	want.Server.CORS.AllowOrigins = []string{"http://a.test", "http://b.test"}
	want.Client.Timeout = 5 * time.Second
	want.Client.BaseURL = "http://env.test"
	want.Log.Level = "warn"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(file, []byte("server:\n  address: \":7000\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(config.WithEnvFile(""), config.WithLookup(envMap(map[string]string{"FORMSEND_CONFIG": file})))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":7000" {
		t.Fatalf("expected address from file, got %q", cfg.Server.Address)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := config.Load(config.WithFile(filepath.Join(t.TempDir(), "missing.yaml")), config.WithLookup(noEnv)); err == nil {
		t.Fatalf("expected error for missing config file")
	}
	if _, err := config.Load(config.WithEnvFile(""), config.WithLookup(envMap(map[string]string{"FORMSEND_CLIENT_TIMEOUT": "soon"}))); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
	if _, err := config.Parse([]byte("server: [")); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestHlogLevel(t *testing.T) {
	cases := map[string]hlog.Level{
		"":        hlog.LevelInfo,
		"DEBUG":   hlog.LevelDebug,
		"warning": hlog.LevelWarn,
		"error":   hlog.LevelError,
	}
	for name, want := range cases {
		got, err := config.LogConfig{Level: name}.HlogLevel()
		if err != nil || got != want {
			t.Fatalf("level %q = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := (config.LogConfig{Level: "loud"}).HlogLevel(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
