package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nmodel_path: /models/m.json\nwatch: true\nlog_level: debug\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ModelPath != "/models/m.json" || !cfg.Watch || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","model_path":"/m/model.json","environment":"production"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ModelPath != "/m/model.json" || cfg.Environment != "production" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nmodel_path=\"/x/m.json\"\nmax_body_bytes=2048\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.ModelPath != "/x/m.json" || cfg.MaxBodyBytes != 2048 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected error on missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("INFERD_ADDR", ":1234")
	t.Setenv("INFERD_MODEL_PATH", "/env/m.json")
	t.Setenv("INFERD_LOG_LEVEL", "warn")
	t.Setenv("INFERD_ENV", "production")
	t.Setenv("INFERD_WATCH", "true")
	cfg := ApplyEnv(Config{Addr: ":8080", ModelPath: "/file/m.json"})
	if cfg.Addr != ":1234" || cfg.ModelPath != "/env/m.json" || cfg.LogLevel != "warn" || cfg.Environment != "production" || !cfg.Watch {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults(Config{})
	if cfg.Addr != ":8080" || cfg.LogLevel != "info" || cfg.Environment != "development" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxBodyBytes != 1<<20 || cfg.ShutdownSeconds != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	// Explicit values survive.
	cfg = Defaults(Config{Addr: ":9", LogLevel: "debug"})
	if cfg.Addr != ":9" || cfg.LogLevel != "debug" {
		t.Fatalf("defaults overwrote explicit values: %+v", cfg)
	}
}
