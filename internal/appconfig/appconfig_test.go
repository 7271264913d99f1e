// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/ragbench/internal/table"
	"golang.org/x/text/language"
)

func writeConfig(t *testing.T, dir, name, payload string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestDecodedConfig covers the accessors of a fully populated config file.
func TestDecodedConfig(t *testing.T) {
	t.Parallel()

	var cfg Config
	payload := `{
        "fixture": "data/run-a.json",
        "datasets": ["data/run-b.json", "data/run-a.json"],
        "debug": true,
        "addr": ":9090",
        "locale": "sv",
        "defaultSort": "total_time",
        "defaultDirection": "desc"
    }`
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if !cfg.Debug || cfg.ListenAddr() != ":9090" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if got := cfg.DatasetPaths(); len(got) != 2 || got[0] != "data/run-a.json" || got[1] != "data/run-b.json" {
		t.Fatalf("DatasetPaths() = %v", got)
	}
	want := &table.SortConfig{Key: "total_time", Direction: table.Descending}
	if !cfg.DefaultSortConfig().Equal(want) {
		t.Fatalf("DefaultSortConfig() = %v, want %v", cfg.DefaultSortConfig(), want)
	}
}

func TestResolvePath(t *testing.T) {
	tempDir := t.TempDir()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })

	if got := ResolvePath(""); got != DefaultConfigPath {
		t.Fatalf("ResolvePath with no files = %q, want %q", got, DefaultConfigPath)
	}

	writeConfig(t, tempDir, "config.json", `{ "fixture": "legacy.json" }`)
	if got := ResolvePath(DefaultConfigPath); got != legacyConfigPath {
		t.Fatalf("ResolvePath with legacy file = %q, want %q", got, legacyConfigPath)
	}
	if got := ResolvePath("custom.json"); got != "custom.json" {
		t.Fatalf("explicit path must not fall back, got %q", got)
	}

	writeConfig(t, tempDir, DefaultConfigPath, `{ "fixture": "current.json" }`)
	if got := ResolvePath(""); got != DefaultConfigPath {
		t.Fatalf("ResolvePath with default file = %q, want %q", got, DefaultConfigPath)
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config
	if cfg.FixturePath() != defaultFixturePath {
		t.Fatalf("FixturePath() = %q", cfg.FixturePath())
	}
	if cfg.ReportOutputPath() != defaultReportPath {
		t.Fatalf("ReportOutputPath() = %q", cfg.ReportOutputPath())
	}
	if cfg.LogFilePath() != "ragbench.log" {
		t.Fatalf("LogFilePath() = %q", cfg.LogFilePath())
	}
	if cfg.ListenAddr() != ":8080" {
		t.Fatalf("ListenAddr() = %q", cfg.ListenAddr())
	}
	if cfg.CollationLocale().String() != language.English.String() {
		t.Fatalf("CollationLocale() = %v", cfg.CollationLocale())
	}
	if cfg.DefaultSortConfig() != nil {
		t.Fatalf("DefaultSortConfig() = %v, want nil", cfg.DefaultSortConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Locale: "de-DE", DefaultSort: "database", DefaultDirection: "ASC"}},
		{name: "bad locale", cfg: Config{Locale: "not a locale!"}, wantErr: true},
		{name: "bad direction", cfg: Config{DefaultDirection: "up"}, wantErr: true},
		{name: "unknown sort column", cfg: Config{DefaultSort: "latency"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestShowConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := Config{Fixture: "data/a.json", DefaultSort: "llm_time", DefaultDirection: "desc"}
	ShowConfig(&buf, "config/config.json", &cfg, Config{})
	out := buf.String()
	for _, want := range []string{
		"Config file: config/config.json",
		"Fixture:         data/a.json",
		"Default Sort:    llm_time desc",
		"Locale:          en",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("ShowConfig output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	ShowConfig(&buf, "", nil, Config{Addr: ":7000"})
	if !strings.Contains(buf.String(), "No config file loaded") || !strings.Contains(buf.String(), ":7000") {
		t.Fatalf("fallback output unexpected:\n%s", buf.String())
	}
}
