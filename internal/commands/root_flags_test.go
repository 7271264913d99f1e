// internal/commands/root_flags_test.go
package ragbench

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/ragbench/internal/appconfig"
	"github.com/mwiater/ragbench/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const sampleFixture = "../fixture/testdata/sample.json"

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

// resetAllFlags restores every flag of every command to its default.
func resetAllFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetAllFlags(sub)
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// testConfig writes a config that logs into the test's temp dir.
func testConfig(t *testing.T, extra string) string {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "ragbench.log")
	body := fmt.Sprintf(`{"logFile": %q, "fixture": %q%s}`, logPath, sampleFixture, extra)
	return writeTempConfig(t, body)
}

// run executes the root command with a fresh flag set and returns its output.
func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	resetAllFlags(rootCmd)
	t.Cleanup(func() {
		_ = logging.Close()
		rootCmd.SetArgs([]string{})
		resetAllFlags(rootCmd)
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	_, err := rootCmd.ExecuteC()
	return buf.String(), err
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ragbench.log")
	configPath := writeTempConfig(t, `{"fixture": "from-config.json", "locale": "de"}`)

	prevCfgFile := cfgFile
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
	})
	t.Cleanup(func() { _ = logging.Close() })

	for _, name := range []string{"debug", "fixture", "logFile", "locale"} {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("debug", "true")
	_ = rootCmd.PersistentFlags().Set("fixture", "from-flag.json")
	_ = rootCmd.PersistentFlags().Set("logFile", logPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s", configPath)
	}
	if !currentConfig.Debug {
		t.Fatalf("expected debug flag to flow into config: %+v", currentConfig)
	}
	if currentConfig.FixturePath() != "from-flag.json" {
		t.Fatalf("expected flag to override config fixture, got %s", currentConfig.FixturePath())
	}
	if currentConfig.Locale != "de" {
		t.Fatalf("expected locale from config, got %q", currentConfig.Locale)
	}
	if currentConfig.LogFilePath() != logPath {
		t.Fatalf("expected logFile %s, got %s", logPath, currentConfig.LogFilePath())
	}
}

func TestPersistentPreRunEInvalidConfig(t *testing.T) {
	configPath := writeTempConfig(t, `{"locale": "not a locale!", "logFile": ""}`)

	prevCfgFile := cfgFile
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
	})
	t.Cleanup(func() { _ = logging.Close() })

	for _, name := range []string{"locale", "logFile"} {
		resetFlag(name)
	}

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected error for invalid locale")
	}
}

func TestLegacyConfigPathFallback(t *testing.T) {
	dir := t.TempDir()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	logPath := filepath.Join(dir, "ragbench.log")
	body := fmt.Sprintf(`{"locale": "de", "logFile": %q}`, logPath)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}

	prevCfgFile := cfgFile
	cfgFile = appconfig.DefaultConfigPath
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
		_ = logging.Close()
	})
	for _, name := range []string{"debug", "fixture", "logFile", "locale"} {
		resetFlag(name)
	}

	initConfig()
	if err := ensureConfigLoaded(); err != nil {
		t.Fatalf("ensureConfigLoaded error: %v", err)
	}
	if got := viper.ConfigFileUsed(); got != "config.json" {
		t.Fatalf("expected legacy config.json to be read, got %q", got)
	}
	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}
	if currentConfig.Locale != "de" || currentConfig.ConfigPath != "config.json" {
		t.Fatalf("expected legacy settings, got %+v", currentConfig)
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	configPath := testConfig(t, "")

	out, err := run(t, configPath, "--debug", "show", "config")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}
	if !strings.Contains(out, "Config file: "+configPath) {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Debug:           true") {
		t.Fatalf("expected debug in output, got %s", out)
	}
	if !strings.Contains(out, "Fixture:         "+sampleFixture) {
		t.Fatalf("expected fixture in output, got %s", out)
	}

	out, err = run(t, configPath, "show", "config", "--dump")
	if err != nil {
		t.Fatalf("ExecuteC --dump error: %v", err)
	}
	if !strings.Contains(out, "Fixture") || !strings.Contains(out, sampleFixture) {
		t.Fatalf("expected dumped struct, got %s", out)
	}
}

func TestTableCommandJSON(t *testing.T) {
	configPath := testConfig(t, "")

	out, err := run(t, configPath, "table", "--search", "hnsw", "--sort", "total_time", "--dir", "desc", "--format", "json")
	if err != nil {
		t.Fatalf("table error: %v\n%s", err, out)
	}
	var proj struct {
		Count   int `json:"count"`
		Total   int `json:"total"`
		Records []struct {
			Database string `json:"database"`
		} `json:"records"`
		Sort string `json:"sort"`
	}
	if err := json.Unmarshal([]byte(out), &proj); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if proj.Count != 3 || proj.Total != 9 {
		t.Fatalf("expected 3 of 9 rows, got %d of %d", proj.Count, proj.Total)
	}
	if proj.Records[0].Database != "pgvector" || proj.Sort != "total_time desc" {
		t.Fatalf("unexpected order: %+v", proj)
	}
}

func TestTableCommandText(t *testing.T) {
	configPath := testConfig(t, "")

	out, err := run(t, configPath, "table", "--kind", "quality", "--sort", "f1", "--dir", "desc")
	if err != nil {
		t.Fatalf("table error: %v", err)
	}
	if !strings.Contains(out, "Precision") || !strings.Contains(out, "3 of 3 rows (sort: f1 desc)") {
		t.Fatalf("unexpected quality table:\n%s", out)
	}

	out, err = run(t, configPath, "table", "--search", "no such query")
	if err != nil {
		t.Fatalf("table error: %v", err)
	}
	if !strings.Contains(out, "No results found matching your criteria.") {
		t.Fatalf("expected empty message, got:\n%s", out)
	}

	if _, err := run(t, configPath, "table", "--sort", "latency"); err == nil {
		t.Fatal("expected unknown column error")
	}
	if _, err := run(t, configPath, "table", "--format", "xml"); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestWinnersCommand(t *testing.T) {
	configPath := testConfig(t, "")

	out, err := run(t, configPath, "winners")
	if err != nil {
		t.Fatalf("winners error: %v", err)
	}
	for _, want := range []string{"Winners by Metric (sample)", "Mean Total", "Qdrant", "1180.25ms", "Latency Growth by top_k", "ChromaDB       top_k 1 -> 10: +50.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCompareCommand(t *testing.T) {
	configPath := testConfig(t, "")

	out, err := run(t, configPath, "compare", "--before", sampleFixture, "--after", sampleFixture)
	if err != nil {
		t.Fatalf("compare error: %v", err)
	}
	if !strings.Contains(out, "Status") || !strings.Contains(out, "same") || strings.Contains(out, "better") {
		t.Fatalf("expected only unchanged metrics:\n%s", out)
	}

	if _, err := run(t, configPath, "compare", "--before", sampleFixture); err == nil {
		t.Fatal("expected error without --after")
	}
}

func TestValidateCommand(t *testing.T) {
	configPath := testConfig(t, "")

	out, err := run(t, configPath, "validate")
	if err != nil {
		t.Fatalf("validate error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "OK "+sampleFixture+": 9 raw results, 3 databases") {
		t.Fatalf("unexpected validate output:\n%s", out)
	}

	broken := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(broken, []byte(`{"metadata": {}}`), 0o644); err != nil {
		t.Fatalf("write broken fixture: %v", err)
	}
	out, err = run(t, configPath, "validate", sampleFixture, broken)
	if err == nil {
		t.Fatalf("expected validation failure:\n%s", out)
	}
	if !strings.Contains(out, "FAIL "+broken) {
		t.Fatalf("expected FAIL line, got:\n%s", out)
	}
}

func TestReportCommand(t *testing.T) {
	configPath := testConfig(t, "")
	output := filepath.Join(t.TempDir(), "site", "report.html")

	out, err := run(t, configPath, "report", "--output", output, "--title", "Nightly Run", "--database", "Qdrant")
	if err != nil {
		t.Fatalf("report error: %v", err)
	}
	if !strings.Contains(out, "Report written to "+output) {
		t.Fatalf("unexpected output: %s", out)
	}
	html, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(html), "Nightly Run") {
		t.Fatalf("report missing title")
	}
}

func TestListCommands(t *testing.T) {
	configPath := testConfig(t, "")

	out, err := run(t, configPath, "list", "commands")
	if err != nil {
		t.Fatalf("list commands error: %v", err)
	}
	for _, want := range []string{"Commands and Subcommands:", "  ragbench table", "    ragbench show config"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = run(t, configPath, "list", "datasets")
	if err != nil {
		t.Fatalf("list datasets error: %v", err)
	}
	if !strings.Contains(out, "sample") || !strings.Contains(out, "llama3.1:8b") {
		t.Fatalf("unexpected datasets output:\n%s", out)
	}
}
