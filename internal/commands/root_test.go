// internal/commands/root_test.go
package ragbench

import (
	"bytes"
	"strings"
	"testing"
)

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"nonexistent"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	_, err := rootCmd.ExecuteC()

	if err == nil {
		t.Error("Expected an error for a nonexistent command, but got none")
	}

	expected := "unknown command \"nonexistent\" for \"ragbench\""
	if !strings.Contains(b.String(), expected) {
		t.Errorf("Expected output to contain '%s', but got '%s'", expected, b.String())
	}
}

func TestSetVersionInfo(t *testing.T) {
	prev := [3]string{appVersion, appCommit, appDate}
	t.Cleanup(func() { SetVersionInfo(prev[0], prev[1], prev[2]) })

	SetVersionInfo("1.2.3", "abc123", "2025-12-30")
	if appVersion != "1.2.3" || appCommit != "abc123" || appDate != "2025-12-30" {
		t.Fatalf("version info not stored: %s %s %s", appVersion, appCommit, appDate)
	}
}
