// cmd/ragbench/main.go
package main

import (
	ragbench "github.com/mwiater/ragbench/internal/commands"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = ragbench.SetVersionInfo
	executeCmd     = ragbench.Execute
)

// main starts the ragbench CLI application by delegating to the
// cobra root command defined in the commands package.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
