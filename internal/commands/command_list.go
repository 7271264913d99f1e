// internal/commands/command_list.go
package ragbench

import (
	"fmt"
	"io"
	"strings"
)

// CommandInfo is one line of the 'list commands' output.
type CommandInfo struct {
	Path        string
	Description string
}

// visibleCommands drops shell completion and help entries.
func visibleCommands(commands []CommandInfo) []CommandInfo {
	out := make([]CommandInfo, 0, len(commands))
	for _, c := range commands {
		if strings.Contains(c.Path, "completion") || strings.Contains(c.Path, " help") {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ListCommands writes commands as two aligned columns: indented path, then description.
func ListCommands(out io.Writer, commands []CommandInfo) {
	width := 0
	for _, c := range commands {
		width = max(width, len(c.Path))
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-*s  %s\n", width, c.Path, c.Description)
	}
}
