package display

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ShouldOutputJSON determines if a command should output JSON based on flags
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	// Check if --json flag was explicitly set on the command
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Check global --json flag
	globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return globalFlag
}

// ContextFor picks terminal or plain formatting for a stream.
func ContextFor(f *os.File) ErrorContext {
	if f != nil && term.IsTerminal(int(f.Fd())) {
		return ErrorContextTerminal
	}
	return ErrorContextPlain
}
