package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalProjectPath accepts zero or one project_path argument.
// Commands default to the current directory when it is omitted.
func OptionalProjectPath(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./collection`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

func projectPathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
