// Redact command group. Selections and prompts are edited through a
// staging session and committed in bulk rather than written row by row.
package main

import (
	"github.com/spf13/cobra"
)

var redactCmd = &cobra.Command{
	Use:   "redact",
	Short: "Stage and commit redaction selections and prompts",
}

func init() {
	redactCmd.AddCommand(redactApplyCmd)
	redactCmd.AddCommand(redactListCmd)
}
