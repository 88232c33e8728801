// Document command group.
package main

import "github.com/spf13/cobra"

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage documents within a project",
}

func init() {
	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDeleteCmd)
}
