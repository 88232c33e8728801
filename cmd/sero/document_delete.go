// Document delete command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var documentDeleteCmd = &cobra.Command{
	Use:   "delete <document-id>",
	Short: "Delete a document and its selections and prompts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.Documents().Delete(args[0]); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		fmt.Printf("Deleted document %s\n", args[0])
		return nil
	},
}
