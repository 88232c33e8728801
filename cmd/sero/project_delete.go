// Project delete command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and everything under it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.Projects().Delete(args[0]); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		fmt.Printf("Deleted project %s\n", args[0])
		return nil
	},
}
