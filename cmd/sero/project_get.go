// Project get command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectGetCmd = &cobra.Command{
	Use:   "get <project-id>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		p, err := store.Projects().Get(args[0])
		if err != nil {
			return fmt.Errorf("get project: %w", err)
		}

		if flagJSON {
			return printJSON(p)
		}
		fmt.Printf("ID:          %s\n", p.ProjectID)
		fmt.Printf("Name:        %s\n", p.Name)
		fmt.Printf("Description: %s\n", p.Description)
		fmt.Printf("Created:     %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}
