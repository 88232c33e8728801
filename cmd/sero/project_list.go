// Project list command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		projects, err := store.Projects().List()
		if err != nil {
			return fmt.Errorf("list projects: %w", err)
		}

		if flagJSON {
			return printJSON(projects)
		}
		if len(projects) == 0 {
			fmt.Println("No projects.")
			return nil
		}
		for _, p := range projects {
			fmt.Printf("%s  %s\n", p.ProjectID, p.Name)
		}
		return nil
	},
}
