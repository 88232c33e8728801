// Document get command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var documentGetCmd = &cobra.Command{
	Use:   "get <document-id>",
	Short: "Show one document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		d, err := store.Documents().Get(args[0])
		if err != nil {
			return fmt.Errorf("get document: %w", err)
		}

		if flagJSON {
			return printJSON(d)
		}
		fmt.Printf("ID:      %s\n", d.DocumentID)
		fmt.Printf("Project: %s\n", d.ProjectID)
		fmt.Printf("Name:    %s\n", d.Name)
		fmt.Printf("Pages:   %d\n", d.PageCount)
		fmt.Printf("Created: %s\n", d.CreatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}
