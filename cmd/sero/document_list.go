// Document list command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var documentListProject string

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents of a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		docs, err := store.Documents().ListByProject(documentListProject)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}

		if flagJSON {
			return printJSON(docs)
		}
		if len(docs) == 0 {
			fmt.Println("No documents.")
			return nil
		}
		for _, d := range docs {
			fmt.Printf("%s  %s (%d pages)\n", d.DocumentID, d.Name, d.PageCount)
		}
		return nil
	},
}

func init() {
	documentListCmd.Flags().StringVar(&documentListProject, "project", "", "owning project id (required)")
	_ = documentListCmd.MarkFlagRequired("project")
}
