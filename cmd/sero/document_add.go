// Document add command registers a PDF under a project.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

var (
	documentProject string
	documentName    string
	documentPages   int
)

var documentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a document to a project",
	Long: `Add registers a document under the given project.

Example:
  sero document add --project <project-id> --name "report.pdf" --pages 12`,
	Args: cobra.NoArgs,
	RunE: runDocumentAdd,
}

func init() {
	documentAddCmd.Flags().StringVar(&documentProject, "project", "", "owning project id (required)")
	documentAddCmd.Flags().StringVar(&documentName, "name", "", "name for the document (required)")
	documentAddCmd.Flags().IntVar(&documentPages, "pages", 0, "page count of the source PDF")
	_ = documentAddCmd.MarkFlagRequired("project")
	_ = documentAddCmd.MarkFlagRequired("name")
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	store, _, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	d := &types.Document{
		ProjectID: documentProject,
		Name:      documentName,
		PageCount: documentPages,
	}
	id, err := store.Documents().Put(d)
	if err != nil {
		return fmt.Errorf("add document: %w", err)
	}

	if flagJSON {
		return printJSON(d)
	}
	fmt.Printf("Added document %s (%s)\n", d.Name, id)
	return nil
}
