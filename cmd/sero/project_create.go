// Project create command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

var (
	projectName        string
	projectDescription string
)

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	Long: `Create registers a new redaction project.

Example:
  sero project create --name "Q3 disclosures"
  sero project create --name "Audit" --description "External audit batch" --json`,
	Args: cobra.NoArgs,
	RunE: runProjectCreate,
}

func init() {
	projectCreateCmd.Flags().StringVar(&projectName, "name", "", "name for the project (required)")
	projectCreateCmd.Flags().StringVar(&projectDescription, "description", "", "project description")
	_ = projectCreateCmd.MarkFlagRequired("name")
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	store, _, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	p := &types.Project{
		Name:        projectName,
		Description: projectDescription,
	}
	id, err := store.Projects().Put(p)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	if flagJSON {
		return printJSON(p)
	}
	fmt.Printf("Created project %s (%s)\n", p.Name, id)
	return nil
}
