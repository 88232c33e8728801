// Redact list command. Shows the document's selections and prompts as
// seen through a fresh session.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RamonOpazo/sero-sub005/pkg/redact"
)

var redactListDocument string

var redactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a document's selections and prompts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		ctx := context.Background()

		selSess := redact.NewSelectionSession(redactListDocument, store.Selections())
		if err := selSess.Reload(ctx); err != nil {
			return fmt.Errorf("load selections: %w", err)
		}
		prSess := redact.NewPromptSession(redactListDocument, store.Prompts())
		if err := prSess.Reload(ctx); err != nil {
			return fmt.Errorf("load prompts: %w", err)
		}

		selections := selSess.Items()
		prompts := prSess.Items()

		if flagJSON {
			return printJSON(map[string]any{
				"selections": selections,
				"prompts":    prompts,
			})
		}

		fmt.Printf("Selections (%d):\n", len(selections))
		for _, e := range selections {
			s := e.Payload
			page := "all pages"
			if s.PageNumber != nil {
				page = fmt.Sprintf("page %d", *s.PageNumber)
			}
			fmt.Printf("  %s  [%s]  %s  x=%.3f y=%.3f w=%.3f h=%.3f\n",
				e.ID, e.Stage, page, s.X, s.Y, s.Width, s.Height)
		}
		fmt.Printf("Prompts (%d):\n", len(prompts))
		for _, e := range prompts {
			p := e.Payload
			fmt.Printf("  %s  [%s]  %s: %s\n", e.ID, e.Stage, p.Directive, p.Title)
		}
		return nil
	},
}

func init() {
	redactListCmd.Flags().StringVar(&redactListDocument, "document", "", "document id (required)")
	_ = redactListCmd.MarkFlagRequired("document")
}
