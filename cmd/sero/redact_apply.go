// Redact apply command. Reads an edits file, stages its operations in a
// session over the document's current selections and prompts, commits,
// and reports per-item outcomes.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/RamonOpazo/sero-sub005/pkg/redact"
	"github.com/RamonOpazo/sero-sub005/pkg/staging"
	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

var (
	redactApplyDocument string
	redactApplyFile     string
)

// selectionEdit is one selection entry in the edits file. ID is required
// for updates and ignored for creations.
type selectionEdit struct {
	ID string `json:"id,omitempty"`
	types.SelectionAttrs
}

// promptEdit is one prompt entry in the edits file.
type promptEdit struct {
	ID string `json:"id,omitempty"`
	types.PromptAttrs
}

// editSet groups the staged operations for one entity kind.
type editSet[E any] struct {
	Create []E      `json:"create,omitempty"`
	Update []E      `json:"update,omitempty"`
	Delete []string `json:"delete,omitempty"`
}

// editsFile is the document-level payload of --file.
type editsFile struct {
	Selections editSet[selectionEdit] `json:"selections"`
	Prompts    editSet[promptEdit]    `json:"prompts"`
}

var redactApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Stage edits from a file and commit them",
	Long: `Apply loads the document's selections and prompts, stages the
creations, updates, and deletions listed in the edits file, commits
the whole batch, and prints one outcome line per item.

The edits file is JSON:

  {
    "selections": {
      "create": [{"page_number": 1, "x": 0.1, "y": 0.2, "width": 0.3, "height": 0.05}],
      "update": [{"id": "<selection-id>", "x": 0.15, "y": 0.2, "width": 0.3, "height": 0.05}],
      "delete": ["<selection-id>"]
    },
    "prompts": {
      "create": [{"title": "Names", "directive": "redact", "text": "Redact personal names"}]
    }
  }

Exits with code 1 when any item fails to commit; items that failed
stay staged and can be retried with a later apply.`,
	Args: cobra.NoArgs,
	RunE: runRedactApply,
}

func init() {
	redactApplyCmd.Flags().StringVar(&redactApplyDocument, "document", "", "document id (required)")
	redactApplyCmd.Flags().StringVar(&redactApplyFile, "file", "", "path to the edits JSON file (required)")
	_ = redactApplyCmd.MarkFlagRequired("document")
	_ = redactApplyCmd.MarkFlagRequired("file")
}

func runRedactApply(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(redactApplyFile)
	if err != nil {
		return fmt.Errorf("read edits file: %w", err)
	}
	var edits editsFile
	if err := json.Unmarshal(raw, &edits); err != nil {
		return fmt.Errorf("parse edits file: %w", err)
	}

	store, _, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	ctx := context.Background()
	var failed int

	failed += applySelectionEdits(ctx, redactApplyDocument, store.Selections(), edits.Selections)
	failed += applyPromptEdits(ctx, redactApplyDocument, store.Prompts(), edits.Prompts)

	if failed > 0 {
		return fmt.Errorf("%d item(s) failed to commit", failed)
	}
	return nil
}

func applySelectionEdits(ctx context.Context, documentID string, adapter redact.SelectionAdapter, edits editSet[selectionEdit]) int {
	if len(edits.Create) == 0 && len(edits.Update) == 0 && len(edits.Delete) == 0 {
		return 0
	}

	sess := redact.NewSelectionSession(documentID, adapter)
	if err := sess.Reload(ctx); err != nil {
		fmt.Printf("selections: %v\n", err)
		return 1
	}

	var failed int
	for _, e := range edits.Create {
		attrs := e.SelectionAttrs
		if _, err := sess.Create(types.Selection{
			DocumentID: documentID,
			PageNumber: attrs.PageNumber,
			X:          attrs.X,
			Y:          attrs.Y,
			Width:      attrs.Width,
			Height:     attrs.Height,
			Confidence: attrs.Confidence,
		}); err != nil {
			fmt.Printf("selection create: %v\n", err)
			failed++
		}
	}
	for _, e := range edits.Update {
		attrs := e.SelectionAttrs
		err := sess.Update(e.ID, func(s types.Selection) types.Selection {
			s.PageNumber = attrs.PageNumber
			s.X = attrs.X
			s.Y = attrs.Y
			s.Width = attrs.Width
			s.Height = attrs.Height
			s.Confidence = attrs.Confidence
			return s
		})
		if err != nil {
			fmt.Printf("selection update %s: %v\n", e.ID, err)
			failed++
		}
	}
	for _, id := range edits.Delete {
		if err := sess.Delete(id); err != nil {
			fmt.Printf("selection delete %s: %v\n", id, err)
			failed++
		}
	}

	printStagedCounts("selections", sess.Counts())
	failed += printReport("selection", sess.CommitAll(ctx))
	return failed
}

func applyPromptEdits(ctx context.Context, documentID string, adapter redact.PromptAdapter, edits editSet[promptEdit]) int {
	if len(edits.Create) == 0 && len(edits.Update) == 0 && len(edits.Delete) == 0 {
		return 0
	}

	sess := redact.NewPromptSession(documentID, adapter)
	if err := sess.Reload(ctx); err != nil {
		fmt.Printf("prompts: %v\n", err)
		return 1
	}

	var failed int
	for _, e := range edits.Create {
		attrs := e.PromptAttrs
		if _, err := sess.Create(types.Prompt{
			DocumentID: documentID,
			Title:      attrs.Title,
			Directive:  attrs.Directive,
			Text:       attrs.Text,
		}); err != nil {
			fmt.Printf("prompt create: %v\n", err)
			failed++
		}
	}
	for _, e := range edits.Update {
		attrs := e.PromptAttrs
		err := sess.Update(e.ID, func(p types.Prompt) types.Prompt {
			p.Title = attrs.Title
			p.Directive = attrs.Directive
			p.Text = attrs.Text
			return p
		})
		if err != nil {
			fmt.Printf("prompt update %s: %v\n", e.ID, err)
			failed++
		}
	}
	for _, id := range edits.Delete {
		if err := sess.Delete(id); err != nil {
			fmt.Printf("prompt delete %s: %v\n", id, err)
			failed++
		}
	}

	printStagedCounts("prompts", sess.Counts())
	failed += printReport("prompt", sess.CommitAll(ctx))
	return failed
}

func printStagedCounts(kind string, c staging.Counts) {
	fmt.Printf("%s staged: %d creation(s), %d edition(s), %d deletion(s)\n",
		kind, c.Creations, c.Editions, c.Deletions)
}

// printReport writes one line per commit outcome and returns the number
// of failed items. Outcomes print in ID order so output is stable.
func printReport(kind string, report staging.Report) int {
	ids := make([]string, 0, len(report.Outcomes))
	for id := range report.Outcomes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var failed int
	for _, id := range ids {
		o := report.Outcomes[id]
		switch {
		case o.Err != nil:
			fmt.Printf("%s %s %s: FAILED: %v\n", kind, o.Op, id, o.Err.Err)
			failed++
		case o.NewID != "":
			fmt.Printf("%s %s %s: ok (id %s)\n", kind, o.Op, id, o.NewID)
		default:
			fmt.Printf("%s %s %s: ok\n", kind, o.Op, id)
		}
	}
	return failed
}
