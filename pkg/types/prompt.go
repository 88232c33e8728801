package types

import "time"

// Prompt directives. A directive tells the detection pipeline what to do
// with content matched by the prompt text.
const (
	DirectiveRedact   = "redact"
	DirectivePreserve = "preserve"
)

// validDirectives is the set of recognized directive values.
var validDirectives = map[string]bool{
	DirectiveRedact:   true,
	DirectivePreserve: true,
}

// Prompt is a natural-language redaction instruction scoped to a document.
type Prompt struct {
	PromptID   string    // UUID v7, generated on creation.
	DocumentID string    // Owning document.
	Title      string    // Short label shown in lists (required, non-empty).
	Directive  string    // One of the Directive constants.
	Text       string    // Instruction body handed to the detection pipeline.
	CreatedAt  time.Time // Timestamp of creation (server-owned).
	UpdatedAt  time.Time // Timestamp of last modification (server-owned).
}

// PromptAttrs is the wire payload for prompt create and update calls.
type PromptAttrs struct {
	Title     string `json:"title"`
	Directive string `json:"directive"`
	Text      string `json:"text"`
}

// Attrs extracts the caller-owned fields of the prompt.
func (p *Prompt) Attrs() PromptAttrs {
	return PromptAttrs{
		Title:     p.Title,
		Directive: p.Directive,
		Text:      p.Text,
	}
}

// Validate checks the prompt payload fields.
func (a PromptAttrs) Validate() error {
	if a.Title == "" {
		return ErrInvalidName
	}
	if !validDirectives[a.Directive] {
		return ErrInvalidDirective
	}
	return nil
}

// Validate checks the prompt's caller-owned fields.
func (p *Prompt) Validate() error {
	return p.Attrs().Validate()
}
