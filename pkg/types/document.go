package types

import "time"

// Document is a PDF under redaction within a project. The file bytes live
// outside the store; the document row carries identity and display metadata.
type Document struct {
	DocumentID string    // UUID v7, generated on creation.
	ProjectID  string    // Owning project.
	Name       string    // Human-readable name (required, non-empty).
	PageCount  int       // Number of pages in the source PDF.
	CreatedAt  time.Time // Timestamp of creation.
	UpdatedAt  time.Time // Timestamp of last modification.
}

// Validate checks the document's own fields.
func (d *Document) Validate() error {
	if d.Name == "" {
		return ErrInvalidName
	}
	if d.PageCount < 0 {
		return ErrInvalidPage
	}
	return nil
}
