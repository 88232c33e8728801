package types

import "time"

// Project groups the documents of one redaction effort.
type Project struct {
	ProjectID   string    // UUID v7, generated on creation.
	Name        string    // Human-readable name (required, non-empty).
	Description string    // Optional free-form description.
	CreatedAt   time.Time // Timestamp of creation.
	UpdatedAt   time.Time // Timestamp of last modification.
}

// Validate checks the project's own fields.
// Returns ErrInvalidName if the name is empty.
func (p *Project) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	return nil
}
