package types

import "time"

// Selection is a redaction rectangle on a document. Coordinates are
// normalized to the page size, so a selection renders correctly at any zoom
// level. A nil PageNumber means the rectangle applies to every page.
type Selection struct {
	SelectionID string     // UUID v7, generated on creation.
	DocumentID  string     // Owning document.
	PageNumber  *int       // 1-based page, nil for document-wide selections.
	X           float64    // Left edge, normalized [0, 1).
	Y           float64    // Top edge, normalized [0, 1).
	Width       float64    // Normalized width, (0, 1].
	Height      float64    // Normalized height, (0, 1].
	Confidence  *float64   // Detection confidence [0, 1]; nil for manual selections.
	CreatedAt   time.Time  // Timestamp of creation (server-owned).
	UpdatedAt   time.Time  // Timestamp of last modification (server-owned).
}

// SelectionAttrs is the wire payload for selection create and update calls.
// It carries exactly the caller-owned fields; identity, document scope, and
// timestamps are supplied by the server.
type SelectionAttrs struct {
	PageNumber *int     `json:"page_number,omitempty"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Attrs extracts the caller-owned fields of the selection.
func (s *Selection) Attrs() SelectionAttrs {
	return SelectionAttrs{
		PageNumber: s.PageNumber,
		X:          s.X,
		Y:          s.Y,
		Width:      s.Width,
		Height:     s.Height,
		Confidence: s.Confidence,
	}
}

// Validate checks geometry and confidence ranges.
func (a SelectionAttrs) Validate() error {
	if a.Width <= 0 || a.Height <= 0 {
		return ErrInvalidGeometry
	}
	if a.X < 0 || a.Y < 0 || a.X+a.Width > 1 || a.Y+a.Height > 1 {
		return ErrInvalidGeometry
	}
	if a.PageNumber != nil && *a.PageNumber < 1 {
		return ErrInvalidPage
	}
	if a.Confidence != nil && (*a.Confidence < 0 || *a.Confidence > 1) {
		return ErrInvalidConfidence
	}
	return nil
}

// Validate checks the selection's caller-owned fields.
func (s *Selection) Validate() error {
	return s.Attrs().Validate()
}
