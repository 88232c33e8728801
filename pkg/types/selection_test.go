package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestSelectionValidate(t *testing.T) {
	tests := []struct {
		name      string
		selection Selection
		wantErr   error
	}{
		{
			name:      "valid page-scoped selection",
			selection: Selection{PageNumber: intPtr(1), X: 0.1, Y: 0.2, Width: 0.3, Height: 0.05},
		},
		{
			name:      "valid document-wide selection",
			selection: Selection{X: 0, Y: 0, Width: 1, Height: 1},
		},
		{
			name:      "valid detected selection with confidence",
			selection: Selection{X: 0.5, Y: 0.5, Width: 0.2, Height: 0.1, Confidence: floatPtr(0.92)},
		},
		{
			name:      "zero width",
			selection: Selection{X: 0.1, Y: 0.1, Width: 0, Height: 0.1},
			wantErr:   ErrInvalidGeometry,
		},
		{
			name:      "negative height",
			selection: Selection{X: 0.1, Y: 0.1, Width: 0.1, Height: -0.1},
			wantErr:   ErrInvalidGeometry,
		},
		{
			name:      "negative origin",
			selection: Selection{X: -0.1, Y: 0.1, Width: 0.1, Height: 0.1},
			wantErr:   ErrInvalidGeometry,
		},
		{
			name:      "rectangle overflows right edge",
			selection: Selection{X: 0.9, Y: 0.1, Width: 0.2, Height: 0.1},
			wantErr:   ErrInvalidGeometry,
		},
		{
			name:      "rectangle overflows bottom edge",
			selection: Selection{X: 0.1, Y: 0.95, Width: 0.1, Height: 0.1},
			wantErr:   ErrInvalidGeometry,
		},
		{
			name:      "zero page number",
			selection: Selection{PageNumber: intPtr(0), X: 0.1, Y: 0.1, Width: 0.1, Height: 0.1},
			wantErr:   ErrInvalidPage,
		},
		{
			name:      "confidence above one",
			selection: Selection{X: 0.1, Y: 0.1, Width: 0.1, Height: 0.1, Confidence: floatPtr(1.5)},
			wantErr:   ErrInvalidConfidence,
		},
		{
			name:      "negative confidence",
			selection: Selection{X: 0.1, Y: 0.1, Width: 0.1, Height: 0.1, Confidence: floatPtr(-0.1)},
			wantErr:   ErrInvalidConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.selection.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSelectionAttrs(t *testing.T) {
	s := Selection{
		SelectionID: "sel-1",
		DocumentID:  "doc-1",
		PageNumber:  intPtr(3),
		X:           0.1,
		Y:           0.2,
		Width:       0.3,
		Height:      0.05,
		Confidence:  floatPtr(0.8),
	}
	attrs := s.Attrs()

	assert.Equal(t, s.PageNumber, attrs.PageNumber)
	assert.Equal(t, s.X, attrs.X)
	assert.Equal(t, s.Y, attrs.Y)
	assert.Equal(t, s.Width, attrs.Width)
	assert.Equal(t, s.Height, attrs.Height)
	assert.Equal(t, s.Confidence, attrs.Confidence)
}
