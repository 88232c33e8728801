package redact

import (
	"github.com/RamonOpazo/sero-sub005/pkg/staging"
	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

// SelectionSession is a staging session over redaction selections.
type SelectionSession = staging.Session[types.Selection, types.SelectionAttrs, types.SelectionAttrs]

// SelectionAdapter is the store surface a selection session commits
// against.
type SelectionAdapter = staging.Adapter[types.Selection, types.SelectionAttrs, types.SelectionAttrs]

// Compile-time contract checks.
var _ staging.Comparator[types.Selection] = SelectionComparator{}
var _ staging.Transform[types.Selection, types.SelectionAttrs, types.SelectionAttrs] = SelectionTransform{}

// SelectionComparator compares selections by their caller-owned fields.
// Server-owned timestamps never make a selection dirty.
type SelectionComparator struct{}

func (SelectionComparator) ID(s types.Selection) string { return s.SelectionID }

func (SelectionComparator) Equal(a, b types.Selection) bool {
	return a.X == b.X && a.Y == b.Y &&
		a.Width == b.Width && a.Height == b.Height &&
		intPtrEq(a.PageNumber, b.PageNumber) &&
		floatPtrEq(a.Confidence, b.Confidence)
}

func (SelectionComparator) Clone(s types.Selection) types.Selection {
	out := s
	if s.PageNumber != nil {
		p := *s.PageNumber
		out.PageNumber = &p
	}
	if s.Confidence != nil {
		c := *s.Confidence
		out.Confidence = &c
	}
	return out
}

// SelectionTransform maps selections to and from their wire attrs.
type SelectionTransform struct{}

func (SelectionTransform) ForCreate(s types.Selection) types.SelectionAttrs { return s.Attrs() }

func (SelectionTransform) ForUpdate(s types.Selection) types.SelectionAttrs { return s.Attrs() }

func (SelectionTransform) FromWire(raw types.Selection) types.Selection { return raw }

func (SelectionTransform) Validate(s types.Selection) error { return s.Validate() }

// NewSelectionSession builds a staging session for the selections of one
// document over the given store adapter.
func NewSelectionSession(documentID string, adapter SelectionAdapter, opts ...staging.Option) *SelectionSession {
	return staging.NewSession[types.Selection, types.SelectionAttrs, types.SelectionAttrs](
		documentID, SelectionComparator{}, SelectionTransform{}, adapter, opts...,
	)
}

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
