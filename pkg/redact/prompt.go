package redact

import (
	"github.com/RamonOpazo/sero-sub005/pkg/staging"
	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

// PromptSession is a staging session over redaction prompts.
type PromptSession = staging.Session[types.Prompt, types.PromptAttrs, types.PromptAttrs]

// PromptAdapter is the store surface a prompt session commits against.
type PromptAdapter = staging.Adapter[types.Prompt, types.PromptAttrs, types.PromptAttrs]

// Compile-time contract checks.
var _ staging.Comparator[types.Prompt] = PromptComparator{}
var _ staging.Transform[types.Prompt, types.PromptAttrs, types.PromptAttrs] = PromptTransform{}

// PromptComparator compares prompts by their caller-owned fields.
type PromptComparator struct{}

func (PromptComparator) ID(p types.Prompt) string { return p.PromptID }

func (PromptComparator) Equal(a, b types.Prompt) bool {
	return a.Title == b.Title && a.Directive == b.Directive && a.Text == b.Text
}

func (PromptComparator) Clone(p types.Prompt) types.Prompt { return p }

// PromptTransform maps prompts to and from their wire attrs.
type PromptTransform struct{}

func (PromptTransform) ForCreate(p types.Prompt) types.PromptAttrs { return p.Attrs() }

func (PromptTransform) ForUpdate(p types.Prompt) types.PromptAttrs { return p.Attrs() }

func (PromptTransform) FromWire(raw types.Prompt) types.Prompt { return raw }

func (PromptTransform) Validate(p types.Prompt) error { return p.Validate() }

// NewPromptSession builds a staging session for the prompts of one
// document over the given store adapter.
func NewPromptSession(documentID string, adapter PromptAdapter, opts ...staging.Option) *PromptSession {
	return staging.NewSession[types.Prompt, types.PromptAttrs, types.PromptAttrs](
		documentID, PromptComparator{}, PromptTransform{}, adapter, opts...,
	)
}
