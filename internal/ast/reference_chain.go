package ast

import "github.com/cwbudde/minijavac/internal/token"

// ChainPayloadKind tags what, if anything, follows a chain step's token.
type ChainPayloadKind int

const (
	PayloadNone ChainPayloadKind = iota
	PayloadMethodCall
	PayloadArrayCall
	PayloadNewObject
)

// ChainStep is one element of a ReferenceChain: a token (identifier, `this`,
// or a head `new`) plus an optional payload (spec.md §3).
type ChainStep struct {
	Token       token.Token
	PayloadKind ChainPayloadKind
	MethodCall  *MethodCall // set iff PayloadKind == PayloadMethodCall
	ArrayCall   *ArrayCall  // set iff PayloadKind == PayloadArrayCall
	NewObject   *NewObject  // set iff PayloadKind == PayloadNewObject

	// ResolvedType is this step's own resolved type, set by semantic
	// analysis so code generation can climb a class hierarchy relative to
	// the correct owner at each step without re-running name resolution.
	ResolvedType string
}

// IsPayloadLess reports whether this step is a plain field/name access.
func (s *ChainStep) IsPayloadLess() bool { return s.PayloadKind == PayloadNone }

// ReferenceChain is the ordered sequence described in spec.md §3/§4.2/§4.3:
// begins at an identifier, `this`, or a payload-first head (`new`), then
// accumulates `.field`, `[index]`, and `(args)` steps.
type ReferenceChain struct {
	Steps        []ChainStep
	resolvedType string
	isArrayLen   bool
}

// NewReferenceChain creates an empty chain.
func NewReferenceChain() *ReferenceChain {
	return &ReferenceChain{}
}

// Append adds a step.
func (c *ReferenceChain) Append(step ChainStep) {
	c.Steps = append(c.Steps, step)
}

// First returns the head step, or a zero ChainStep if empty.
func (c *ReferenceChain) First() ChainStep {
	if len(c.Steps) == 0 {
		return ChainStep{}
	}
	return c.Steps[0]
}

// Last returns the tail step, or a zero ChainStep if empty.
func (c *ReferenceChain) Last() ChainStep {
	if len(c.Steps) == 0 {
		return ChainStep{}
	}
	return c.Steps[len(c.Steps)-1]
}

// ResolvedType returns the chain's resolved type, set by semantic analysis.
func (c *ReferenceChain) ResolvedType() string { return c.resolvedType }

// SetResolvedType attaches the chain's resolved type.
func (c *ReferenceChain) SetResolvedType(t string) { c.resolvedType = t }

// IsArrayLength reports whether the chain's final step is `.length` on an
// int[] (spec.md §3's is_array_length flag).
func (c *ReferenceChain) IsArrayLength() bool { return c.isArrayLen }

// SetIsArrayLength marks the chain as resolving a trailing `.length`.
func (c *ReferenceChain) SetIsArrayLength(v bool) { c.isArrayLen = v }

// Pos returns the chain's origin position (its head token's position).
func (c *ReferenceChain) Pos() token.Position {
	if len(c.Steps) == 0 {
		return token.Position{}
	}
	return c.Steps[0].Token.Pos
}
