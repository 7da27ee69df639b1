package pool

import (
	"ngc-pool/packages/compiler/output"
)

// FixupExpression is a node that is a place-holder that allows the node to be replaced when the actual
// node is known.
// This allows the constant pool to change an expression from a direct reference to
// a constant to a shared constant. It returns a fix-up node that is later allowed to
// change the referenced expression.
//
// A fix-up starts out denoting its original expression and may be promoted once to
// denote the variable that holds that expression. Keys are always computed from the
// original expression, emitters always see the resolved one.
type FixupExpression struct {
	output.ExpressionBase
	original output.OutputExpression
	resolved output.OutputExpression
	shared   bool
}

// NewFixupExpression creates a fix-up that denotes resolved until promoted
func NewFixupExpression(resolved output.OutputExpression) *FixupExpression {
	return &FixupExpression{
		ExpressionBase: output.ExpressionBase{
			Type:       resolved.GetType(),
			SourceSpan: resolved.GetSourceSpan(),
		},
		original: resolved,
		resolved: resolved,
		shared:   false,
	}
}

// Original returns the expression the fix-up was created from
func (f *FixupExpression) Original() output.OutputExpression {
	return f.original
}

// Resolved returns the expression the fix-up currently denotes
func (f *FixupExpression) Resolved() output.OutputExpression {
	return f.resolved
}

// Shared reports whether the fix-up has been promoted to a shared variable
func (f *FixupExpression) Shared() bool {
	return f.shared
}

// IsEquivalent compares the resolved expressions of two fix-ups
func (f *FixupExpression) IsEquivalent(e output.OutputExpression) bool {
	if other, ok := e.(*FixupExpression); ok {
		return f.resolved.IsEquivalent(other.resolved)
	}
	return false
}

// IsConstant returns true: a fix-up always denotes a constant value
func (f *FixupExpression) IsConstant() bool {
	return true
}

// Fixup rebinds the fix-up to the expression that reads the shared variable.
// Only the first call has an effect; once shared the fix-up keeps denoting
// the same variable.
func (f *FixupExpression) Fixup(expression output.OutputExpression) {
	if f.shared {
		return
	}
	f.resolved = expression
	f.shared = true
}

// Unwrap returns the expression an emitter should print in place of e: the
// resolved expression for fix-ups, e itself otherwise.
func Unwrap(e output.OutputExpression) output.OutputExpression {
	for {
		fixup, ok := e.(*FixupExpression)
		if !ok {
			return e
		}
		e = fixup.resolved
	}
}
