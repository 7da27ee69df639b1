package pool

import (
	"fmt"

	"ngc-pool/packages/compiler/output"
)

// UnsupportedExpressionError is raised when an expression that can never be
// shared reaches the pool. It signals a bug in the caller.
type UnsupportedExpressionError struct {
	Op   string
	Expr output.OutputExpression
}

func (e *UnsupportedExpressionError) Error() string {
	msg := fmt.Sprintf("Invalid state: %s doesn't handle %T", e.Op, e.Expr)
	if span := e.Expr.GetSourceSpan(); span != nil && span.Start != nil {
		msg += fmt.Sprintf(" (%s)", span.Start)
	}
	return msg
}

// UnknownDefinitionKindError is raised when a definition kind outside the
// fixed enumeration is used.
type UnknownDefinitionKindError struct {
	Kind DefinitionKind
}

func (e *UnknownDefinitionKindError) Error() string {
	return fmt.Sprintf("Unknown definition kind %d", int(e.Kind))
}

// Recover turns a panic raised by the pool into an error stored in *err.
// Panics that did not originate from the pool are re-raised. It must be
// called directly by a deferred statement:
//
//	defer pool.Recover(&err)
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	switch e := r.(type) {
	case *UnsupportedExpressionError:
		*err = e
	case *UnknownDefinitionKindError:
		*err = e
	default:
		panic(r)
	}
}
