package pool

import (
	"fmt"
	"strconv"
	"strings"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/util"
)

// ExpressionKeyFn is an interface for generating keys from expressions
type ExpressionKeyFn interface {
	KeyOf(expr output.OutputExpression) string
}

// GenericKeyFn generates structural keys. Two expressions can share a pooled
// declaration iff their keys are equal.
//
// Keys are order sensitive for both arrays and maps: `{a: 1, b: 2}` and
// `{b: 2, a: 1}` get different keys. Variable reads are keyed by name only, so
// reads of unrelated variables that happen to share a name are interchangeable.
type GenericKeyFn struct{}

// GenericKeyFnInstance is the key function used by the pool
var GenericKeyFnInstance = &GenericKeyFn{}

// KeyOf returns the structural key of expr. It panics with an
// *UnsupportedExpressionError for expressions that cannot be shared.
func (g *GenericKeyFn) KeyOf(expr output.OutputExpression) string {
	var sb strings.Builder
	writeKey(&sb, expr)
	return sb.String()
}

// KeyOf returns the structural key of expr using GenericKeyFnInstance
func KeyOf(expr output.OutputExpression) string {
	return GenericKeyFnInstance.KeyOf(expr)
}

func writeKey(sb *strings.Builder, expr output.OutputExpression) {
	switch e := expr.(type) {
	case *FixupExpression:
		// When producing a key we want to traverse the constant not the
		// variable used to refer to it.
		writeKey(sb, e.original)
	case *output.LiteralExpr:
		sb.WriteString(literalKey(e.Value))
	case *output.RegularExpressionLiteralExpr:
		fmt.Fprintf(sb, "/%s/%s", e.Body, e.Flags)
	case *output.LiteralArrayExpr:
		sb.WriteByte('[')
		for i, entry := range e.Entries {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeKey(sb, entry)
		}
		sb.WriteByte(']')
	case *output.LiteralMapExpr:
		sb.WriteByte('{')
		for i, entry := range e.Entries {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(mapEntryKey(entry))
			sb.WriteByte(':')
			writeKey(sb, entry.Value)
		}
		sb.WriteByte('}')
	case *output.ExternalExpr:
		sb.WriteString(externalKey(e.Value))
	case *output.ReadVarExpr:
		sb.WriteString("VAR:")
		sb.WriteString(e.Name)
	case *output.TypeofExpr:
		sb.WriteString("TYPEOF:")
		writeKey(sb, e.Expr)
	default:
		panic(&UnsupportedExpressionError{Op: "GenericKeyFn", Expr: expr})
	}
}

// literalKey prints a primitive. Strings are quoted so that "1" and 1 differ.
func literalKey(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// mapEntryKey prints a map key. Quoted keys are Go-quoted. Unquoted keys are
// written raw only when they are plain identifiers; anything else is Go-quoted
// behind a `~` so it can neither be mistaken for a quoted key nor smuggle in a
// `:` or `,`.
func mapEntryKey(entry *output.LiteralMapEntry) string {
	if entry.Quoted {
		return strconv.Quote(entry.Key)
	}
	if isIdentifier(entry.Key) {
		return entry.Key
	}
	return "~" + strconv.Quote(entry.Key)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// externalKey quotes every part of the reference so that a `:` inside a module
// or symbol name cannot shift the boundary between them.
func externalKey(ref *output.ExternalReference) string {
	if ref.ModuleName != nil {
		name := ""
		if ref.Name != nil {
			name = *ref.Name
		}
		return "EX:" + strconv.Quote(*ref.ModuleName) + ":" + strconv.Quote(name)
	}
	if ref.Runtime != nil {
		return "EX:" + strconv.Quote(util.Stringify(ref.Runtime))
	}
	if ref.Name != nil {
		return "EX:" + strconv.Quote(*ref.Name)
	}
	return "EX:null"
}
