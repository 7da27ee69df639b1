package pool_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/src/pool"
)

type runtimeSymbol struct{ name string }

func (r runtimeSymbol) Name() string { return r.name }

func str(s string) *string { return &s }

func TestKeyOf(t *testing.T) {
	t.Run("should produce structural keys", func(t *testing.T) {
		tests := []struct {
			name string
			expr output.OutputExpression
			want string
		}{
			{"null", output.NullExpr, "null"},
			{"string", output.Literal("a"), `"a"`},
			{"string with quote", output.Literal(`a"b`), `"a\"b"`},
			{"int", output.Literal(1), "1"},
			{"float", output.Literal(1.5), "1.5"},
			{"bool", output.Literal(true), "true"},
			{"regex", output.NewRegularExpressionLiteralExpr("a+", "gi", nil), "/a+/gi"},
			{"empty array", output.LiteralArr(), "[]"},
			{"array", output.LiteralArr(output.Literal(1), output.Literal("b")), `[1,"b"]`},
			{"map", output.LiteralMap(
				output.NewLiteralMapEntry("a", output.Literal(1), false),
				output.NewLiteralMapEntry("b-c", output.Literal(2), true),
			), `{a:1,"b-c":2}`},
			{"nested", output.LiteralArr(output.LiteralMap(
				output.NewLiteralMapEntry("x", output.LiteralArr(output.Literal(1)), false),
			)), "[{x:[1]}]"},
			{"unquoted non-identifier key", output.LiteralMap(
				output.NewLiteralMapEntry("a:1,b", output.Literal(2), false),
			), `{~"a:1,b":2}`},
			{"variable", output.Variable("ctx"), "VAR:ctx"},
			{"typeof", output.NewTypeofExpr(output.Variable("x"), nil, nil), "TYPEOF:VAR:x"},
			{"external", output.NewExternalExpr(output.NewExternalReference("@angular/core", "Input"), nil, nil, nil), `EX:"@angular/core":"Input"`},
			{"runtime external", output.NewExternalExpr(&output.ExternalReference{Runtime: runtimeSymbol{"Input"}}, nil, nil, nil), `EX:"Input"`},
			{"named external", output.NewExternalExpr(&output.ExternalReference{Name: str("Input")}, nil, nil, nil), `EX:"Input"`},
			{"empty external", output.NewExternalExpr(&output.ExternalReference{}, nil, nil, nil), "EX:null"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if diff := cmp.Diff(tt.want, pool.KeyOf(tt.expr)); diff != "" {
					t.Errorf("Key mismatch (-want +got):\n%s", diff)
				}
			})
		}
	})

	t.Run("should be deterministic", func(t *testing.T) {
		build := func() output.OutputExpression {
			return output.LiteralMap(
				output.NewLiteralMapEntry("a", output.LiteralArr(output.Literal("x"), output.NullExpr), false),
			)
		}
		if a, b := pool.KeyOf(build()), pool.KeyOf(build()); a != b {
			t.Errorf("Expected equal keys, got %q and %q", a, b)
		}
	})

	t.Run("should not let names forge the key of another expression", func(t *testing.T) {
		pairs := [][2]output.OutputExpression{
			{
				output.LiteralMap(
					output.NewLiteralMapEntry("a", output.Literal(1), false),
					output.NewLiteralMapEntry("b", output.Literal(2), false),
				),
				output.LiteralMap(output.NewLiteralMapEntry("a:1,b", output.Literal(2), false)),
			},
			{
				output.LiteralMap(output.NewLiteralMapEntry("b-c", output.Literal(1), true)),
				output.LiteralMap(output.NewLiteralMapEntry("b-c", output.Literal(1), false)),
			},
			{
				output.NewExternalExpr(output.NewExternalReference("a:b", "c"), nil, nil, nil),
				output.NewExternalExpr(output.NewExternalReference("a", "b:c"), nil, nil, nil),
			},
			{
				output.NewExternalExpr(&output.ExternalReference{Name: str("null")}, nil, nil, nil),
				output.NewExternalExpr(&output.ExternalReference{}, nil, nil, nil),
			},
		}
		for _, pair := range pairs {
			if a, b := pool.KeyOf(pair[0]), pool.KeyOf(pair[1]); a == b {
				t.Errorf("Expected distinct keys, both were %q", a)
			}
		}
	})

	t.Run("should key fix-ups by their original expression", func(t *testing.T) {
		arr := output.LiteralArr(output.Literal(1))
		fixup := pool.NewFixupExpression(arr)
		want := pool.KeyOf(arr)
		if got := pool.KeyOf(fixup); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
		fixup.Fixup(output.Variable("_c0"))
		if got := pool.KeyOf(output.LiteralArr(fixup)); got != "[[1]]" {
			t.Errorf("Expected the key to survive promotion, got %q", got)
		}
	})

	t.Run("should reject expressions that cannot be shared", func(t *testing.T) {
		unsupported := []output.OutputExpression{
			output.Variable("f").CallFn(nil),
			output.Variable("o").Prop("p"),
			output.NewReadKeyExpr(output.Variable("o"), output.Literal(0), nil, nil),
			output.NewNotExpr(output.Literal(true), nil),
			output.NewBinaryOperatorExpr(output.BinaryOperatorPlus, output.Literal(1), output.Literal(2), nil, nil),
			output.NewArrowFunctionExpr(nil, output.Literal(1), nil, nil),
			output.LiteralArr(output.Literal(1), output.NewConditionalExpr(output.Literal(true), output.Literal(1), output.Literal(2), nil, nil)),
		}
		for _, expr := range unsupported {
			err := func() (err error) {
				defer pool.Recover(&err)
				pool.KeyOf(expr)
				return nil
			}()
			var target *pool.UnsupportedExpressionError
			if !errors.As(err, &target) {
				t.Errorf("Expected UnsupportedExpressionError for %T, got %v", expr, err)
				continue
			}
			if target.Op != "GenericKeyFn" {
				t.Errorf("Expected op GenericKeyFn, got %s", target.Op)
			}
		}
	})
}

func TestFixupExpression(t *testing.T) {
	t.Run("should denote the original until promoted", func(t *testing.T) {
		arr := output.LiteralArr(output.Literal(1))
		fixup := pool.NewFixupExpression(arr)
		if fixup.Shared() || fixup.Resolved() != arr || fixup.Original() != arr {
			t.Errorf("Expected a fresh fix-up to denote its original")
		}
		if !fixup.IsConstant() {
			t.Errorf("Expected fix-ups to be constant")
		}

		fixup.Fixup(output.Variable("_c0"))
		if !fixup.Shared() {
			t.Errorf("Expected the fix-up to be shared")
		}
		if !fixup.Resolved().IsEquivalent(output.Variable("_c0")) {
			t.Errorf("Expected the fix-up to denote _c0")
		}
		if fixup.Original() != arr {
			t.Errorf("Expected the original to be kept")
		}
	})

	t.Run("should compare resolved expressions", func(t *testing.T) {
		a := pool.NewFixupExpression(output.LiteralArr(output.Literal(1)))
		b := pool.NewFixupExpression(output.LiteralArr(output.Literal(1)))
		if !a.IsEquivalent(b) {
			t.Errorf("Expected equal unpromoted fix-ups to be equivalent")
		}
		a.Fixup(output.Variable("_c0"))
		if a.IsEquivalent(b) {
			t.Errorf("Expected a promoted fix-up to differ from an inline one")
		}
		if a.IsEquivalent(output.Variable("_c0")) {
			t.Errorf("Expected a fix-up not to equal a bare expression")
		}
	})

	t.Run("should ignore further promotions", func(t *testing.T) {
		fixup := pool.NewFixupExpression(output.LiteralArr())
		fixup.Fixup(output.Variable("_c0"))
		fixup.Fixup(output.Variable("_c1"))
		if !fixup.Shared() {
			t.Errorf("Expected the fix-up to stay shared")
		}
		if !fixup.Resolved().IsEquivalent(output.Variable("_c0")) {
			t.Errorf("Expected the fix-up to keep denoting _c0, got %T", fixup.Resolved())
		}
	})
}

func TestRecover(t *testing.T) {
	t.Run("should convert pool panics", func(t *testing.T) {
		err := func() (err error) {
			defer pool.Recover(&err)
			panic(&pool.UnknownDefinitionKindError{Kind: 9})
		}()
		if err == nil || err.Error() != "Unknown definition kind 9" {
			t.Errorf("Unexpected error %v", err)
		}
	})

	t.Run("should leave errors alone without a panic", func(t *testing.T) {
		err := func() (err error) {
			defer pool.Recover(&err)
			return nil
		}()
		if err != nil {
			t.Errorf("Expected nil, got %v", err)
		}
	})

	t.Run("should re-raise foreign panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("Expected the original panic, got %v", r)
			}
		}()
		func() (err error) {
			defer pool.Recover(&err)
			panic("boom")
		}()
	})
}
