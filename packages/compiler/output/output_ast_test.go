package output_test

import (
	"testing"

	"ngc-pool/packages/compiler/output"
)

func TestIsEquivalent(t *testing.T) {
	t.Run("should compare literals by value", func(t *testing.T) {
		if !output.Literal("a").IsEquivalent(output.Literal("a")) {
			t.Error("Expected equal strings to be equivalent")
		}
		if output.Literal("1").IsEquivalent(output.Literal(1)) {
			t.Error("Expected a string and a number to differ")
		}
	})

	t.Run("should compare arrays element-wise", func(t *testing.T) {
		a := output.LiteralArr(output.Literal(1), output.Variable("x"))
		if !a.IsEquivalent(output.LiteralArr(output.Literal(1), output.Variable("x"))) {
			t.Error("Expected equal arrays to be equivalent")
		}
		if a.IsEquivalent(output.LiteralArr(output.Variable("x"), output.Literal(1))) {
			t.Error("Expected reordered arrays to differ")
		}
		if a.IsEquivalent(output.LiteralArr(output.Literal(1))) {
			t.Error("Expected arrays of different length to differ")
		}
	})

	t.Run("should compare map keys and quoting", func(t *testing.T) {
		a := output.LiteralMap(output.NewLiteralMapEntry("k", output.Literal(1), false))
		if !a.IsEquivalent(output.LiteralMap(output.NewLiteralMapEntry("k", output.Literal(1), false))) {
			t.Error("Expected equal maps to be equivalent")
		}
		if a.IsEquivalent(output.LiteralMap(output.NewLiteralMapEntry("k", output.Literal(1), true))) {
			t.Error("Expected quoting to matter")
		}
	})

	t.Run("should compare external references by module and name", func(t *testing.T) {
		a := output.NewExternalReference("m", "A")
		if !a.IsEquivalent(output.NewExternalReference("m", "A")) {
			t.Error("Expected equal references to be equivalent")
		}
		if a.IsEquivalent(output.NewExternalReference("n", "A")) {
			t.Error("Expected different modules to differ")
		}
	})

	t.Run("should compare functions with their declarations", func(t *testing.T) {
		body := []output.OutputStatement{output.NewReturnStatement(output.Variable("a0"), nil)}
		params := []*output.FnParam{output.NewFnParam("a0", nil)}
		fn := output.NewFunctionExpr(params, body, nil, nil, "")
		if !fn.IsEquivalentToStmt(fn.ToDeclStmt("f", output.StmtModifierFinal)) {
			t.Error("Expected a function to match its own declaration")
		}
		other := output.NewFunctionExpr(params, []output.OutputStatement{output.NewReturnStatement(output.NullExpr, nil)}, nil, nil, "")
		if other.IsEquivalentToStmt(fn.ToDeclStmt("f", output.StmtModifierFinal)) {
			t.Error("Expected different bodies to differ")
		}
	})
}

func TestIsConstant(t *testing.T) {
	t.Run("should treat nested literals as constant", func(t *testing.T) {
		lit := output.LiteralArr(output.Literal(1), output.LiteralMap(output.NewLiteralMapEntry("a", output.NullExpr, false)))
		if !lit.IsConstant() {
			t.Error("Expected a nested literal to be constant")
		}
	})

	t.Run("should treat variable reads as dynamic", func(t *testing.T) {
		if output.LiteralArr(output.Literal(1), output.Variable("x")).IsConstant() {
			t.Error("Expected an array with a variable to be dynamic")
		}
	})
}
