package outputctx_test

import (
	"testing"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/src/outputctx"
	"ngc-pool/packages/compiler/src/pool"
)

func TestStaticSymbolCache(t *testing.T) {
	t.Run("should intern symbols", func(t *testing.T) {
		cache := outputctx.NewStaticSymbolCache()
		a := cache.Get("app.ts", "AppCmp")
		b := cache.Get("app.ts", "AppCmp")
		c := cache.Get("other.ts", "AppCmp")
		if a != b {
			t.Errorf("Expected the same symbol instance")
		}
		if a == c {
			t.Errorf("Expected symbols of different files to differ")
		}
		if a.String() != "app.ts#AppCmp" {
			t.Errorf("Expected 'app.ts#AppCmp', got '%s'", a.String())
		}
	})
}

func TestImportExpr(t *testing.T) {
	ctx := outputctx.NewOutputContext("app.ts", pool.NewConstantPool(nil))
	cache := outputctx.NewStaticSymbolCache()

	t.Run("should read local symbols directly", func(t *testing.T) {
		expr := ctx.ImportExpr(cache.Get("app.ts", "AppCmp"))
		v, ok := expr.(*output.ReadVarExpr)
		if !ok {
			t.Fatalf("Expected a variable read, got %T", expr)
		}
		if v.Name != "AppCmp" {
			t.Errorf("Expected 'AppCmp', got '%s'", v.Name)
		}
		if v.GetSourceSpan() == nil {
			t.Errorf("Expected a synthetic source span")
		}
	})

	t.Run("should import symbols of other files", func(t *testing.T) {
		expr := ctx.ImportExpr(cache.Get("lib.ts", "LibDir"))
		want := output.NewExternalExpr(output.NewExternalReference("lib.ts", "LibDir"), nil, nil, nil)
		if !expr.IsEquivalent(want) {
			t.Errorf("Expected an external reference to lib.ts#LibDir")
		}
	})

	t.Run("should wrap external references", func(t *testing.T) {
		ref := output.NewExternalReference("@angular/core", "Injectable")
		ext, ok := ctx.ImportExpr(ref).(*output.ExternalExpr)
		if !ok || ext.Value != ref {
			t.Errorf("Expected the reference to be wrapped as is")
		}
	})

	t.Run("should panic on other types", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Errorf("Expected a panic")
			}
		}()
		ctx.ImportExpr(42)
	})
}

func TestOutputContext(t *testing.T) {
	t.Run("should emit pooled statements first", func(t *testing.T) {
		ctx := outputctx.NewOutputContext("app.ts", pool.NewConstantPool(nil))
		cache := outputctx.NewStaticSymbolCache()
		cmp := cache.Get("lib.ts", "Cmp")

		first := ctx.GetDefinition(cmp, pool.DefinitionKindComponent, false)
		ctx.AddStatement(output.NewExpressionStatement(first, nil))
		second := ctx.GetDefinition(cmp, pool.DefinitionKindComponent, false)
		ctx.AddStatement(output.NewExpressionStatement(second, nil))

		all := ctx.AllStatements()
		if len(all) != 3 {
			t.Fatalf("Expected 3 statements, got %d", len(all))
		}
		decl, ok := all[0].(*output.DeclareVarStmt)
		if !ok || decl.Name != "_c0" {
			t.Fatalf("Expected the hoisted _c0 first, got %T", all[0])
		}
		for _, stmt := range all[1:] {
			expr := pool.Unwrap(stmt.(*output.ExpressionStatement).Expr)
			if !expr.IsEquivalent(output.Variable("_c0")) {
				t.Errorf("Expected both uses to read _c0")
			}
		}
	})

	t.Run("should share the pool's name counter", func(t *testing.T) {
		ctx := outputctx.NewOutputContext("app.ts", pool.NewConstantPool(nil))
		if name := ctx.UniqueName("tmp"); name != "tmp0" {
			t.Errorf("Expected 'tmp0', got '%s'", name)
		}
		if name := ctx.ConstantPool.UniqueName("tmp"); name != "tmp1" {
			t.Errorf("Expected 'tmp1', got '%s'", name)
		}
	})
}
