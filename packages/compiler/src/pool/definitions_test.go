package pool_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/src/pool"
)

type fakeImporter struct {
	calls int
}

func (f *fakeImporter) ImportExpr(typ interface{}) output.OutputExpression {
	f.calls++
	return output.Variable(typ.(string))
}

func propertyRead(t *testing.T, expr output.OutputExpression) *output.ReadPropExpr {
	t.Helper()
	prop, ok := pool.Unwrap(expr).(*output.ReadPropExpr)
	if !ok {
		t.Fatalf("Expected a property read, got %T", pool.Unwrap(expr))
	}
	return prop
}

func TestGetDefinition(t *testing.T) {
	t.Run("should read the definition property of each kind", func(t *testing.T) {
		tests := []struct {
			kind     pool.DefinitionKind
			property string
		}{
			{pool.DefinitionKindInjector, "ngInjectorDef"},
			{pool.DefinitionKindDirective, "ngDirectiveDef"},
			{pool.DefinitionKindComponent, "ngComponentDef"},
			{pool.DefinitionKindPipe, "ngPipeDef"},
		}
		for _, tt := range tests {
			t.Run(tt.kind.String(), func(t *testing.T) {
				cp := pool.NewConstantPool(nil)
				prop := propertyRead(t, cp.GetDefinition("MyType", tt.kind, &fakeImporter{}, false))
				if prop.Name != tt.property {
					t.Errorf("Expected %s, got %s", tt.property, prop.Name)
				}
				if !prop.Receiver.IsEquivalent(output.Variable("MyType")) {
					t.Errorf("Expected the imported type as receiver")
				}
			})
		}
	})

	t.Run("should hoist on the second request", func(t *testing.T) {
		cp := pool.NewConstantPool(nil)
		ctx := &fakeImporter{}
		first := cp.GetDefinition("MyCmp", pool.DefinitionKindComponent, ctx, false)
		if n := len(cp.GetStatements()); n != 0 {
			t.Fatalf("Expected no statements, got %d", n)
		}
		second := cp.GetDefinition("MyCmp", pool.DefinitionKindComponent, ctx, false)
		if first != second {
			t.Errorf("Expected one fix-up per type")
		}
		if ctx.calls != 1 {
			t.Errorf("Expected the type to be imported once, got %d", ctx.calls)
		}
		if name := resolvedName(t, first); name != "_c0" {
			t.Errorf("Expected _c0, got %s", name)
		}
		decl := cp.GetStatements()[0].(*output.DeclareVarStmt)
		want := output.NewReadPropExpr(output.Variable("MyCmp"), "ngComponentDef", nil, nil)
		if !decl.Value.IsEquivalent(want) {
			t.Errorf("Expected _c0 to hold MyCmp.ngComponentDef")
		}
	})

	t.Run("should keep kinds apart for the same type", func(t *testing.T) {
		cp := pool.NewConstantPool(nil)
		ctx := &fakeImporter{}
		cmp1 := cp.GetDefinition("Same", pool.DefinitionKindComponent, ctx, false)
		dir1 := cp.GetDefinition("Same", pool.DefinitionKindDirective, ctx, false)
		if cmp1 == dir1 {
			t.Fatalf("Expected separate fix-ups per kind")
		}
		if n := len(cp.GetStatements()); n != 0 {
			t.Errorf("Expected no statements, got %d", n)
		}
		if propertyRead(t, dir1).Name != "ngDirectiveDef" {
			t.Errorf("Expected the directive definition")
		}
	})

	t.Run("should hoist on first use when forced", func(t *testing.T) {
		cp := pool.NewConstantPool(nil)
		got := cp.GetDefinition("P", pool.DefinitionKindPipe, &fakeImporter{}, true)
		if name := resolvedName(t, got); name != "_c0" {
			t.Errorf("Expected _c0, got %s", name)
		}
		cp.GetDefinition("P", pool.DefinitionKindPipe, &fakeImporter{}, false)
		if n := len(cp.GetStatements()); n != 1 {
			t.Errorf("Expected one statement, got %d", n)
		}
	})

	t.Run("should reject unknown kinds before importing", func(t *testing.T) {
		cp := pool.NewConstantPool(nil)
		ctx := &fakeImporter{}
		err := func() (err error) {
			defer pool.Recover(&err)
			cp.GetDefinition("T", pool.DefinitionKind(42), ctx, false)
			return nil
		}()
		var target *pool.UnknownDefinitionKindError
		if !errors.As(err, &target) || target.Kind != 42 {
			t.Errorf("Expected UnknownDefinitionKindError, got %v", err)
		}
		if ctx.calls != 0 {
			t.Errorf("Expected no import, got %d", ctx.calls)
		}
	})
}

func TestParseDefinitionKind(t *testing.T) {
	t.Run("should parse names case-insensitively", func(t *testing.T) {
		got := []pool.DefinitionKind{}
		for _, name := range []string{"injector", "Directive", "COMPONENT", "pipe"} {
			kind, err := pool.ParseDefinitionKind(name)
			if err != nil {
				t.Fatalf("Unexpected error for %s: %v", name, err)
			}
			got = append(got, kind)
		}
		want := []pool.DefinitionKind{
			pool.DefinitionKindInjector,
			pool.DefinitionKindDirective,
			pool.DefinitionKindComponent,
			pool.DefinitionKindPipe,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Kind mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		if _, err := pool.ParseDefinitionKind("module"); err == nil {
			t.Errorf("Expected an error")
		}
	})
}
