package pool_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/src/pool"
)

func TestManifest(t *testing.T) {
	cp := pool.NewConstantPool(nil)
	cp.GetConstLiteral(xy(), true)
	cp.AddStatement(output.NewExpressionStatement(output.Variable("_c0"), nil))
	cp.GetLiteralFactory(output.LiteralArr(output.Variable("x")))
	cp.GetDefinition("Cmp", pool.DefinitionKindComponent, &fakeImporter{}, true)

	want := &pool.Manifest{
		Unit: "app",
		Declarations: []pool.Declaration{
			{Index: 0, Name: "_c0", Kind: pool.DeclarationLiteral, Key: `["x","y"]`},
			{Index: 2, Name: "_c1", Kind: pool.DeclarationFactory, Key: "[VAR:<unknown>]"},
			{Index: 3, Name: "_c2", Kind: pool.DeclarationDefinition, Key: "component:Cmp"},
		},
	}

	t.Run("should list hoisted declarations in order", func(t *testing.T) {
		got, err := cp.Manifest("app")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Manifest mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should survive a msgpack round trip", func(t *testing.T) {
		m, err := cp.Manifest("app")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		var buf bytes.Buffer
		if err := m.EncodeMsgpack(&buf); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		got, err := pool.DecodeManifest(&buf)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Manifest mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reject garbage", func(t *testing.T) {
		if _, err := pool.DecodeManifest(bytes.NewReader([]byte{0xc1})); err == nil {
			t.Errorf("Expected an error")
		}
	})
}
