package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/src/pool"
	"ngc-pool/packages/compiler/src/unit"
)

var (
	unitColor = color.New(color.FgCyan, color.Bold)
	nameColor = color.New(color.FgGreen)
	kindColor = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
)

// printResult lists the hoisted declarations of a unit followed by what each
// request resolved to. Expressions are summarized, not rendered as code.
func printResult(w io.Writer, res *unit.Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", unitColor.Sprint(res.Unit))
	for _, decl := range res.Manifest.Declarations {
		fmt.Fprintf(&sb, "  const %s %s %s\n",
			nameColor.Sprint(decl.Name),
			kindColor.Sprintf("%-15s", decl.Kind),
			dimColor.Sprint(decl.Key))
	}
	for i, expr := range res.Expressions {
		fmt.Fprintf(&sb, "  request[%d] -> %s\n", i, describe(expr))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// describe summarizes what an emitter would see for expr
func describe(expr output.OutputExpression) string {
	switch e := pool.Unwrap(expr).(type) {
	case *output.ReadVarExpr:
		return e.Name
	case *output.ReadPropExpr:
		return describe(e.Receiver) + "." + e.Name
	case *output.ExternalExpr:
		if e.Value.ModuleName != nil && e.Value.Name != nil {
			return *e.Value.ModuleName + "#" + *e.Value.Name
		}
		return "<external>"
	case *output.InvokeFunctionExpr:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = describe(arg)
		}
		return describe(e.Fn) + "(" + strings.Join(args, ", ") + ")"
	default:
		return "inline " + keyOrType(e)
	}
}

func keyOrType(expr output.OutputExpression) (desc string) {
	defer func() {
		if r := recover(); r != nil {
			desc = fmt.Sprintf("%T", expr)
		}
	}()
	return pool.KeyOf(expr)
}
