package unit

import (
	"fmt"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/src/config"
	"ngc-pool/packages/compiler/src/outputctx"
	"ngc-pool/packages/compiler/src/pool"
	"ngc-pool/packages/compiler/util"
)

// Result is the outcome of feeding one unit to a fresh constant pool
type Result struct {
	Unit     string
	Context  *outputctx.OutputContext
	Manifest *pool.Manifest
	// Expressions holds, for every request, the expression to splice in
	// place of the requested value.
	Expressions []output.OutputExpression
}

// Compile feeds every request of f, in order, to a new constant pool. Each
// returned expression is also added to the context as an expression
// statement, so the context's statements reference the pool.
func Compile(f *File, cfg *config.PoolConfig) (*Result, error) {
	cp := pool.NewConstantPool(cfg)
	ctx := outputctx.NewOutputContext(f.Name, cp)
	symbols := outputctx.NewStaticSymbolCache()

	expressions := make([]output.OutputExpression, 0, len(f.Requests))
	for i, req := range f.Requests {
		span := util.SyntheticSourceSpan("request", fmt.Sprintf("#%d", i), f.Name)
		expr, err := compileRequest(ctx, symbols, req, span)
		if err != nil {
			return nil, fmt.Errorf("%s: request[%d]: %w", f.Name, i, err)
		}
		expressions = append(expressions, expr)
		ctx.AddStatement(output.NewExpressionStatement(expr, span))
	}

	manifest, err := cp.Manifest(f.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	return &Result{
		Unit:        f.Name,
		Context:     ctx,
		Manifest:    manifest,
		Expressions: expressions,
	}, nil
}

func compileRequest(ctx *outputctx.OutputContext, symbols *outputctx.StaticSymbolCache, req *Request, span *util.ParseSourceSpan) (expr output.OutputExpression, err error) {
	defer pool.Recover(&err)

	switch req.Op {
	case OpLiteral:
		value, err := req.Value.Expression(span)
		if err != nil {
			return nil, err
		}
		return ctx.ConstantPool.GetConstLiteral(value, req.Shared), nil

	case OpFactory:
		value, err := req.Value.Expression(span)
		if err != nil {
			return nil, err
		}
		switch value.(type) {
		case *output.LiteralArrayExpr, *output.LiteralMapExpr:
		default:
			return nil, fmt.Errorf("factory requests need an array or map value, got %T", value)
		}
		factory, args := ctx.ConstantPool.GetLiteralFactory(value)
		return output.NewInvokeFunctionExpr(factory, args, nil, span, true), nil

	case OpDefinition:
		kind, err := pool.ParseDefinitionKind(req.Kind)
		if err != nil {
			return nil, err
		}
		if req.Module == "" || req.Symbol == "" {
			return nil, fmt.Errorf("definition requests need module and symbol")
		}
		return ctx.GetDefinition(symbols.Get(req.Module, req.Symbol), kind, req.Shared), nil
	}
	return nil, fmt.Errorf("unknown op %q, expected %s, %s or %s", req.Op, OpLiteral, OpFactory, OpDefinition)
}
