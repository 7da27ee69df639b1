package pool

import (
	"fmt"

	"ngc-pool/packages/compiler/output"
)

// unknownValueKey replaces non-constant entries when keying a literal factory.
// A variable read is used rather than null so that a constant null entry and
// a dynamic entry never produce the same key.
var unknownValueKey = output.Variable("<unknown>")

// GetLiteralFactory returns a shared pure function that rebuilds literal from
// its non-constant entries, together with the arguments this occurrence must
// pass to it. Literals with the same shape and the same constant entries share
// one function no matter which dynamic values they contain.
//
// literal must be a *output.LiteralArrayExpr or a *output.LiteralMapExpr.
func (cp *ConstantPool) GetLiteralFactory(literal output.OutputExpression) (output.OutputExpression, []output.OutputExpression) {
	switch lit := literal.(type) {
	case *output.LiteralArrayExpr:
		argumentsForKey := make([]output.OutputExpression, len(lit.Entries))
		for i, e := range lit.Entries {
			argumentsForKey[i] = keyValue(e)
		}
		key := KeyOf(output.NewLiteralArrayExpr(argumentsForKey, nil, nil))
		return cp.getLiteralFactory(key, lit.Entries, func(entries []output.OutputExpression) output.OutputExpression {
			return output.NewLiteralArrayExpr(entries, nil, nil)
		})

	case *output.LiteralMapExpr:
		entriesForKey := make([]*output.LiteralMapEntry, len(lit.Entries))
		values := make([]output.OutputExpression, len(lit.Entries))
		for i, e := range lit.Entries {
			entriesForKey[i] = output.NewLiteralMapEntry(e.Key, keyValue(e.Value), e.Quoted)
			values[i] = e.Value
		}
		key := KeyOf(output.NewLiteralMapExpr(entriesForKey, nil, nil))
		return cp.getLiteralFactory(key, values, func(entries []output.OutputExpression) output.OutputExpression {
			literalEntries := make([]*output.LiteralMapEntry, len(entries))
			for i, value := range entries {
				literalEntries[i] = output.NewLiteralMapEntry(lit.Entries[i].Key, value, lit.Entries[i].Quoted)
			}
			return output.NewLiteralMapExpr(literalEntries, nil, nil)
		})
	}
	panic(&UnsupportedExpressionError{Op: "GetLiteralFactory", Expr: literal})
}

func keyValue(e output.OutputExpression) output.OutputExpression {
	if e.IsConstant() {
		return e
	}
	return unknownValueKey
}

func (cp *ConstantPool) getLiteralFactory(
	key string,
	values []output.OutputExpression,
	resultMap func([]output.OutputExpression) output.OutputExpression,
) (output.OutputExpression, []output.OutputExpression) {
	literalFactoryArguments := make([]output.OutputExpression, 0, len(values))
	for _, e := range values {
		if !e.IsConstant() {
			literalFactoryArguments = append(literalFactoryArguments, e)
		}
	}

	literalFactory, exists := cp.literalFactories[key]
	if exists {
		return literalFactory, literalFactoryArguments
	}

	resultExpressions := make([]output.OutputExpression, len(values))
	parameters := make([]*output.FnParam, 0, len(literalFactoryArguments))
	for i, e := range values {
		if e.IsConstant() {
			resultExpressions[i] = cp.GetConstLiteral(e, true)
			continue
		}
		param := fmt.Sprintf("a%d", i)
		resultExpressions[i] = output.Variable(param)
		parameters = append(parameters, output.NewFnParam(param, output.DynamicType))
	}

	pureFunctionDeclaration := output.NewFunctionExpr(
		parameters,
		[]output.OutputStatement{output.NewReturnStatement(resultMap(resultExpressions), nil)},
		output.InferredType,
		nil,
		"",
	)
	name := cp.freshName()
	cp.declare(name, pureFunctionDeclaration, DeclarationFactory, key)
	literalFactory = output.Variable(name)
	cp.literalFactories[key] = literalFactory
	return literalFactory, literalFactoryArguments
}
