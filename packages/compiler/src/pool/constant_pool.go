package pool

import (
	"fmt"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/src/config"
)

const constantPrefix = "_c"

// ConstantPool allows a code emitter to share constants in an output context.
//
// The pool also shares references to per-type definitions. One pool serves a
// single compilation unit and is not safe for concurrent use.
type ConstantPool struct {
	statements []output.OutputStatement
	hoisted    []hoistRecord

	literals         map[string]*FixupExpression
	literalFactories map[string]output.OutputExpression
	sharedConstants  map[string]output.OutputExpression

	injectorDefinitions  map[interface{}]*FixupExpression
	directiveDefinitions map[interface{}]*FixupExpression
	componentDefinitions map[interface{}]*FixupExpression
	pipeDefinitions      map[interface{}]*FixupExpression

	nextNameIndex int
	config        *config.PoolConfig
}

type hoistRecord struct {
	index int
	name  string
	kind  DeclarationKind
	key   string
}

// NewConstantPool creates a new ConstantPool. A nil config uses the defaults.
func NewConstantPool(cfg *config.PoolConfig) *ConstantPool {
	if cfg == nil {
		cfg = config.NewPoolConfig()
	}
	return &ConstantPool{
		statements:           []output.OutputStatement{},
		literals:             make(map[string]*FixupExpression),
		literalFactories:     make(map[string]output.OutputExpression),
		sharedConstants:      make(map[string]output.OutputExpression),
		injectorDefinitions:  make(map[interface{}]*FixupExpression),
		directiveDefinitions: make(map[interface{}]*FixupExpression),
		componentDefinitions: make(map[interface{}]*FixupExpression),
		pipeDefinitions:      make(map[interface{}]*FixupExpression),
		config:               cfg,
	}
}

// GetConstLiteral returns an expression to use in place of literal.
//
// The first occurrence of a value is returned inline (wrapped in a fix-up); the
// second occurrence hoists the value into a final variable and rebinds the
// fix-up, so both occurrences end up reading the same variable. forceShared
// hoists on first use.
func (cp *ConstantPool) GetConstLiteral(literal output.OutputExpression, forceShared bool) output.OutputExpression {
	if (isLiteralExpr(literal) && !cp.isLongStringLiteral(literal)) || isFixupExpression(literal) {
		// Do not put simple literals into the constant pool or try to produce a constant for a
		// reference to a constant.
		return literal
	}

	key := KeyOf(literal)
	fixup, exists := cp.literals[key]
	if !exists {
		fixup = NewFixupExpression(literal)
		cp.literals[key] = fixup
	}

	if (exists && !fixup.shared) || (!exists && forceShared) {
		name := cp.freshName()
		value, usage := cp.sharedValue(name, fixup.original)
		cp.declare(name, value, DeclarationLiteral, key)
		fixup.Fixup(usage)
	}

	return fixup
}

// sharedValue returns the value to declare under name and the expression that
// reads it.
func (cp *ConstantPool) sharedValue(name string, literal output.OutputExpression) (output.OutputExpression, output.OutputExpression) {
	if cp.config.ClosureCompilerEnabled && cp.isLongStringLiteral(literal) {
		// Closure always inlines string constants at every usage. Wrapping a long
		// string in a function makes it use its function inlining heuristics
		// instead, which keep large bodies shared:
		//
		// const _c0 = function() { return "very very very long string"; };
		// const usage1 = _c0();
		value := output.NewFunctionExpr(
			[]*output.FnParam{},
			[]output.OutputStatement{output.NewReturnStatement(literal, nil)},
			nil,
			nil,
			"",
		)
		return value, output.Variable(name).CallFn([]output.OutputExpression{})
	}
	return literal, output.Variable(name)
}

// GetSharedConstant returns a variable holding the declaration def produces
// for expr, declaring it on first use.
func (cp *ConstantPool) GetSharedConstant(def SharedConstantDefinition, expr output.OutputExpression) output.OutputExpression {
	key := def.KeyOf(expr)
	if _, exists := cp.sharedConstants[key]; !exists {
		id := cp.freshName()
		cp.sharedConstants[key] = output.Variable(id)
		cp.record(id, DeclarationSharedConstant, key)
		cp.statements = append(cp.statements, def.ToSharedConstantDeclaration(id, expr))
	}
	return cp.sharedConstants[key]
}

// GetSharedFunctionReference returns a reference to a declared function that
// is equivalent to fn, declaring fn under prefix if there is none.
func (cp *ConstantPool) GetSharedFunctionReference(fn output.OutputExpression, prefix string, useUniqueName bool) output.OutputExpression {
	_, isArrow := fn.(*output.ArrowFunctionExpr)

	for _, current := range cp.statements {
		// Arrow functions are saved as variables so we check if the
		// value of the variable is the same as the arrow function.
		if isArrow {
			if declareVar, ok := current.(*output.DeclareVarStmt); ok && declareVar.Value != nil && declareVar.Value.IsEquivalent(fn) {
				return output.Variable(declareVar.Name)
			}
			continue
		}

		// Function declarations are saved as function statements
		// so we compare them directly to the passed-in function.
		if declareFn, ok := current.(*output.DeclareFunctionStmt); ok {
			if fnExpr, ok := fn.(*output.FunctionExpr); ok && fnExpr.IsEquivalentToStmt(declareFn) {
				return output.Variable(declareFn.Name)
			}
		}
	}

	name := prefix
	if useUniqueName {
		name = cp.UniqueName(prefix)
	}
	cp.record(name, DeclarationFunction, name)
	if fnExpr, ok := fn.(*output.FunctionExpr); ok {
		cp.statements = append(cp.statements, fnExpr.ToDeclStmt(name, output.StmtModifierFinal))
	} else {
		cp.statements = append(cp.statements, output.NewDeclareVarStmt(
			name,
			fn,
			output.InferredType,
			output.StmtModifierFinal,
			fn.GetSourceSpan(),
		))
	}
	return output.Variable(name)
}

// UniqueName produces a unique name in the context of this pool.
// The name might be unique among different prefixes if any of the prefixes end in
// a digit so the prefix should be a constant string (not based on user input) and
// must not end in a digit.
func (cp *ConstantPool) UniqueName(prefix string) string {
	name := fmt.Sprintf("%s%d", prefix, cp.nextNameIndex)
	cp.nextNameIndex++
	return name
}

func (cp *ConstantPool) freshName() string {
	return cp.UniqueName(constantPrefix)
}

// GetStatements returns the hoisted statements in the order they were
// declared. Emitters must print them before any statement that uses the pool.
func (cp *ConstantPool) GetStatements() []output.OutputStatement {
	return cp.statements
}

// AddStatement appends a statement owned by the caller to the pool's statements
func (cp *ConstantPool) AddStatement(stmt output.OutputStatement) {
	cp.statements = append(cp.statements, stmt)
}

// declare appends `const name = value;`
func (cp *ConstantPool) declare(name string, value output.OutputExpression, kind DeclarationKind, key string) {
	cp.record(name, kind, key)
	cp.statements = append(cp.statements, output.NewDeclareVarStmt(
		name,
		value,
		output.InferredType,
		output.StmtModifierFinal,
		nil,
	))
}

// record notes the statement about to be appended for the manifest
func (cp *ConstantPool) record(name string, kind DeclarationKind, key string) {
	cp.hoisted = append(cp.hoisted, hoistRecord{
		index: len(cp.statements),
		name:  name,
		kind:  kind,
		key:   key,
	})
}

// SharedConstantDefinition is an interface for shared constant definitions
type SharedConstantDefinition interface {
	ExpressionKeyFn
	ToSharedConstantDeclaration(declName string, keyExpr output.OutputExpression) output.OutputStatement
}

func (cp *ConstantPool) isLongStringLiteral(expr output.OutputExpression) bool {
	if lit, ok := expr.(*output.LiteralExpr); ok {
		if str, ok := lit.Value.(string); ok {
			return cp.config.IsLongString(str)
		}
	}
	return false
}

func isLiteralExpr(expr output.OutputExpression) bool {
	_, ok := expr.(*output.LiteralExpr)
	return ok
}

func isFixupExpression(expr output.OutputExpression) bool {
	_, ok := expr.(*FixupExpression)
	return ok
}
