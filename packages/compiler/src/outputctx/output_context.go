package outputctx

import (
	"fmt"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/src/pool"
	"ngc-pool/packages/compiler/util"
)

// StaticSymbol identifies a declared type by the file that declares it and
// its exported name. Symbols are compared by pointer, use a StaticSymbolCache
// to get one instance per type.
type StaticSymbol struct {
	FilePath string
	Name     string
}

func (s *StaticSymbol) String() string {
	return s.FilePath + "#" + s.Name
}

// StaticSymbolCache interns static symbols
type StaticSymbolCache struct {
	symbols map[string]*StaticSymbol
}

// NewStaticSymbolCache creates an empty cache
func NewStaticSymbolCache() *StaticSymbolCache {
	return &StaticSymbolCache{symbols: make(map[string]*StaticSymbol)}
}

// Get returns the symbol for name declared in filePath
func (c *StaticSymbolCache) Get(filePath, name string) *StaticSymbol {
	key := filePath + "#" + name
	if symbol, ok := c.symbols[key]; ok {
		return symbol
	}
	symbol := &StaticSymbol{FilePath: filePath, Name: name}
	c.symbols[key] = symbol
	return symbol
}

// OutputContext is the emission context of one generated file. It owns the
// file's constant pool and the statements that reference it.
type OutputContext struct {
	GenFilePath  string
	Statements   []output.OutputStatement
	ConstantPool *pool.ConstantPool
}

// NewOutputContext creates a context for genFilePath
func NewOutputContext(genFilePath string, constantPool *pool.ConstantPool) *OutputContext {
	return &OutputContext{
		GenFilePath:  genFilePath,
		Statements:   []output.OutputStatement{},
		ConstantPool: constantPool,
	}
}

// ImportExpr returns an expression that refers to typ from the generated
// file. Symbols declared in the generated file itself are read directly.
func (ctx *OutputContext) ImportExpr(typ interface{}) output.OutputExpression {
	switch t := typ.(type) {
	case *StaticSymbol:
		span := util.SyntheticSourceSpan("symbol", t.Name, t.FilePath)
		if t.FilePath == ctx.GenFilePath {
			return output.NewReadVarExpr(t.Name, nil, span)
		}
		return output.NewExternalExpr(output.NewExternalReference(t.FilePath, t.Name), nil, nil, span)
	case *output.ExternalReference:
		return output.NewExternalExpr(t, nil, nil, nil)
	}
	panic(fmt.Sprintf("ImportExpr: unsupported type reference %T", typ))
}

// UniqueName returns a name that is unique within the generated file
func (ctx *OutputContext) UniqueName(prefix string) string {
	return ctx.ConstantPool.UniqueName(prefix)
}

// GetDefinition returns an expression for the definition of kind on typ
func (ctx *OutputContext) GetDefinition(typ interface{}, kind pool.DefinitionKind, forceShared bool) output.OutputExpression {
	return ctx.ConstantPool.GetDefinition(typ, kind, ctx, forceShared)
}

// AddStatement appends a statement of the generated file
func (ctx *OutputContext) AddStatement(stmt output.OutputStatement) {
	ctx.Statements = append(ctx.Statements, stmt)
}

// AllStatements returns the pooled statements followed by the file's own
// statements, which is the order they must be emitted in.
func (ctx *OutputContext) AllStatements() []output.OutputStatement {
	pooled := ctx.ConstantPool.GetStatements()
	all := make([]output.OutputStatement, 0, len(pooled)+len(ctx.Statements))
	all = append(all, pooled...)
	return append(all, ctx.Statements...)
}
