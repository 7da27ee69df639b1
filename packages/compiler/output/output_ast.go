package output

import (
	"ngc-pool/packages/compiler/util"
)

// TypeModifier represents type modifiers
type TypeModifier int

const (
	TypeModifierNone  TypeModifier = 0
	TypeModifierConst TypeModifier = 1 << 0
)

// Type is the base interface for all types
type Type interface {
	HasModifier(modifier TypeModifier) bool
}

// BuiltinTypeName represents builtin type names
type BuiltinTypeName int

const (
	BuiltinTypeNameDynamic BuiltinTypeName = iota
	BuiltinTypeNameBool
	BuiltinTypeNameString
	BuiltinTypeNameInt
	BuiltinTypeNameNumber
	BuiltinTypeNameFunction
	BuiltinTypeNameInferred
	BuiltinTypeNameNone
)

// BuiltinType represents a builtin type
type BuiltinType struct {
	Name      BuiltinTypeName
	Modifiers TypeModifier
}

// NewBuiltinType creates a new BuiltinType
func NewBuiltinType(name BuiltinTypeName, modifiers TypeModifier) *BuiltinType {
	return &BuiltinType{
		Name:      name,
		Modifiers: modifiers,
	}
}

// HasModifier checks if the type has a modifier
func (b *BuiltinType) HasModifier(modifier TypeModifier) bool {
	return (b.Modifiers & modifier) != 0
}

// ExpressionType is a type that is denoted by an expression, usually an
// imported symbol.
type ExpressionType struct {
	Value      OutputExpression
	Modifiers  TypeModifier
	TypeParams []Type
}

// NewExpressionType creates a new ExpressionType
func NewExpressionType(value OutputExpression, modifiers TypeModifier, typeParams []Type) *ExpressionType {
	return &ExpressionType{
		Value:      value,
		Modifiers:  modifiers,
		TypeParams: typeParams,
	}
}

// HasModifier checks if the type has a modifier
func (e *ExpressionType) HasModifier(modifier TypeModifier) bool {
	return (e.Modifiers & modifier) != 0
}

// Predefined type constants
var (
	DynamicType  = NewBuiltinType(BuiltinTypeNameDynamic, TypeModifierNone)
	InferredType = NewBuiltinType(BuiltinTypeNameInferred, TypeModifierNone)
	BoolType     = NewBuiltinType(BuiltinTypeNameBool, TypeModifierNone)
	IntType      = NewBuiltinType(BuiltinTypeNameInt, TypeModifierNone)
	NumberType   = NewBuiltinType(BuiltinTypeNameNumber, TypeModifierNone)
	StringType   = NewBuiltinType(BuiltinTypeNameString, TypeModifierNone)
	FunctionType = NewBuiltinType(BuiltinTypeNameFunction, TypeModifierNone)
	NoneType     = NewBuiltinType(BuiltinTypeNameNone, TypeModifierNone)
)

// UnaryOperator represents unary operators
type UnaryOperator int

const (
	UnaryOperatorMinus UnaryOperator = iota
	UnaryOperatorPlus
)

// BinaryOperator represents binary operators
type BinaryOperator int

const (
	BinaryOperatorEquals BinaryOperator = iota
	BinaryOperatorNotEquals
	BinaryOperatorAssign
	BinaryOperatorIdentical
	BinaryOperatorNotIdentical
	BinaryOperatorMinus
	BinaryOperatorPlus
	BinaryOperatorDivide
	BinaryOperatorMultiply
	BinaryOperatorModulo
	BinaryOperatorAnd
	BinaryOperatorOr
	BinaryOperatorLower
	BinaryOperatorBigger
	BinaryOperatorNullishCoalesce
)

// OutputExpression is a node of the output AST.
//
// The set of expressions is closed: the unexported marker method is only
// available to types that embed ExpressionBase.
type OutputExpression interface {
	GetType() Type
	GetSourceSpan() *util.ParseSourceSpan
	IsEquivalent(e OutputExpression) bool
	IsConstant() bool
	outputExpression()
}

// ExpressionBase is the base struct for all expressions
type ExpressionBase struct {
	Type       Type
	SourceSpan *util.ParseSourceSpan
}

// GetType returns the type of the expression
func (e *ExpressionBase) GetType() Type {
	return e.Type
}

// GetSourceSpan returns the source span
func (e *ExpressionBase) GetSourceSpan() *util.ParseSourceSpan {
	return e.SourceSpan
}

func (e *ExpressionBase) outputExpression() {}

// ReadVarExpr represents a variable read expression
type ReadVarExpr struct {
	ExpressionBase
	Name string
}

// NewReadVarExpr creates a new ReadVarExpr
func NewReadVarExpr(name string, typ Type, sourceSpan *util.ParseSourceSpan) *ReadVarExpr {
	return &ReadVarExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Name:           name,
	}
}

// Variable is a shorthand for an untyped variable read
func Variable(name string) *ReadVarExpr {
	return NewReadVarExpr(name, nil, nil)
}

// IsEquivalent checks if two expressions are equivalent
func (r *ReadVarExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ReadVarExpr); ok {
		return r.Name == other.Name
	}
	return false
}

// IsConstant returns false for variable reads
func (r *ReadVarExpr) IsConstant() bool {
	return false
}

// Set creates an assignment expression
func (r *ReadVarExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value, r.Type, r.SourceSpan)
}

// Prop reads a property of the variable
func (r *ReadVarExpr) Prop(name string) *ReadPropExpr {
	return NewReadPropExpr(r, name, nil, nil)
}

// CallFn invokes the variable as a function
func (r *ReadVarExpr) CallFn(args []OutputExpression) *InvokeFunctionExpr {
	return NewInvokeFunctionExpr(r, args, nil, nil, false)
}

// LiteralExpr represents a primitive literal: a string, a number, a boolean
// or null (a nil Value).
type LiteralExpr struct {
	ExpressionBase
	Value interface{}
}

// NewLiteralExpr creates a new LiteralExpr
func NewLiteralExpr(value interface{}, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralExpr {
	return &LiteralExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Value:          value,
	}
}

// Literal is a shorthand for an untyped literal
func Literal(value interface{}) *LiteralExpr {
	return NewLiteralExpr(value, nil, nil)
}

// IsEquivalent checks if two expressions are equivalent
func (l *LiteralExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*LiteralExpr); ok {
		return l.Value == other.Value
	}
	return false
}

// IsConstant returns true for literals
func (l *LiteralExpr) IsConstant() bool {
	return true
}

// Predefined expressions
var (
	NullExpr      = NewLiteralExpr(nil, nil, nil)
	TypedNullExpr = NewLiteralExpr(nil, InferredType, nil)
)

// RegularExpressionLiteralExpr represents a regular expression literal
type RegularExpressionLiteralExpr struct {
	ExpressionBase
	Body  string
	Flags string
}

// NewRegularExpressionLiteralExpr creates a new RegularExpressionLiteralExpr
func NewRegularExpressionLiteralExpr(body, flags string, sourceSpan *util.ParseSourceSpan) *RegularExpressionLiteralExpr {
	return &RegularExpressionLiteralExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Body:           body,
		Flags:          flags,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (r *RegularExpressionLiteralExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*RegularExpressionLiteralExpr); ok {
		return r.Body == other.Body && r.Flags == other.Flags
	}
	return false
}

// IsConstant returns true for regular expression literals
func (r *RegularExpressionLiteralExpr) IsConstant() bool {
	return true
}

// LiteralArrayExpr represents an array literal
type LiteralArrayExpr struct {
	ExpressionBase
	Entries []OutputExpression
}

// NewLiteralArrayExpr creates a new LiteralArrayExpr
func NewLiteralArrayExpr(entries []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralArrayExpr {
	return &LiteralArrayExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Entries:        entries,
	}
}

// LiteralArr is a shorthand for an untyped array literal
func LiteralArr(entries ...OutputExpression) *LiteralArrayExpr {
	return NewLiteralArrayExpr(entries, nil, nil)
}

// IsEquivalent checks if two expressions are equivalent
func (l *LiteralArrayExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*LiteralArrayExpr); ok {
		return areAllEquivalent(l.Entries, other.Entries)
	}
	return false
}

// IsConstant returns true if all entries are constant
func (l *LiteralArrayExpr) IsConstant() bool {
	for _, entry := range l.Entries {
		if !entry.IsConstant() {
			return false
		}
	}
	return true
}

// LiteralMapEntry is one key/value pair of a map literal
type LiteralMapEntry struct {
	Key    string
	Value  OutputExpression
	Quoted bool
}

// NewLiteralMapEntry creates a new LiteralMapEntry
func NewLiteralMapEntry(key string, value OutputExpression, quoted bool) *LiteralMapEntry {
	return &LiteralMapEntry{Key: key, Value: value, Quoted: quoted}
}

// IsEquivalent checks if two entries are equivalent
func (l *LiteralMapEntry) IsEquivalent(e *LiteralMapEntry) bool {
	return l.Key == e.Key && l.Quoted == e.Quoted && l.Value.IsEquivalent(e.Value)
}

// LiteralMapExpr represents an object literal. Entries keep their insertion
// order.
type LiteralMapExpr struct {
	ExpressionBase
	Entries   []*LiteralMapEntry
	ValueType Type
}

// NewLiteralMapExpr creates a new LiteralMapExpr
func NewLiteralMapExpr(entries []*LiteralMapEntry, valueType Type, sourceSpan *util.ParseSourceSpan) *LiteralMapExpr {
	return &LiteralMapExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Entries:        entries,
		ValueType:      valueType,
	}
}

// LiteralMap is a shorthand for an untyped map literal
func LiteralMap(entries ...*LiteralMapEntry) *LiteralMapExpr {
	return NewLiteralMapExpr(entries, nil, nil)
}

// IsEquivalent checks if two expressions are equivalent
func (l *LiteralMapExpr) IsEquivalent(e OutputExpression) bool {
	other, ok := e.(*LiteralMapExpr)
	if !ok || len(l.Entries) != len(other.Entries) {
		return false
	}
	for i, entry := range l.Entries {
		if !entry.IsEquivalent(other.Entries[i]) {
			return false
		}
	}
	return true
}

// IsConstant returns true if all values are constant
func (l *LiteralMapExpr) IsConstant() bool {
	for _, entry := range l.Entries {
		if !entry.Value.IsConstant() {
			return false
		}
	}
	return true
}

// ExternalReference identifies a symbol that lives outside the generated
// file. Runtime is set for symbols that are only known by identity, in which
// case ModuleName is nil.
type ExternalReference struct {
	ModuleName *string
	Name       *string
	Runtime    interface{}
}

// NewExternalReference creates a reference to an exported symbol of a module
func NewExternalReference(moduleName, name string) *ExternalReference {
	return &ExternalReference{ModuleName: &moduleName, Name: &name}
}

// IsEquivalent checks if two references denote the same symbol
func (r *ExternalReference) IsEquivalent(other *ExternalReference) bool {
	return stringPtrEqual(r.ModuleName, other.ModuleName) &&
		stringPtrEqual(r.Name, other.Name) &&
		r.Runtime == other.Runtime
}

// ExternalExpr represents a reference to an imported symbol
type ExternalExpr struct {
	ExpressionBase
	Value      *ExternalReference
	TypeParams []Type
}

// NewExternalExpr creates a new ExternalExpr
func NewExternalExpr(value *ExternalReference, typ Type, typeParams []Type, sourceSpan *util.ParseSourceSpan) *ExternalExpr {
	return &ExternalExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Value:          value,
		TypeParams:     typeParams,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (e *ExternalExpr) IsEquivalent(other OutputExpression) bool {
	if o, ok := other.(*ExternalExpr); ok {
		return e.Value.IsEquivalent(o.Value)
	}
	return false
}

// IsConstant returns false for external references
func (e *ExternalExpr) IsConstant() bool {
	return false
}

// Prop reads a property of the imported symbol
func (e *ExternalExpr) Prop(name string) *ReadPropExpr {
	return NewReadPropExpr(e, name, nil, nil)
}

// TypeofExpr represents a typeof expression
type TypeofExpr struct {
	ExpressionBase
	Expr OutputExpression
}

// NewTypeofExpr creates a new TypeofExpr
func NewTypeofExpr(expr OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *TypeofExpr {
	return &TypeofExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Expr:           expr,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (t *TypeofExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*TypeofExpr); ok {
		return t.Expr.IsEquivalent(other.Expr)
	}
	return false
}

// IsConstant returns true if the operand is constant
func (t *TypeofExpr) IsConstant() bool {
	return t.Expr.IsConstant()
}

// ReadPropExpr represents a property read
type ReadPropExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Name     string
}

// NewReadPropExpr creates a new ReadPropExpr
func NewReadPropExpr(receiver OutputExpression, name string, typ Type, sourceSpan *util.ParseSourceSpan) *ReadPropExpr {
	return &ReadPropExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Receiver:       receiver,
		Name:           name,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (r *ReadPropExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ReadPropExpr); ok {
		return r.Name == other.Name && r.Receiver.IsEquivalent(other.Receiver)
	}
	return false
}

// IsConstant returns false for property reads
func (r *ReadPropExpr) IsConstant() bool {
	return false
}

// Set creates an assignment to the property
func (r *ReadPropExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value, r.Type, r.SourceSpan)
}

// ReadKeyExpr represents a keyed read
type ReadKeyExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Index    OutputExpression
}

// NewReadKeyExpr creates a new ReadKeyExpr
func NewReadKeyExpr(receiver, index OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *ReadKeyExpr {
	return &ReadKeyExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Receiver:       receiver,
		Index:          index,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (r *ReadKeyExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ReadKeyExpr); ok {
		return r.Receiver.IsEquivalent(other.Receiver) && r.Index.IsEquivalent(other.Index)
	}
	return false
}

// IsConstant returns false for keyed reads
func (r *ReadKeyExpr) IsConstant() bool {
	return false
}

// InvokeFunctionExpr represents a function call
type InvokeFunctionExpr struct {
	ExpressionBase
	Fn   OutputExpression
	Args []OutputExpression
	Pure bool
}

// NewInvokeFunctionExpr creates a new InvokeFunctionExpr
func NewInvokeFunctionExpr(fn OutputExpression, args []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan, pure bool) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Fn:             fn,
		Args:           args,
		Pure:           pure,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (i *InvokeFunctionExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*InvokeFunctionExpr); ok {
		return i.Fn.IsEquivalent(other.Fn) && areAllEquivalent(i.Args, other.Args) && i.Pure == other.Pure
	}
	return false
}

// IsConstant returns false for calls
func (i *InvokeFunctionExpr) IsConstant() bool {
	return false
}

// InstantiateExpr represents a `new` expression
type InstantiateExpr struct {
	ExpressionBase
	ClassExpr OutputExpression
	Args      []OutputExpression
}

// NewInstantiateExpr creates a new InstantiateExpr
func NewInstantiateExpr(classExpr OutputExpression, args []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *InstantiateExpr {
	return &InstantiateExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		ClassExpr:      classExpr,
		Args:           args,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (i *InstantiateExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*InstantiateExpr); ok {
		return i.ClassExpr.IsEquivalent(other.ClassExpr) && areAllEquivalent(i.Args, other.Args)
	}
	return false
}

// IsConstant returns false for instantiations
func (i *InstantiateExpr) IsConstant() bool {
	return false
}

// ConditionalExpr represents a ternary expression
type ConditionalExpr struct {
	ExpressionBase
	Condition OutputExpression
	TrueCase  OutputExpression
	FalseCase OutputExpression
}

// NewConditionalExpr creates a new ConditionalExpr
func NewConditionalExpr(condition, trueCase, falseCase OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *ConditionalExpr {
	exprType := typ
	if exprType == nil && trueCase != nil {
		exprType = trueCase.GetType()
	}
	return &ConditionalExpr{
		ExpressionBase: ExpressionBase{Type: exprType, SourceSpan: sourceSpan},
		Condition:      condition,
		TrueCase:       trueCase,
		FalseCase:      falseCase,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (c *ConditionalExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ConditionalExpr); ok {
		return c.Condition.IsEquivalent(other.Condition) &&
			c.TrueCase.IsEquivalent(other.TrueCase) &&
			nullSafeIsEquivalent(c.FalseCase, other.FalseCase)
	}
	return false
}

// IsConstant returns false for conditionals
func (c *ConditionalExpr) IsConstant() bool {
	return false
}

// NotExpr represents a logical negation
type NotExpr struct {
	ExpressionBase
	Condition OutputExpression
}

// NewNotExpr creates a new NotExpr
func NewNotExpr(condition OutputExpression, sourceSpan *util.ParseSourceSpan) *NotExpr {
	return &NotExpr{
		ExpressionBase: ExpressionBase{Type: BoolType, SourceSpan: sourceSpan},
		Condition:      condition,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (n *NotExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*NotExpr); ok {
		return n.Condition.IsEquivalent(other.Condition)
	}
	return false
}

// IsConstant returns false for negations
func (n *NotExpr) IsConstant() bool {
	return false
}

// AssertNotNullExpr represents a non-null assertion
type AssertNotNullExpr struct {
	ExpressionBase
	Condition OutputExpression
}

// NewAssertNotNullExpr creates a new AssertNotNullExpr
func NewAssertNotNullExpr(condition OutputExpression, sourceSpan *util.ParseSourceSpan) *AssertNotNullExpr {
	return &AssertNotNullExpr{
		ExpressionBase: ExpressionBase{Type: condition.GetType(), SourceSpan: sourceSpan},
		Condition:      condition,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (a *AssertNotNullExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*AssertNotNullExpr); ok {
		return a.Condition.IsEquivalent(other.Condition)
	}
	return false
}

// IsConstant returns false for assertions
func (a *AssertNotNullExpr) IsConstant() bool {
	return false
}

// CastExpr represents a type cast
type CastExpr struct {
	ExpressionBase
	Value OutputExpression
}

// NewCastExpr creates a new CastExpr
func NewCastExpr(value OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *CastExpr {
	return &CastExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Value:          value,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (c *CastExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*CastExpr); ok {
		return c.Value.IsEquivalent(other.Value)
	}
	return false
}

// IsConstant returns false for casts
func (c *CastExpr) IsConstant() bool {
	return false
}

// UnaryOperatorExpr represents a unary operation
type UnaryOperatorExpr struct {
	ExpressionBase
	Operator UnaryOperator
	Expr     OutputExpression
}

// NewUnaryOperatorExpr creates a new UnaryOperatorExpr
func NewUnaryOperatorExpr(operator UnaryOperator, expr OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *UnaryOperatorExpr {
	exprType := typ
	if exprType == nil {
		exprType = NumberType
	}
	return &UnaryOperatorExpr{
		ExpressionBase: ExpressionBase{Type: exprType, SourceSpan: sourceSpan},
		Operator:       operator,
		Expr:           expr,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (u *UnaryOperatorExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*UnaryOperatorExpr); ok {
		return u.Operator == other.Operator && u.Expr.IsEquivalent(other.Expr)
	}
	return false
}

// IsConstant returns false for unary operations
func (u *UnaryOperatorExpr) IsConstant() bool {
	return false
}

// BinaryOperatorExpr represents a binary operation, including assignments
type BinaryOperatorExpr struct {
	ExpressionBase
	Operator BinaryOperator
	Lhs      OutputExpression
	Rhs      OutputExpression
}

// NewBinaryOperatorExpr creates a new BinaryOperatorExpr
func NewBinaryOperatorExpr(operator BinaryOperator, lhs, rhs OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *BinaryOperatorExpr {
	exprType := typ
	if exprType == nil && lhs != nil {
		exprType = lhs.GetType()
	}
	return &BinaryOperatorExpr{
		ExpressionBase: ExpressionBase{Type: exprType, SourceSpan: sourceSpan},
		Operator:       operator,
		Lhs:            lhs,
		Rhs:            rhs,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (b *BinaryOperatorExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*BinaryOperatorExpr); ok {
		return b.Operator == other.Operator && b.Lhs.IsEquivalent(other.Lhs) && b.Rhs.IsEquivalent(other.Rhs)
	}
	return false
}

// IsConstant returns false for binary operations
func (b *BinaryOperatorExpr) IsConstant() bool {
	return false
}

// IsAssignment reports whether the operation writes to its left operand
func (b *BinaryOperatorExpr) IsAssignment() bool {
	return b.Operator == BinaryOperatorAssign
}

// CommaExpr represents a comma sequence
type CommaExpr struct {
	ExpressionBase
	Parts []OutputExpression
}

// NewCommaExpr creates a new CommaExpr
func NewCommaExpr(parts []OutputExpression, sourceSpan *util.ParseSourceSpan) *CommaExpr {
	var typ Type
	if len(parts) > 0 {
		typ = parts[len(parts)-1].GetType()
	}
	return &CommaExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Parts:          parts,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (c *CommaExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*CommaExpr); ok {
		return areAllEquivalent(c.Parts, other.Parts)
	}
	return false
}

// IsConstant returns false for comma sequences
func (c *CommaExpr) IsConstant() bool {
	return false
}

// WrappedNodeExpr carries a host node the output AST does not model
type WrappedNodeExpr struct {
	ExpressionBase
	Node interface{}
}

// NewWrappedNodeExpr creates a new WrappedNodeExpr
func NewWrappedNodeExpr(node interface{}, typ Type, sourceSpan *util.ParseSourceSpan) *WrappedNodeExpr {
	return &WrappedNodeExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Node:           node,
	}
}

// IsEquivalent checks if two expressions wrap the same node
func (w *WrappedNodeExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*WrappedNodeExpr); ok {
		return w.Node == other.Node
	}
	return false
}

// IsConstant returns false for wrapped nodes
func (w *WrappedNodeExpr) IsConstant() bool {
	return false
}

// FnParam is a function parameter
type FnParam struct {
	Name string
	Type Type
}

// NewFnParam creates a new FnParam
func NewFnParam(name string, typ Type) *FnParam {
	return &FnParam{Name: name, Type: typ}
}

// IsEquivalent compares parameter names
func (p *FnParam) IsEquivalent(other *FnParam) bool {
	return p.Name == other.Name
}

// FunctionExpr represents a function expression
type FunctionExpr struct {
	ExpressionBase
	Params     []*FnParam
	Statements []OutputStatement
	Name       string
}

// NewFunctionExpr creates a new FunctionExpr
func NewFunctionExpr(params []*FnParam, statements []OutputStatement, typ Type, sourceSpan *util.ParseSourceSpan, name string) *FunctionExpr {
	return &FunctionExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Params:         params,
		Statements:     statements,
		Name:           name,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (f *FunctionExpr) IsEquivalent(e OutputExpression) bool {
	other, ok := e.(*FunctionExpr)
	if !ok {
		return false
	}
	return areAllParamsEquivalent(f.Params, other.Params) && areAllStatementsEquivalent(f.Statements, other.Statements)
}

// IsEquivalentToStmt checks if the function has the same shape as a declared function
func (f *FunctionExpr) IsEquivalentToStmt(stmt *DeclareFunctionStmt) bool {
	return areAllParamsEquivalent(f.Params, stmt.Params) && areAllStatementsEquivalent(f.Statements, stmt.Statements)
}

// IsConstant returns false for functions
func (f *FunctionExpr) IsConstant() bool {
	return false
}

// ToDeclStmt turns the function into a named declaration
func (f *FunctionExpr) ToDeclStmt(name string, modifiers StmtModifier) *DeclareFunctionStmt {
	return NewDeclareFunctionStmt(name, f.Params, f.Statements, f.Type, modifiers, f.SourceSpan)
}

// ArrowFunctionExpr represents an arrow function with an expression body
type ArrowFunctionExpr struct {
	ExpressionBase
	Params []*FnParam
	Body   OutputExpression
}

// NewArrowFunctionExpr creates a new ArrowFunctionExpr
func NewArrowFunctionExpr(params []*FnParam, body OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *ArrowFunctionExpr {
	return &ArrowFunctionExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Params:         params,
		Body:           body,
	}
}

// IsEquivalent checks if two expressions are equivalent
func (a *ArrowFunctionExpr) IsEquivalent(e OutputExpression) bool {
	other, ok := e.(*ArrowFunctionExpr)
	if !ok {
		return false
	}
	return areAllParamsEquivalent(a.Params, other.Params) && a.Body.IsEquivalent(other.Body)
}

// IsConstant returns false for arrow functions
func (a *ArrowFunctionExpr) IsConstant() bool {
	return false
}

// StmtModifier represents statement modifiers
type StmtModifier int

const (
	StmtModifierNone     StmtModifier = 0
	StmtModifierFinal    StmtModifier = 1 << 0
	StmtModifierPrivate  StmtModifier = 1 << 1
	StmtModifierExported StmtModifier = 1 << 2
	StmtModifierStatic   StmtModifier = 1 << 3
)

// OutputStatement is a statement of the output AST
type OutputStatement interface {
	GetModifiers() StmtModifier
	HasModifier(modifier StmtModifier) bool
	GetSourceSpan() *util.ParseSourceSpan
	IsEquivalent(stmt OutputStatement) bool
	outputStatement()
}

// StatementBase is the base struct for all statements
type StatementBase struct {
	Modifiers  StmtModifier
	SourceSpan *util.ParseSourceSpan
}

// GetModifiers returns the modifiers
func (s *StatementBase) GetModifiers() StmtModifier {
	return s.Modifiers
}

// HasModifier checks if the statement has a modifier
func (s *StatementBase) HasModifier(modifier StmtModifier) bool {
	return (s.Modifiers & modifier) != 0
}

// GetSourceSpan returns the source span
func (s *StatementBase) GetSourceSpan() *util.ParseSourceSpan {
	return s.SourceSpan
}

func (s *StatementBase) outputStatement() {}

// DeclareVarStmt declares a variable
type DeclareVarStmt struct {
	StatementBase
	Name  string
	Value OutputExpression
	Type  Type
}

// NewDeclareVarStmt creates a new DeclareVarStmt
func NewDeclareVarStmt(name string, value OutputExpression, typ Type, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan) *DeclareVarStmt {
	if typ == nil && value != nil {
		typ = value.GetType()
	}
	return &DeclareVarStmt{
		StatementBase: StatementBase{Modifiers: modifiers, SourceSpan: sourceSpan},
		Name:          name,
		Value:         value,
		Type:          typ,
	}
}

// IsEquivalent checks if two statements are equivalent
func (d *DeclareVarStmt) IsEquivalent(stmt OutputStatement) bool {
	if other, ok := stmt.(*DeclareVarStmt); ok {
		return d.Name == other.Name && nullSafeIsEquivalent(d.Value, other.Value)
	}
	return false
}

// DeclareFunctionStmt declares a named function
type DeclareFunctionStmt struct {
	StatementBase
	Name       string
	Params     []*FnParam
	Statements []OutputStatement
	Type       Type
}

// NewDeclareFunctionStmt creates a new DeclareFunctionStmt
func NewDeclareFunctionStmt(name string, params []*FnParam, statements []OutputStatement, typ Type, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan) *DeclareFunctionStmt {
	return &DeclareFunctionStmt{
		StatementBase: StatementBase{Modifiers: modifiers, SourceSpan: sourceSpan},
		Name:          name,
		Params:        params,
		Statements:    statements,
		Type:          typ,
	}
}

// IsEquivalent checks if two statements are equivalent
func (d *DeclareFunctionStmt) IsEquivalent(stmt OutputStatement) bool {
	if other, ok := stmt.(*DeclareFunctionStmt); ok {
		return areAllParamsEquivalent(d.Params, other.Params) && areAllStatementsEquivalent(d.Statements, other.Statements)
	}
	return false
}

// ExpressionStatement evaluates an expression for its side effects
type ExpressionStatement struct {
	StatementBase
	Expr OutputExpression
}

// NewExpressionStatement creates a new ExpressionStatement
func NewExpressionStatement(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *ExpressionStatement {
	return &ExpressionStatement{
		StatementBase: StatementBase{SourceSpan: sourceSpan},
		Expr:          expr,
	}
}

// IsEquivalent checks if two statements are equivalent
func (e *ExpressionStatement) IsEquivalent(stmt OutputStatement) bool {
	if other, ok := stmt.(*ExpressionStatement); ok {
		return e.Expr.IsEquivalent(other.Expr)
	}
	return false
}

// ReturnStatement returns a value
type ReturnStatement struct {
	StatementBase
	Value OutputExpression
}

// NewReturnStatement creates a new ReturnStatement
func NewReturnStatement(value OutputExpression, sourceSpan *util.ParseSourceSpan) *ReturnStatement {
	return &ReturnStatement{
		StatementBase: StatementBase{SourceSpan: sourceSpan},
		Value:         value,
	}
}

// IsEquivalent checks if two statements are equivalent
func (r *ReturnStatement) IsEquivalent(stmt OutputStatement) bool {
	if other, ok := stmt.(*ReturnStatement); ok {
		return r.Value.IsEquivalent(other.Value)
	}
	return false
}

func nullSafeIsEquivalent(base, other OutputExpression) bool {
	if base == nil || other == nil {
		return base == other
	}
	return base.IsEquivalent(other)
}

func areAllEquivalent(base, other []OutputExpression) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !base[i].IsEquivalent(other[i]) {
			return false
		}
	}
	return true
}

func areAllParamsEquivalent(base, other []*FnParam) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !base[i].IsEquivalent(other[i]) {
			return false
		}
	}
	return true
}

func areAllStatementsEquivalent(base, other []OutputStatement) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !base[i].IsEquivalent(other[i]) {
			return false
		}
	}
	return true
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
