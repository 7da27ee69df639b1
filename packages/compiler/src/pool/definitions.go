package pool

import (
	"fmt"
	"strings"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/util"
)

// DefinitionKind is the category of generated per-type metadata
type DefinitionKind int

const (
	DefinitionKindInjector DefinitionKind = iota
	DefinitionKindDirective
	DefinitionKindComponent
	DefinitionKindPipe
)

var definitionKindNames = map[DefinitionKind]string{
	DefinitionKindInjector:  "injector",
	DefinitionKindDirective: "directive",
	DefinitionKindComponent: "component",
	DefinitionKindPipe:      "pipe",
}

func (k DefinitionKind) String() string {
	if name, ok := definitionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DefinitionKind(%d)", int(k))
}

// ParseDefinitionKind parses the lower case name of a definition kind
func ParseDefinitionKind(name string) (DefinitionKind, error) {
	for kind, kindName := range definitionKindNames {
		if strings.EqualFold(name, kindName) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown definition kind %q", name)
}

// Importer produces an expression that refers to a type from the file being
// generated. It is implemented by the emission context.
type Importer interface {
	ImportExpr(typ interface{}) output.OutputExpression
}

// GetDefinition returns an expression for the definition of kind attached to
// typ. The first request reads the definition property of the imported type
// directly; the second one hoists it into a shared variable that every
// previously returned expression then refers to.
//
// typ must be comparable; it is compared by identity within the table of kind.
func (cp *ConstantPool) GetDefinition(typ interface{}, kind DefinitionKind, ctx Importer, forceShared bool) output.OutputExpression {
	definitions := cp.definitionsOf(kind)
	property := propertyNameOf(kind)

	fixup, exists := definitions[typ]
	if !exists {
		fixup = NewFixupExpression(output.NewReadPropExpr(ctx.ImportExpr(typ), property, nil, nil))
		definitions[typ] = fixup
	}

	if (exists && !fixup.shared) || (!exists && forceShared) {
		name := cp.freshName()
		cp.declare(name, fixup.resolved, DeclarationDefinition, fmt.Sprintf("%s:%s", kind, util.Stringify(typ)))
		fixup.Fixup(output.Variable(name))
	}
	return fixup
}

func (cp *ConstantPool) definitionsOf(kind DefinitionKind) map[interface{}]*FixupExpression {
	switch kind {
	case DefinitionKindComponent:
		return cp.componentDefinitions
	case DefinitionKindDirective:
		return cp.directiveDefinitions
	case DefinitionKindInjector:
		return cp.injectorDefinitions
	case DefinitionKindPipe:
		return cp.pipeDefinitions
	}
	panic(&UnknownDefinitionKindError{Kind: kind})
}

func propertyNameOf(kind DefinitionKind) string {
	switch kind {
	case DefinitionKindComponent:
		return "ngComponentDef"
	case DefinitionKindDirective:
		return "ngDirectiveDef"
	case DefinitionKindInjector:
		return "ngInjectorDef"
	case DefinitionKindPipe:
		return "ngPipeDef"
	}
	panic(&UnknownDefinitionKindError{Kind: kind})
}
