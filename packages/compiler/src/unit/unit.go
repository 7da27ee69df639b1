// Package unit reads compilation unit fixtures: TOML files that list the
// literals and definition references a lowering pass would feed to a constant
// pool, in order.
package unit

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ngc-pool/packages/compiler/output"
	"ngc-pool/packages/compiler/util"
)

// Request operations
const (
	OpLiteral    = "literal"
	OpFactory    = "factory"
	OpDefinition = "definition"
)

// File is a decoded unit file
type File struct {
	Name     string     `toml:"name"`
	Requests []*Request `toml:"request"`

	path string
}

// Path returns the file the unit was loaded from, if any
func (f *File) Path() string {
	return f.path
}

// Request is one call into the pool
type Request struct {
	Op     string `toml:"op"`
	Shared bool   `toml:"shared"`
	Value  *Node  `toml:"value"`
	Kind   string `toml:"kind"`
	Module string `toml:"module"`
	Symbol string `toml:"symbol"`
}

// Node describes an expression. Exactly one field must be set.
type Node struct {
	String   *string       `toml:"string"`
	Int      *int64        `toml:"int"`
	Float    *float64      `toml:"float"`
	Bool     *bool         `toml:"bool"`
	Null     bool          `toml:"null"`
	Var      *string       `toml:"var"`
	Regex    *RegexNode    `toml:"regex"`
	Array    []*Node       `toml:"array"`
	Map      []*MapEntry   `toml:"map"`
	External *ExternalNode `toml:"external"`
	Typeof   *Node         `toml:"typeof"`
}

// MapEntry is one entry of a map node
type MapEntry struct {
	Key    string `toml:"key"`
	Quoted bool   `toml:"quoted"`
	Value  *Node  `toml:"value"`
}

// ExternalNode refers to an exported symbol of a module
type ExternalNode struct {
	Module string `toml:"module"`
	Name   string `toml:"name"`
}

// RegexNode is a regular expression literal
type RegexNode struct {
	Body  string `toml:"body"`
	Flags string `toml:"flags"`
}

// Load reads and decodes a unit file. The unit name defaults to the file name.
func Load(path string) (*File, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := checkUndecoded(meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.path = path
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), ".unit.toml")
	}
	return &f, nil
}

// Parse decodes a unit file from its text
func Parse(data string) (*File, error) {
	var f File
	meta, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := checkUndecoded(meta); err != nil {
		return nil, err
	}
	return &f, nil
}

func checkUndecoded(meta toml.MetaData) error {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, key := range undecoded {
		keys[i] = key.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

// Expression converts the node into an output expression
func (n *Node) Expression(span *util.ParseSourceSpan) (output.OutputExpression, error) {
	if n == nil {
		return nil, errors.New("missing value")
	}
	var (
		expr output.OutputExpression
		set  int
	)
	if n.String != nil {
		set++
		expr = output.NewLiteralExpr(*n.String, output.StringType, span)
	}
	if n.Int != nil {
		set++
		expr = output.NewLiteralExpr(*n.Int, output.NumberType, span)
	}
	if n.Float != nil {
		set++
		expr = output.NewLiteralExpr(*n.Float, output.NumberType, span)
	}
	if n.Bool != nil {
		set++
		expr = output.NewLiteralExpr(*n.Bool, output.BoolType, span)
	}
	if n.Null {
		set++
		expr = output.NewLiteralExpr(nil, nil, span)
	}
	if n.Var != nil {
		set++
		expr = output.NewReadVarExpr(*n.Var, nil, span)
	}
	if n.Regex != nil {
		set++
		expr = output.NewRegularExpressionLiteralExpr(n.Regex.Body, n.Regex.Flags, span)
	}
	if n.Array != nil {
		set++
		entries := make([]output.OutputExpression, len(n.Array))
		for i, entry := range n.Array {
			e, err := entry.Expression(span)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			entries[i] = e
		}
		expr = output.NewLiteralArrayExpr(entries, nil, span)
	}
	if n.Map != nil {
		set++
		entries := make([]*output.LiteralMapEntry, len(n.Map))
		for i, entry := range n.Map {
			if entry.Key == "" {
				return nil, fmt.Errorf("map[%d]: missing key", i)
			}
			value, err := entry.Value.Expression(span)
			if err != nil {
				return nil, fmt.Errorf("map[%d] %s: %w", i, entry.Key, err)
			}
			entries[i] = output.NewLiteralMapEntry(entry.Key, value, entry.Quoted)
		}
		expr = output.NewLiteralMapExpr(entries, nil, span)
	}
	if n.External != nil {
		set++
		expr = output.NewExternalExpr(output.NewExternalReference(n.External.Module, n.External.Name), nil, nil, span)
	}
	if n.Typeof != nil {
		set++
		inner, err := n.Typeof.Expression(span)
		if err != nil {
			return nil, fmt.Errorf("typeof: %w", err)
		}
		expr = output.NewTypeofExpr(inner, output.StringType, span)
	}

	switch set {
	case 0:
		return nil, errors.New("empty value node")
	case 1:
		return expr, nil
	default:
		return nil, fmt.Errorf("value node sets %d kinds, expected exactly one", set)
	}
}
