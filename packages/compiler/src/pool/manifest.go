package pool

import (
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// DeclarationKind tells which pool operation hoisted a declaration
type DeclarationKind string

const (
	DeclarationLiteral        DeclarationKind = "literal"
	DeclarationFactory        DeclarationKind = "factory"
	DeclarationDefinition     DeclarationKind = "definition"
	DeclarationSharedConstant DeclarationKind = "shared-constant"
	DeclarationFunction       DeclarationKind = "function"
)

// Declaration describes one statement hoisted by the pool
type Declaration struct {
	Index uint32          `msgpack:"index"`
	Name  string          `msgpack:"name"`
	Kind  DeclarationKind `msgpack:"kind"`
	Key   string          `msgpack:"key"`
}

// Manifest lists the declarations a pool hoisted for one compilation unit
type Manifest struct {
	Unit         string        `msgpack:"unit"`
	Declarations []Declaration `msgpack:"declarations"`
}

// Manifest describes the declarations hoisted so far. Statements added with
// AddStatement are not listed but count towards the indexes.
func (cp *ConstantPool) Manifest(unit string) (*Manifest, error) {
	m := &Manifest{
		Unit:         unit,
		Declarations: make([]Declaration, 0, len(cp.hoisted)),
	}
	for _, h := range cp.hoisted {
		index, err := safecast.Conv[uint32](h.index)
		if err != nil {
			return nil, fmt.Errorf("declaration %s: %w", h.name, err)
		}
		m.Declarations = append(m.Declarations, Declaration{
			Index: index,
			Name:  h.name,
			Kind:  h.kind,
			Key:   h.key,
		})
	}
	return m, nil
}

// EncodeMsgpack writes the manifest in MessagePack form
func (m *Manifest) EncodeMsgpack(w io.Writer) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest %s: %w", m.Unit, err)
	}
	return nil
}

// DecodeManifest reads a manifest written by EncodeMsgpack
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
