// Package manifest decodes descriptor lists supplied as data rather than Go calls.
//
// An upstream pipeline may describe the variables of a generated program in a
// JSON, YAML or TOML manifest, or as compact query-string specs on the command
// line. Entries are validated at this boundary and only then turned into
// ir descriptors, so malformed input is reported as an error instead of
// reaching the panicking constructors.
package manifest

import (
	"github.com/broady/tensorty/ir"
	"github.com/cockroachdb/errors"
)

// Entry kinds.
const (
	KindTensor = "tensor"
	KindScalar = "scalar"
	KindShape  = "shape"
	KindOther  = "other"
)

// Entry is the declarative form of one descriptor.
type Entry struct {
	// Kind selects the descriptor variant: tensor, scalar, shape or other.
	Kind string `json:"kind" yaml:"kind" toml:"kind" schema:"kind" validate:"required,oneof=tensor scalar shape other"`

	// Name is the variable name. Numeric tensor names are escaped on construction.
	Name string `json:"name" yaml:"name" toml:"name" schema:"name" validate:"required"`

	// Rank is the tensor rank (at least 1) or the shape array length.
	Rank int `json:"rank,omitempty" yaml:"rank,omitempty" toml:"rank,omitempty" schema:"rank" validate:"min=0"`

	// Elem is the tensor element kind: float, int or bool.
	Elem string `json:"elem,omitempty" yaml:"elem,omitempty" toml:"elem,omitempty" schema:"elem" validate:"omitempty,oneof=float int bool"`

	// Scalar is the scalar kind: int32, int64, float32, float64 or bool.
	Scalar string `json:"scalar,omitempty" yaml:"scalar,omitempty" toml:"scalar,omitempty" schema:"scalar" validate:"omitempty,oneof=int32 int64 float32 float64 bool"`

	// Shape is optional advisory tensor shape metadata.
	Shape []int `json:"shape,omitempty" yaml:"shape,omitempty" toml:"shape,omitempty" schema:"shape" validate:"omitempty,dive,min=0"`

	// Expr is the verbatim type expression of an other entry.
	Expr string `json:"expr,omitempty" yaml:"expr,omitempty" toml:"expr,omitempty" schema:"expr"`
}

// Manifest is an ordered list of entries.
type Manifest struct {
	Types []Entry `json:"types" yaml:"types" toml:"types"`
}

// Type validates e and builds the descriptor it describes.
func (e Entry) Type() (ir.Type, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	var t ir.Type
	if err := ir.Catch(func() { t = e.build() }); err != nil {
		return nil, errors.Wrapf(ErrInvalidEntry, "%s %q: %v", e.Kind, e.Name, err)
	}
	return t, nil
}

func (e Entry) build() ir.Type {
	switch e.Kind {
	case KindTensor:
		elem, err := ir.ParseElementKind(e.Elem)
		if err != nil {
			panic(errors.AssertionFailedf("unvalidated element kind %q", e.Elem))
		}
		return ir.NewTensor(e.Name, e.Rank, elem, e.Shape)
	case KindScalar:
		kind, err := ir.ParseScalarKind(e.Scalar)
		if err != nil {
			panic(errors.AssertionFailedf("unvalidated scalar kind %q", e.Scalar))
		}
		return ir.NewScalar(e.Name, kind)
	case KindShape:
		return ir.NewShape(e.Name, e.Rank)
	case KindOther:
		return ir.NewOther(e.Name, e.Expr)
	default:
		panic(errors.AssertionFailedf("unvalidated kind %q", e.Kind))
	}
}

// Descriptors validates every entry and builds the descriptors in order.
func (m *Manifest) Descriptors() ([]ir.Type, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	types := make([]ir.Type, 0, len(m.Types))
	for i, e := range m.Types {
		t, err := e.Type()
		if err != nil {
			return nil, errors.Wrapf(err, "types[%d]", i)
		}
		types = append(types, t)
	}
	return types, nil
}

// FromType returns the entry that describes t.
// Tensor names are reported in their escaped form.
func FromType(t ir.Type) Entry {
	e := Entry{Name: t.Name().String()}
	switch d := t.(type) {
	case ir.TensorDescriptor:
		e.Kind = KindTensor
		e.Rank = d.Rank()
		elem, _ := d.Elem().MarshalText()
		e.Elem = string(elem)
		if shape, ok := d.Shape(); ok {
			e.Shape = shape
		}
	case ir.ScalarDescriptor:
		e.Kind = KindScalar
		kind, _ := d.ScalarKind().MarshalText()
		e.Scalar = string(kind)
	case ir.ShapeDescriptor:
		e.Kind = KindShape
		e.Rank = d.Rank()
	case ir.OtherDescriptor:
		e.Kind = KindOther
		e.Expr = d.Expr()
	}
	return e
}
