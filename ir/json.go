package ir

import (
	"encoding/json"
	"fmt"
)

// JSON serialization support for descriptors.
// All descriptors include a "kind" field for type discrimination.

var elementKindNames = map[ElementKind]string{
	ElementFloat: "float",
	ElementInt:   "int",
	ElementBool:  "bool",
}

var scalarKindNames = map[ScalarKind]string{
	ScalarInt32:   "int32",
	ScalarInt64:   "int64",
	ScalarFloat32: "float32",
	ScalarFloat64: "float64",
	ScalarBool:    "bool",
}

// ParseElementKind parses the lower-case element kind name ("float", "int", "bool").
func ParseElementKind(s string) (ElementKind, error) {
	for k, name := range elementKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown element kind %q", s)
}

// ParseScalarKind parses the lower-case scalar kind name ("int32", "float64", ...).
func ParseScalarKind(s string) (ScalarKind, error) {
	for k, name := range scalarKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown scalar kind %q", s)
}

// MarshalText implements encoding.TextMarshaler for ElementKind.
func (k ElementKind) MarshalText() ([]byte, error) {
	name, ok := elementKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown element kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for ElementKind.
func (k *ElementKind) UnmarshalText(text []byte) error {
	v, err := ParseElementKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MarshalText implements encoding.TextMarshaler for ScalarKind.
func (k ScalarKind) MarshalText() ([]byte, error) {
	name, ok := scalarKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown scalar kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for ScalarKind.
func (k *ScalarKind) UnmarshalText(text []byte) error {
	v, err := ParseScalarKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MarshalJSON implements json.Marshaler for Identifier.
func (id Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.name)
}

// MarshalJSON implements json.Marshaler for TensorDescriptor.
func (d TensorDescriptor) MarshalJSON() ([]byte, error) {
	shape, _ := d.Shape()
	return json.Marshal(&struct {
		Kind  string      `json:"kind"`
		Name  Identifier  `json:"name"`
		Rank  int         `json:"rank"`
		Elem  ElementKind `json:"elem"`
		Shape []int       `json:"shape,omitempty"`
	}{
		Kind:  "tensor",
		Name:  d.name,
		Rank:  d.rank,
		Elem:  d.elem,
		Shape: shape,
	})
}

// MarshalJSON implements json.Marshaler for ScalarDescriptor.
func (d ScalarDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind   string     `json:"kind"`
		Name   Identifier `json:"name"`
		Scalar ScalarKind `json:"scalar"`
	}{
		Kind:   "scalar",
		Name:   d.name,
		Scalar: d.kind,
	})
}

// MarshalJSON implements json.Marshaler for ShapeDescriptor.
func (d ShapeDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string     `json:"kind"`
		Name Identifier `json:"name"`
		Rank int        `json:"rank"`
	}{
		Kind: "shape",
		Name: d.name,
		Rank: d.rank,
	})
}

// MarshalJSON implements json.Marshaler for OtherDescriptor.
func (d OtherDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string     `json:"kind"`
		Name Identifier `json:"name"`
		Expr string     `json:"expr"`
	}{
		Kind: "other",
		Name: d.name,
		Expr: d.expr,
	})
}
