package ir

import "fmt"

// ElementKind identifies the element category of a tensor.
type ElementKind int

const (
	ElementFloat ElementKind = iota
	ElementInt
	ElementBool
)

// Valid reports whether k is one of the defined element kinds.
func (k ElementKind) Valid() bool {
	return k >= ElementFloat && k <= ElementBool
}

// String returns the string representation of the element kind.
func (k ElementKind) String() string {
	switch k {
	case ElementFloat:
		return "Float"
	case ElementInt:
		return "Int"
	case ElementBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

// TensorDescriptor describes a tensor variable of fixed rank.
//
// The optional shape is advisory metadata for downstream optimization.
// It never participates in rendering.
type TensorDescriptor struct {
	name     Identifier
	rank     int
	elem     ElementKind
	shape    []int
	hasShape bool
}

// Kind returns KindTensor.
func (TensorDescriptor) Kind() Kind { return KindTensor }

// Name returns the normalized tensor name.
func (d TensorDescriptor) Name() Identifier { return d.name }

// Rank returns the number of dimensions. Always at least 1.
func (d TensorDescriptor) Rank() int { return d.rank }

// Elem returns the element kind.
func (d TensorDescriptor) Elem() ElementKind { return d.elem }

// Shape returns a copy of the advisory shape and whether one was supplied.
func (d TensorDescriptor) Shape() ([]int, bool) {
	if !d.hasShape {
		return nil, false
	}
	return append([]int(nil), d.shape...), true
}

func (TensorDescriptor) sealed() {}

// FormatTensorName rewrites purely numeric names by prefixing an underscore.
// Imported graphs often name tensors by node index, which is not a valid
// identifier in the target language.
func FormatTensorName(raw string) string {
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return raw
		}
	}
	return "_" + raw
}

// NewTensor returns a TensorDescriptor.
// A nil shape means no shape is known.
//
// NewTensor panics if name is empty, elem is not a defined element kind,
// or rank is less than 1; zero-rank values must be described with NewScalar.
func NewTensor(name string, rank int, elem ElementKind, shape []int) TensorDescriptor {
	if name == "" {
		constructionPanic(KindTensor, "tensor of kind %s with shape %s was passed with empty name", elem, formatShape(shape))
	}
	if !elem.Valid() {
		constructionPanic(KindTensor, "tensor %q has unknown element kind %d", name, int(elem))
	}
	formatted := FormatTensorName(name)
	if rank == 0 {
		constructionPanic(KindTensor, "tensor %q of kind %s with shape %s created with rank 0, use a scalar instead",
			name, elem, formatShape(shape))
	}
	if rank < 0 {
		constructionPanic(KindTensor, "tensor %q has invalid rank %d", name, rank)
	}
	d := TensorDescriptor{
		name: Identifier{name: formatted},
		rank: rank,
		elem: elem,
	}
	if shape != nil {
		d.shape = append(make([]int, 0, len(shape)), shape...)
		d.hasShape = true
	}
	return d
}

// Convenience constructors for each element kind.

// FloatTensor returns a float TensorDescriptor without shape information.
func FloatTensor(name string, rank int) TensorDescriptor {
	return FloatTensorWithShape(name, rank, nil)
}

// FloatTensorWithShape returns a float TensorDescriptor.
func FloatTensorWithShape(name string, rank int, shape []int) TensorDescriptor {
	return NewTensor(name, rank, ElementFloat, shape)
}

// IntTensor returns an int TensorDescriptor without shape information.
func IntTensor(name string, rank int) TensorDescriptor {
	return IntTensorWithShape(name, rank, nil)
}

// IntTensorWithShape returns an int TensorDescriptor.
func IntTensorWithShape(name string, rank int, shape []int) TensorDescriptor {
	return NewTensor(name, rank, ElementInt, shape)
}

// BoolTensor returns a bool TensorDescriptor without shape information.
func BoolTensor(name string, rank int) TensorDescriptor {
	return BoolTensorWithShape(name, rank, nil)
}

// BoolTensorWithShape returns a bool TensorDescriptor.
func BoolTensorWithShape(name string, rank int, shape []int) TensorDescriptor {
	return NewTensor(name, rank, ElementBool, shape)
}

func formatShape(shape []int) string {
	if shape == nil {
		return "None"
	}
	return fmt.Sprint(shape)
}
