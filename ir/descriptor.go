package ir

// Kind identifies the variant of a Type.
type Kind int

const (
	KindInvalid Kind = iota
	KindTensor       // Multi-dimensional tensor
	KindScalar       // Primitive scalar value
	KindShape        // Fixed-size array of dimension sizes
	KindOther        // Opaque target language type expression
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindTensor:
		return "Tensor"
	case KindScalar:
		return "Scalar"
	case KindShape:
		return "Shape"
	case KindOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Type is implemented by the four descriptor variants:
// TensorDescriptor, ScalarDescriptor, ShapeDescriptor and OtherDescriptor.
type Type interface {
	// Kind returns the variant tag for type switching.
	Kind() Kind

	// Name returns the descriptor's variable name.
	Name() Identifier

	// Ensure only types in this package can implement Type.
	sealed()
}

// NameOf returns the name of t regardless of its variant.
func NameOf(t Type) Identifier {
	switch d := t.(type) {
	case TensorDescriptor:
		return d.name
	case ScalarDescriptor:
		return d.name
	case ShapeDescriptor:
		return d.name
	case OtherDescriptor:
		return d.name
	default:
		panic("ir: unknown Type variant")
	}
}
