package ir

// ScalarKind identifies the primitive type of a scalar.
type ScalarKind int

const (
	ScalarInt32 ScalarKind = iota
	ScalarInt64
	ScalarFloat32
	ScalarFloat64
	ScalarBool
)

// Valid reports whether k is one of the defined scalar kinds.
func (k ScalarKind) Valid() bool {
	return k >= ScalarInt32 && k <= ScalarBool
}

// String returns the string representation of the scalar kind.
func (k ScalarKind) String() string {
	switch k {
	case ScalarInt32:
		return "Int32"
	case ScalarInt64:
		return "Int64"
	case ScalarFloat32:
		return "Float32"
	case ScalarFloat64:
		return "Float64"
	case ScalarBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

// ScalarDescriptor describes a zero-rank value of a primitive type.
type ScalarDescriptor struct {
	name Identifier
	kind ScalarKind
}

// Kind returns KindScalar.
func (ScalarDescriptor) Kind() Kind { return KindScalar }

// Name returns the scalar name.
func (d ScalarDescriptor) Name() Identifier { return d.name }

// ScalarKind returns the primitive type of the scalar.
func (d ScalarDescriptor) ScalarKind() ScalarKind { return d.kind }

func (ScalarDescriptor) sealed() {}

// NewScalar returns a ScalarDescriptor. The name is used as given.
// It panics if name is empty or kind is not a defined scalar kind.
func NewScalar(name string, kind ScalarKind) ScalarDescriptor {
	if name == "" {
		constructionPanic(KindScalar, "scalar of kind %s was passed with empty name", kind)
	}
	if !kind.Valid() {
		constructionPanic(KindScalar, "scalar %q has unknown scalar kind %d", name, int(kind))
	}
	return ScalarDescriptor{name: Identifier{name: name}, kind: kind}
}
