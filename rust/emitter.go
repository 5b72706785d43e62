// Package rust renders ir descriptors as Rust type expressions for Burn programs.
package rust

import (
	"strconv"
	"strings"

	"github.com/broady/tensorty/ir"
)

// Backend is the generic backend parameter every tensor expression carries.
const Backend = "B"

// Static scalar type table, indexed by ir.ScalarKind.
var scalarTypes = [...]string{
	ir.ScalarInt32:   "i32",
	ir.ScalarInt64:   "i64",
	ir.ScalarFloat32: "f32",
	ir.ScalarFloat64: "f64",
	ir.ScalarBool:    "bool",
}

// Emitter renders descriptors with a fixed backend token.
// The zero value uses Backend.
type Emitter struct {
	backend string
}

// DefaultEmitter renders with Backend.
var DefaultEmitter = Emitter{backend: Backend}

// NewEmitter returns an Emitter using backend as the tensor backend token.
// The token is spliced verbatim; an empty backend selects Backend.
func NewEmitter(backend string) Emitter {
	if backend == "" {
		backend = Backend
	}
	return Emitter{backend: backend}
}

// BackendToken returns the token placed in tensor expressions.
func (e Emitter) BackendToken() string {
	if e.backend == "" {
		return Backend
	}
	return e.backend
}

// Render returns the type expression for t using DefaultEmitter.
func Render(t ir.Type) string { return DefaultEmitter.Render(t) }

// Tokens returns the type expression for t as tokens using DefaultEmitter.
func Tokens(t ir.Type) []string { return DefaultEmitter.Tokens(t) }

// Field returns "name: expr" using DefaultEmitter.
func Field(t ir.Type) string { return DefaultEmitter.Field(t) }

// Render returns the type expression for t.
func (e Emitter) Render(t ir.Type) string {
	switch d := t.(type) {
	case ir.OtherDescriptor:
		return d.Expr()
	case ir.TensorDescriptor, ir.ScalarDescriptor, ir.ShapeDescriptor:
		return join(e.Tokens(d))
	default:
		panic("rust: unknown descriptor type " + t.Kind().String())
	}
}

// Tokens returns the type expression for t as a token sequence.
// An Other descriptor yields its expression as a single opaque token,
// or no tokens when the expression is empty.
func (e Emitter) Tokens(t ir.Type) []string {
	switch d := t.(type) {
	case ir.TensorDescriptor:
		return e.tensorTokens(d)
	case ir.ScalarDescriptor:
		return []string{scalarType(d.ScalarKind())}
	case ir.ShapeDescriptor:
		return []string{"[", "usize", ";", strconv.Itoa(d.Rank()), "]"}
	case ir.OtherDescriptor:
		if d.Expr() == "" {
			return nil
		}
		return []string{d.Expr()}
	default:
		panic("rust: unknown descriptor type " + t.Kind().String())
	}
}

// Field returns the "name: expr" form used for parameters and struct fields.
func (e Emitter) Field(t ir.Type) string {
	return t.Name().String() + ": " + e.Render(t)
}

func (e Emitter) tensorTokens(d ir.TensorDescriptor) []string {
	toks := []string{"Tensor", "<", e.BackendToken(), ",", strconv.Itoa(d.Rank())}
	switch d.Elem() {
	case ir.ElementFloat:
	case ir.ElementInt:
		toks = append(toks, ",", "Int")
	case ir.ElementBool:
		toks = append(toks, ",", "Bool")
	default:
		panic("rust: unknown tensor element kind " + d.Elem().String())
	}
	return append(toks, ">")
}

func scalarType(k ir.ScalarKind) string {
	if k < 0 || int(k) >= len(scalarTypes) {
		panic("rust: unknown scalar kind " + k.String())
	}
	return scalarTypes[k]
}

// join lays tokens out the way rustfmt prints type expressions:
// no space around angle or square brackets, a space after ',' and ';'.
func join(toks []string) string {
	var b strings.Builder
	for _, tok := range toks {
		switch tok {
		case ",", ";":
			b.WriteString(tok)
			b.WriteByte(' ')
		default:
			b.WriteString(tok)
		}
	}
	return b.String()
}
