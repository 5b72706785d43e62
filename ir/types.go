// Package ir defines the descriptor model for values held by generated tensor programs.
// Descriptors are immutable values built by validating constructors; generators
// render them into target language type expressions.
package ir

import "fmt"

// Identifier is a validated variable or parameter name for generated code.
// It is never empty for an Identifier returned by NewIdentifier.
type Identifier struct {
	name string
}

// NewIdentifier returns an Identifier for raw.
// It panics if raw is empty.
func NewIdentifier(raw string) Identifier {
	if raw == "" {
		panic(&ConstructionError{Message: "identifier was passed with empty name"})
	}
	return Identifier{name: raw}
}

// String returns the identifier text.
func (id Identifier) String() string { return id.name }

// IsZero returns true if the identifier was not built by NewIdentifier.
func (id Identifier) IsZero() bool { return id.name == "" }

// Warning represents a non-fatal issue found while checking or rendering descriptors.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// TypeName is the descriptor name that triggered the warning, if applicable.
	TypeName string
}

// String formats the warning for terminal output.
func (w Warning) String() string {
	if w.TypeName == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", w.Code, w.Message, w.TypeName)
}

// ConstructionError is the panic value raised by descriptor constructors
// when an invariant is violated. It signals a defect in the caller.
type ConstructionError struct {
	// Kind is the descriptor kind being constructed.
	Kind Kind

	// Message describes the violated invariant.
	Message string
}

func (e *ConstructionError) Error() string { return e.Message }

// Catch runs fn and converts a *ConstructionError panic into a returned error.
// Any other panic is propagated unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*ConstructionError)
			if !ok {
				panic(r)
			}
			err = ce
		}
	}()
	fn()
	return nil
}

func constructionPanic(kind Kind, format string, args ...any) {
	panic(&ConstructionError{Kind: kind, Message: fmt.Sprintf(format, args...)})
}
