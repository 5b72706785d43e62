package manifest

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidEntry marks entries that fail validation.
	ErrInvalidEntry = errors.New("invalid type entry")

	// ErrUnknownFormat marks manifests whose encoding cannot be determined.
	ErrUnknownFormat = errors.New("unknown manifest format")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names the way they are spelled in manifests.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(entryStructLevel, Entry{})
	return v
}

// entryStructLevel enforces the rules that depend on the entry kind.
// Fields that belong to another kind are rejected rather than ignored.
func entryStructLevel(sl validator.StructLevel) {
	e := sl.Current().Interface().(Entry)
	switch e.Kind {
	case KindTensor:
		if e.Elem == "" {
			sl.ReportError(e.Elem, "elem", "Elem", "required_for_tensor", "")
		}
		if e.Rank == 0 {
			sl.ReportError(e.Rank, "rank", "Rank", "tensor_rank", "")
		}
	case KindScalar:
		if e.Scalar == "" {
			sl.ReportError(e.Scalar, "scalar", "Scalar", "required_for_scalar", "")
		}
	case KindShape, KindOther:
	default:
		// Unknown kinds are reported by the oneof rule.
		return
	}

	if e.Kind != KindTensor && e.Kind != KindShape && e.Rank != 0 {
		sl.ReportError(e.Rank, "rank", "Rank", "rank_only", "")
	}
	if e.Kind != KindTensor && e.Elem != "" {
		sl.ReportError(e.Elem, "elem", "Elem", "tensor_only", "")
	}
	if e.Kind != KindTensor && e.Shape != nil {
		sl.ReportError(e.Shape, "shape", "Shape", "tensor_only", "")
	}
	if e.Kind != KindScalar && e.Scalar != "" {
		sl.ReportError(e.Scalar, "scalar", "Scalar", "scalar_only", "")
	}
	if e.Kind != KindOther && e.Expr != "" {
		sl.ReportError(e.Expr, "expr", "Expr", "other_only", "")
	}
}

// Validate reports every rule e violates.
// The returned error matches ErrInvalidEntry and carries hints for the
// rules that have an obvious fix.
func (e Entry) Validate() error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate entry")
	}

	problems := make([]string, 0, len(verrs))
	var hints []string
	for _, fe := range verrs {
		msg, hint := describe(fe)
		problems = append(problems, msg)
		if hint != "" {
			hints = append(hints, hint)
		}
	}

	label := e.Kind
	if label == "" {
		label = "entry"
	}
	out := errors.Wrapf(ErrInvalidEntry, "%s %q: %s", label, e.Name, strings.Join(problems, "; "))
	for _, h := range hints {
		out = errors.WithHint(out, h)
	}
	return out
}

func describe(fe validator.FieldError) (msg, hint string) {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required", ""
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value())), ""
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value()), ""
	case "required_for_tensor":
		return field + " is required for tensors", "set elem to one of float, int or bool"
	case "required_for_scalar":
		return field + " is required for scalars", "set scalar to one of int32, int64, float32, float64 or bool"
	case "tensor_rank":
		return "tensor rank must be at least 1", "zero-rank values are scalars: use kind scalar instead"
	case "tensor_only":
		return field + " is only valid for tensors", ""
	case "scalar_only":
		return field + " is only valid for scalars", ""
	case "other_only":
		return field + " is only valid for other entries", ""
	case "rank_only":
		return field + " is only valid for tensors and shapes", ""
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag()), ""
	}
}

// ValidationError lists every invalid entry of a manifest.
type ValidationError struct {
	// Errs holds one error per invalid entry, in manifest order.
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d invalid entries:\n  %s", len(e.Errs), strings.Join(msgs, "\n  "))
}

// Unwrap returns the per-entry errors.
func (e *ValidationError) Unwrap() []error { return e.Errs }

// Validate checks every entry. A manifest with a single invalid entry
// returns that entry's error; more than one returns a *ValidationError.
func (m *Manifest) Validate() error {
	var errs []error
	for i, e := range m.Types {
		if err := e.Validate(); err != nil {
			errs = append(errs, errors.Wrapf(err, "types[%d]", i))
		}
	}
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &ValidationError{Errs: errs}
	}
}
