package ir

// OtherDescriptor carries a type the other variants cannot express.
// Expr is an opaque target language type expression, passed through verbatim.
type OtherDescriptor struct {
	name Identifier
	expr string
}

// Kind returns KindOther.
func (OtherDescriptor) Kind() Kind { return KindOther }

// Name returns the descriptor name.
func (d OtherDescriptor) Name() Identifier { return d.name }

// Expr returns the type expression exactly as supplied.
func (d OtherDescriptor) Expr() string { return d.expr }

func (OtherDescriptor) sealed() {}

// NewOther returns an OtherDescriptor. Neither name nor expr is rewritten.
// It panics if name is empty.
func NewOther(name string, expr string) OtherDescriptor {
	if name == "" {
		constructionPanic(KindOther, "other type with expression %q was passed with empty name", expr)
	}
	return OtherDescriptor{name: Identifier{name: name}, expr: expr}
}
