package ir

// ShapeDescriptor describes a fixed-size array of dimension sizes.
type ShapeDescriptor struct {
	name Identifier
	rank int
}

// Kind returns KindShape.
func (ShapeDescriptor) Kind() Kind { return KindShape }

// Name returns the shape name.
func (d ShapeDescriptor) Name() Identifier { return d.name }

// Rank returns the array length.
func (d ShapeDescriptor) Rank() int { return d.rank }

func (ShapeDescriptor) sealed() {}

// NewShape returns a ShapeDescriptor. The name is used as given.
// It panics if name is empty or rank is negative.
func NewShape(name string, rank int) ShapeDescriptor {
	if name == "" {
		constructionPanic(KindShape, "shape was passed with empty name")
	}
	if rank < 0 {
		constructionPanic(KindShape, "shape %q has invalid rank %d", name, rank)
	}
	return ShapeDescriptor{name: Identifier{name: name}, rank: rank}
}
