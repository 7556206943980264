package glyphbrush

// ActionKind tells the consumer what to do with the result of DrawQueued.
type ActionKind uint8

const (
	// ActionDraw means Vertices replaces the previous vertex buffer.
	ActionDraw ActionKind = iota

	// ActionRedraw means nothing changed: keep drawing the last buffer
	// received with ActionDraw.
	ActionRedraw
)

// String returns the string representation of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionDraw:
		return "Draw"
	case ActionRedraw:
		return "Redraw"
	default:
		return "Unknown"
	}
}

// BrushAction is the result of a draw cycle.
//
// Consumers must retain the vertices of the last ActionDraw themselves;
// an ActionRedraw carries no vertices.
type BrushAction struct {
	Kind     ActionKind
	Vertices []Vertex
}

// IsRedraw reports whether the previous vertices are still valid.
func (a BrushAction) IsRedraw() bool { return a.Kind == ActionRedraw }
