package glyphbrush

import "github.com/gogpu/glyphbrush/layout"

// QueueBuffer accumulates the glyphs of every section queued during a
// frame. It is drained completely by each draw.
type QueueBuffer struct {
	glyphs   []layout.PositionedGlyph
	sections int
}

// Push appends the glyphs of one section.
func (q *QueueBuffer) Push(glyphs []layout.PositionedGlyph) {
	q.glyphs = append(q.glyphs, glyphs...)
	q.sections++
}

// Glyphs returns the queued glyphs in queue order. The slice is reused
// after Reset.
func (q *QueueBuffer) Glyphs() []layout.PositionedGlyph { return q.glyphs }

// Len returns the number of queued glyphs.
func (q *QueueBuffer) Len() int { return len(q.glyphs) }

// Sections returns the number of queued sections.
func (q *QueueBuffer) Sections() int { return q.sections }

// Reset empties the buffer and keeps its capacity.
func (q *QueueBuffer) Reset() {
	q.glyphs = q.glyphs[:0]
	q.sections = 0
}
