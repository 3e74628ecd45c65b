// Package render turns terminal frames into the vertex records a GPU
// pipeline draws. It never touches the grid; its only input is a
// terminal.Frame.
package render

// Corner indices of a quad's vertices.
const (
	VertexTopLeft = iota
	VertexTopRight
	VertexBottomLeft
	VertexBottomRight
)

// Vertex is one corner of a glyph quad. The field order and types are the
// attribute layout the shaders consume; do not reorder.
type Vertex struct {
	// Position is the cell box corner in pixels, origin at the center of
	// the viewport.
	Position [2]float32
	// Adjust moves the corner from the cell box to the glyph box. It only
	// applies in the glyph pass.
	Adjust [2]float32
	// Tex is the atlas coordinate of the glyph.
	Tex [2]float32
	// Underline is the atlas coordinate of the decoration sprite.
	Underline [2]float32
	BgColor   [4]float32
	FgColor   [4]float32
	// HasColor is 1 for color (emoji, bitmap) glyphs that are sampled
	// rather than tinted.
	HasColor    float32
	Cursor      [2]float32
	CursorColor [4]float32
}

// PassPosition is the position the vertex shader uses. The background and
// line pass draws the cell box; the glyph pass adds the adjust offset.
func (v Vertex) PassPosition(bgAndLineLayer bool) [2]float32 {
	if bgAndLineLayer {
		return v.Position
	}
	return [2]float32{v.Position[0] + v.Adjust[0], v.Position[1] + v.Adjust[1]}
}

// Record is one quad: a cell, or the cursor overlay on top of one.
type Record struct {
	Row, Col int
	Vertices [4]Vertex
}

// quadIndices are the two triangles of a quad.
var quadIndices = [6]uint32{
	VertexTopLeft, VertexTopRight, VertexBottomLeft,
	VertexTopRight, VertexBottomLeft, VertexBottomRight,
}

// Indices returns the triangle list of the record, relative to its first
// vertex.
func (r Record) Indices() [6]uint32 {
	return quadIndices
}

// set writes the same value into one attribute of all four corners.
func (r *Record) set(f func(v *Vertex)) {
	for i := range r.Vertices {
		f(&r.Vertices[i])
	}
}

// rect is an axis aligned rectangle, or four edge offsets.
type rect struct {
	left, top, right, bottom float32
}

// setRect writes a rectangle into a per-corner attribute.
func (r *Record) setRect(field func(v *Vertex) *[2]float32, rc rect) {
	*field(&r.Vertices[VertexTopLeft]) = [2]float32{rc.left, rc.top}
	*field(&r.Vertices[VertexTopRight]) = [2]float32{rc.right, rc.top}
	*field(&r.Vertices[VertexBottomLeft]) = [2]float32{rc.left, rc.bottom}
	*field(&r.Vertices[VertexBottomRight]) = [2]float32{rc.right, rc.bottom}
}

func position(v *Vertex) *[2]float32  { return &v.Position }
func adjust(v *Vertex) *[2]float32    { return &v.Adjust }
func tex(v *Vertex) *[2]float32       { return &v.Tex }
func underline(v *Vertex) *[2]float32 { return &v.Underline }
func cursor(v *Vertex) *[2]float32    { return &v.Cursor }
