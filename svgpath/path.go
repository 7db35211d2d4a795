// Implements the SVG path data mini-language: an abstract
// representation of the drawing commands found in a `d` attribute,
// which can be parsed, transformed and serialized back to text.
package svgpath

// Command groups the different SVG path commands.
// Uppercase letters map to absolute commands, lowercase to relative ones.
type Command interface {
	// transform maps the operands into the target frame. `cur` is the
	// current point in the source frame, needed by arcs.
	transform(tr Transform, cur point) Command
	// appendData appends the command letter and its operands to dst.
	appendData(dst []byte) []byte
}

// MoveTo starts a new subpath at (X, Y).
type MoveTo struct {
	Rel  bool
	X, Y float64
}

// LineTo draws a line to (X, Y).
type LineTo struct {
	Rel  bool
	X, Y float64
}

// HLineTo draws a horizontal line to X.
type HLineTo struct {
	Rel bool
	X   float64
}

// VLineTo draws a vertical line to Y.
type VLineTo struct {
	Rel bool
	Y   float64
}

// CubicTo draws a cubic Bézier curve with control points
// (X1, Y1), (X2, Y2) ending at (X, Y).
type CubicTo struct {
	Rel            bool
	X1, Y1, X2, Y2 float64
	X, Y           float64
}

// SmoothCubicTo draws a cubic Bézier curve whose first control point
// is the reflection of the previous one, with second control point
// (X2, Y2), ending at (X, Y).
type SmoothCubicTo struct {
	Rel    bool
	X2, Y2 float64
	X, Y   float64
}

// QuadTo draws a quadratic Bézier curve with control point (X1, Y1)
// ending at (X, Y).
type QuadTo struct {
	Rel    bool
	X1, Y1 float64
	X, Y   float64
}

// SmoothQuadTo draws a quadratic Bézier curve whose control point
// is the reflection of the previous one, ending at (X, Y).
type SmoothQuadTo struct {
	Rel  bool
	X, Y float64
}

// ArcTo draws an elliptical arc to (X, Y). Rotation is the x-axis
// rotation in degrees; LargeArc and Sweep select among the four
// candidate arcs.
type ArcTo struct {
	Rel      bool
	Rx, Ry   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	X, Y     float64
}

// Close closes the current subpath back to its start point.
// Z and z are equivalent; Rel only preserves the source spelling.
type Close struct {
	Rel bool
}

func (c MoveTo) appendData(dst []byte) []byte {
	dst = append(dst, cmdLetter('M', c.Rel))
	return appendCoords(dst, c.X, c.Y)
}

func (c LineTo) appendData(dst []byte) []byte {
	dst = append(dst, cmdLetter('L', c.Rel))
	return appendCoords(dst, c.X, c.Y)
}

func (c HLineTo) appendData(dst []byte) []byte {
	dst = append(dst, cmdLetter('H', c.Rel))
	return appendCoords(dst, c.X)
}

func (c VLineTo) appendData(dst []byte) []byte {
	dst = append(dst, cmdLetter('V', c.Rel))
	return appendCoords(dst, c.Y)
}

func (c CubicTo) appendData(dst []byte) []byte {
	dst = append(dst, cmdLetter('C', c.Rel))
	return appendCoords(dst, c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y)
}

func (c SmoothCubicTo) appendData(dst []byte) []byte {
	dst = append(dst, cmdLetter('S', c.Rel))
	return appendCoords(dst, c.X2, c.Y2, c.X, c.Y)
}

func (c QuadTo) appendData(dst []byte) []byte {
	dst = append(dst, cmdLetter('Q', c.Rel))
	return appendCoords(dst, c.X1, c.Y1, c.X, c.Y)
}

func (c SmoothQuadTo) appendData(dst []byte) []byte {
	dst = append(dst, cmdLetter('T', c.Rel))
	return appendCoords(dst, c.X, c.Y)
}

func (c ArcTo) appendData(dst []byte) []byte {
	dst = append(dst, cmdLetter('A', c.Rel))
	dst = appendCoords(dst, c.Rx, c.Ry, c.Rotation)
	dst = appendFlag(dst, c.LargeArc)
	dst = appendFlag(dst, c.Sweep)
	return appendCoords(dst, c.X, c.Y)
}

func (c Close) appendData(dst []byte) []byte {
	return append(dst, cmdLetter('Z', c.Rel))
}

// cmdLetter lowercases the command letter for relative commands.
func cmdLetter(upper byte, rel bool) byte {
	if rel {
		return upper + 'a' - 'A'
	}
	return upper
}

// Path describes the ordered command sequence of one `d` attribute.
type Path []Command

// Data serializes the path back to valid path data syntax, with the
// minimal separators: none after a command letter or before a signed
// number, a single space otherwise. Numbers are written in shortest
// decimal form, without trailing zeros or exponents.
func (p Path) Data() string {
	var dst []byte
	for _, c := range p {
		dst = c.appendData(dst)
	}
	return string(dst)
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.Data()
}

// Transform returns a new Path with every coordinate re-expressed in
// the target frame. Command count, variants and relativity are
// preserved; this never fails.
func (p Path) Transform(tr Transform) Path {
	out := make(Path, len(p))
	cur, start := point{}, point{}
	for i, c := range p {
		out[i] = c.transform(tr, cur)
		cur, start = advance(c, cur, start)
	}
	return out
}
