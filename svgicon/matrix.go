package svgicon

import (
	"errors"
	"math"
	"strings"

	"github.com/iconfit/iconfit/svgpath"
)

var errParamMismatch = errors.New("param mismatch")

// Matrix2D is an affine transform in SVG order,
// x' = A x + C y + E and y' = B x + D y + F.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the no-op transform.
var Identity = Matrix2D{A: 1, D: 1}

// Mult returns a times b.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate appends a translation to a.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, D: 1, E: x, F: y})
}

// Scale appends a scale to a.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: x, D: y})
}

// Rotate appends a rotation about the origin, in radians.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return a.Mult(Matrix2D{A: cos, B: sin, C: -sin, D: cos})
}

// SkewX appends an x axis skew, in radians.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, C: math.Tan(theta), D: 1})
}

// SkewY appends a y axis skew, in radians.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, B: math.Tan(theta), D: 1})
}

// frameMatrix is frameTransform expressed as an affine matrix.
func frameMatrix(f SourceFrame, size float64) Matrix2D {
	sx, sy := size/f.Width, size/f.Height
	return Matrix2D{A: sx, D: sy, E: -sx * f.MinX, F: -sy * f.MinY}
}

// parseTransformList evaluates a transform attribute into one matrix,
// composing the listed transforms left to right.
func parseTransformList(v string) (Matrix2D, error) {
	m := Identity
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		name, args, ok := strings.Cut(t, "(")
		if !ok {
			return m, errParamMismatch // badly formed transformation
		}
		pts, err := svgpath.ParseNumberList(args)
		if err != nil {
			return m, err
		}
		m, err = readTransform(m, strings.ToLower(strings.TrimSpace(name)), pts)
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func readTransform(m Matrix2D, name string, pts []float64) (Matrix2D, error) {
	switch name {
	case "matrix":
		if len(pts) != 6 {
			return m, errParamMismatch
		}
		m = m.Mult(Matrix2D{A: pts[0], B: pts[1], C: pts[2], D: pts[3], E: pts[4], F: pts[5]})
	case "translate":
		switch len(pts) {
		case 1:
			m = m.Translate(pts[0], 0)
		case 2:
			m = m.Translate(pts[0], pts[1])
		default:
			return m, errParamMismatch
		}
	case "scale":
		switch len(pts) {
		case 1:
			m = m.Scale(pts[0], pts[0])
		case 2:
			m = m.Scale(pts[0], pts[1])
		default:
			return m, errParamMismatch
		}
	case "rotate":
		switch len(pts) {
		case 1:
			m = m.Rotate(pts[0] * math.Pi / 180)
		case 3:
			m = m.Translate(pts[1], pts[2]).
				Rotate(pts[0] * math.Pi / 180).
				Translate(-pts[1], -pts[2])
		default:
			return m, errParamMismatch
		}
	case "skewx":
		if len(pts) != 1 {
			return m, errParamMismatch
		}
		m = m.SkewX(pts[0] * math.Pi / 180)
	case "skewy":
		if len(pts) != 1 {
			return m, errParamMismatch
		}
		m = m.SkewY(pts[0] * math.Pi / 180)
	default:
		return m, errParamMismatch
	}
	return m, nil
}

// matrixString serializes m as a matrix() transform value.
func matrixString(m Matrix2D) string {
	var b strings.Builder
	b.WriteString("matrix(")
	for i, v := range [6]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(svgpath.FormatCoord(v))
	}
	b.WriteByte(')')
	return b.String()
}
