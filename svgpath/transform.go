package svgpath

// Transform re-expresses source coordinates in a target frame:
// point' = (point - translate) * scale, translate first.
type Transform struct {
	ScaleX, ScaleY         float64
	TranslateX, TranslateY float64
}

// Identity leaves coordinates unchanged.
var Identity = Transform{ScaleX: 1, ScaleY: 1}

// Apply maps one absolute point into the target frame.
func (tr Transform) Apply(x, y float64) (float64, float64) {
	return (x - tr.TranslateX) * tr.ScaleX, (y - tr.TranslateY) * tr.ScaleY
}

// apply maps one coordinate pair. A relative displacement has no
// absolute origin to subtract, so it is only scaled.
func (tr Transform) apply(x, y float64, rel bool) (float64, float64) {
	if rel {
		return x * tr.ScaleX, y * tr.ScaleY
	}
	return tr.Apply(x, y)
}

func (c MoveTo) transform(tr Transform, _ point) Command {
	c.X, c.Y = tr.apply(c.X, c.Y, c.Rel)
	return c
}

func (c LineTo) transform(tr Transform, _ point) Command {
	c.X, c.Y = tr.apply(c.X, c.Y, c.Rel)
	return c
}

func (c HLineTo) transform(tr Transform, _ point) Command {
	if c.Rel {
		c.X *= tr.ScaleX
	} else {
		c.X = (c.X - tr.TranslateX) * tr.ScaleX
	}
	return c
}

func (c VLineTo) transform(tr Transform, _ point) Command {
	if c.Rel {
		c.Y *= tr.ScaleY
	} else {
		c.Y = (c.Y - tr.TranslateY) * tr.ScaleY
	}
	return c
}

func (c CubicTo) transform(tr Transform, _ point) Command {
	c.X1, c.Y1 = tr.apply(c.X1, c.Y1, c.Rel)
	c.X2, c.Y2 = tr.apply(c.X2, c.Y2, c.Rel)
	c.X, c.Y = tr.apply(c.X, c.Y, c.Rel)
	return c
}

func (c SmoothCubicTo) transform(tr Transform, _ point) Command {
	c.X2, c.Y2 = tr.apply(c.X2, c.Y2, c.Rel)
	c.X, c.Y = tr.apply(c.X, c.Y, c.Rel)
	return c
}

func (c QuadTo) transform(tr Transform, _ point) Command {
	c.X1, c.Y1 = tr.apply(c.X1, c.Y1, c.Rel)
	c.X, c.Y = tr.apply(c.X, c.Y, c.Rel)
	return c
}

func (c SmoothQuadTo) transform(tr Transform, _ point) Command {
	c.X, c.Y = tr.apply(c.X, c.Y, c.Rel)
	return c
}

func (c Close) transform(Transform, point) Command { return c }

type point struct{ x, y float64 }

// advance returns the current point and subpath start point after
// executing c, both in the source frame. The transformer threads this
// through the command sequence for the arc rules.
func advance(c Command, cur, start point) (point, point) {
	abs := func(x, y float64, rel bool) point {
		if rel {
			return point{cur.x + x, cur.y + y}
		}
		return point{x, y}
	}
	switch c := c.(type) {
	case MoveTo:
		cur = abs(c.X, c.Y, c.Rel)
		start = cur
	case LineTo:
		cur = abs(c.X, c.Y, c.Rel)
	case HLineTo:
		if c.Rel {
			cur.x += c.X
		} else {
			cur.x = c.X
		}
	case VLineTo:
		if c.Rel {
			cur.y += c.Y
		} else {
			cur.y = c.Y
		}
	case CubicTo:
		cur = abs(c.X, c.Y, c.Rel)
	case SmoothCubicTo:
		cur = abs(c.X, c.Y, c.Rel)
	case QuadTo:
		cur = abs(c.X, c.Y, c.Rel)
	case SmoothQuadTo:
		cur = abs(c.X, c.Y, c.Rel)
	case ArcTo:
		cur = abs(c.X, c.Y, c.Rel)
	case Close:
		cur = start
	}
	return cur, start
}
