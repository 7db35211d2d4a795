package svgpath

import "math"

// Elliptical arc handling. Endpoint parameterization is converted to
// center form for flattening, and the ellipse shape is re-derived from
// its implicit conic when the scale is anisotropic.

// maxDx is the maximum radians a cubic spline is allowed to span when
// approximating an arc segment.
const maxDx float64 = math.Pi / 8

func (c ArcTo) transform(tr Transform, cur point) Command {
	end := point{c.X, c.Y}
	if c.Rel {
		end = point{cur.x + c.X, cur.y + c.Y}
	}
	rx, ry := correctedRadii(c.Rx, c.Ry, c.Rotation, cur, end)
	if rx == 0 || ry == 0 {
		// rendered as a straight line, radii only need scaling
		c.Rx = rx * math.Abs(tr.ScaleX)
		c.Ry = ry * math.Abs(tr.ScaleY)
	} else {
		c.Rx, c.Ry, c.Rotation = scaleEllipse(rx, ry, c.Rotation, tr.ScaleX, tr.ScaleY)
	}
	if tr.ScaleX*tr.ScaleY < 0 {
		c.Sweep = !c.Sweep
	}
	c.X, c.Y = tr.apply(c.X, c.Y, c.Rel)
	return c
}

// correctedRadii returns the radii the arc is actually rendered with:
// absolute values, grown minimally when the endpoints lie too far
// apart for the requested ellipse.
func correctedRadii(rx, ry, rotDeg float64, from, to point) (float64, float64) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return rx, ry
	}
	phi := rotDeg * math.Pi / 180
	cos, sin := math.Cos(phi), math.Sin(phi)
	dx, dy := (from.x-to.x)/2, (from.y-to.y)/2
	x1 := cos*dx + sin*dy
	y1 := -sin*dx + cos*dy
	lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}
	return rx, ry
}

// scaleEllipse maps an ellipse through the axis aligned scale (sx, sy)
// and re-extracts principal radii and rotation. The centered ellipse
// satisfies p^T Q p = 1 with Q = R diag(1/rx^2, 1/ry^2) R^T; under
// p' = L p the form becomes L^-T Q L^-1, whose eigenvectors are the
// new axes.
func scaleEllipse(rx, ry, rotDeg, sx, sy float64) (float64, float64, float64) {
	if math.Abs(sx) == math.Abs(sy) {
		// uniform scale keeps the shape; a single reflection mirrors
		// the axes instead
		if sx*sy < 0 {
			rotDeg = -rotDeg
		}
		return rx * math.Abs(sx), ry * math.Abs(sx), rotDeg
	}
	phi := rotDeg * math.Pi / 180
	cos, sin := math.Cos(phi), math.Sin(phi)
	a, b := 1/(rx*rx), 1/(ry*ry)
	q11 := (a*cos*cos + b*sin*sin) / (sx * sx)
	q22 := (a*sin*sin + b*cos*cos) / (sy * sy)
	q12 := (a - b) * sin * cos / (sx * sy)

	mean := (q11 + q22) / 2
	disc := math.Sqrt((q11-q22)*(q11-q22)/4 + q12*q12)
	l1, l2 := mean+disc, mean-disc
	// radius = 1/sqrt(eigenvalue), so the smaller eigenvalue carries
	// the major axis
	nrx, nry := 1/math.Sqrt(l2), 1/math.Sqrt(l1)
	var nphi float64
	switch {
	case q12 == 0 && q11 <= q22:
		nphi = 0
	case q12 == 0:
		nphi = math.Pi / 2
	default:
		nphi = math.Atan2(l2-q11, q12)
	}
	nphi = math.Mod(nphi, math.Pi)
	if nphi < 0 {
		nphi += math.Pi
	}
	return nrx, nry, nphi * 180 / math.Pi
}

// ellipseCenter converts an endpoint arc parameterization to center
// form. The arc coordinates must be absolute and its radii non zero.
// theta1 is the start parameter angle and delta the signed spanned
// angle, both in radians.
func ellipseCenter(from point, arc ArcTo) (cx, cy, rx, ry, theta1, delta float64) {
	rx, ry = correctedRadii(arc.Rx, arc.Ry, arc.Rotation, from, point{arc.X, arc.Y})
	phi := arc.Rotation * math.Pi / 180
	cos, sin := math.Cos(phi), math.Sin(phi)
	dx, dy := (from.x-arc.X)/2, (from.y-arc.Y)/2
	x1 := cos*dx + sin*dy
	y1 := -sin*dx + cos*dy

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	var co float64
	if den != 0 && num > 0 {
		co = math.Sqrt(num / den)
	}
	if arc.LargeArc == arc.Sweep {
		co = -co
	}
	cxp := co * rx * y1 / ry
	cyp := -co * ry * x1 / rx
	cx = cos*cxp - sin*cyp + (from.x+arc.X)/2
	cy = sin*cxp + cos*cyp + (from.y+arc.Y)/2

	theta1 = math.Atan2((y1-cyp)/ry, (x1-cxp)/rx)
	theta2 := math.Atan2((-y1-cyp)/ry, (-x1-cxp)/rx)
	delta = theta2 - theta1
	if !arc.Sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if arc.Sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	return cx, cy, rx, ry, theta1, delta
}

// Cubics approximates the arc by cubic Bézier segments, each spanning
// at most maxDx radians, by the method of L. Maisonobe, "Drawing an
// elliptical arc using polylines, quadratic or cubic Bezier curves",
// 2003. The receiver must hold absolute coordinates; (startX, startY)
// is the current point. A degenerate arc collapses to a single
// line-shaped segment.
func (c ArcTo) Cubics(startX, startY float64) []CubicTo {
	from := point{startX, startY}
	if c.Rx == 0 || c.Ry == 0 || (from.x == c.X && from.y == c.Y) {
		return []CubicTo{{X1: startX, Y1: startY, X2: c.X, Y2: c.Y, X: c.X, Y: c.Y}}
	}
	cx, cy, rx, ry, theta1, delta := ellipseCenter(from, c)
	phi := c.Rotation * math.Pi / 180
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	segs := int(math.Abs(delta)/maxDx) + 1
	dEta := delta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := startX, startY
	ldx, ldy := ellipsePrime(rx, ry, sinPhi, cosPhi, theta1)
	out := make([]CubicTo, 0, segs)
	for i := 1; i <= segs; i++ {
		eta := theta1 + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = c.X, c.Y // exact endpoint, no roundoff error
		} else {
			px, py = ellipsePointAt(rx, ry, sinPhi, cosPhi, eta, cx, cy)
		}
		ddx, ddy := ellipsePrime(rx, ry, sinPhi, cosPhi, eta)
		out = append(out, CubicTo{
			X1: lx + alpha*ldx, Y1: ly + alpha*ldy,
			X2: px - alpha*ddx, Y2: py - alpha*ddy,
			X:  px, Y: py,
		})
		lx, ly, ldx, ldy = px, py, ddx, ddy
	}
	return out
}

// ellipsePrime gives the tangent vector of the parameterized ellipse
// at angle eta.
func ellipsePrime(rx, ry, sinPhi, cosPhi, eta float64) (px, py float64) {
	ryCosEta := ry * math.Cos(eta)
	rxSinEta := rx * math.Sin(eta)
	px = -rxSinEta*cosPhi - ryCosEta*sinPhi
	py = -rxSinEta*sinPhi + ryCosEta*cosPhi
	return px, py
}

// ellipsePointAt gives the point of the parameterized ellipse at angle
// eta around center (cx, cy).
func ellipsePointAt(rx, ry, sinPhi, cosPhi, eta, cx, cy float64) (px, py float64) {
	rxCosEta := rx * math.Cos(eta)
	rySinEta := ry * math.Sin(eta)
	px = cx + rxCosEta*cosPhi - rySinEta*sinPhi
	py = cy + rxCosEta*sinPhi + rySinEta*cosPhi
	return px, py
}
