package svgicon

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iconfit/iconfit/svgpath"
)

// rewriteFunc re-expresses the geometry attributes of one element in
// the target frame. Implementations validate every attribute before
// emitting edits, so a failing element stays exactly as authored.
type rewriteFunc func(rw *rewriter, el element) error

var rewriteFuncs = map[string]rewriteFunc{
	"path":           pathF,
	"rect":           rectF,
	"circle":         circleF,
	"ellipse":        ellipseF,
	"line":           lineF,
	"polyline":       polylineF,
	"polygon":        polygonF,
	"use":            useF,
	"linearGradient": gradientF, // gradientF handles both flavors
	"radialGradient": gradientF,
}

var errCircleScale = errors.New("circle needs a uniform scale")

// parseCoord reads a plain numeric attribute value. Lengths carrying
// units are not usable as geometry and fail here.
func parseCoord(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid coordinate %q", v)
	}
	return f, nil
}

func pathF(rw *rewriter, el element) error {
	a := el.attr("d")
	if a == nil {
		return nil
	}
	path, err := svgpath.Parse(rw.doc[a.valStart:a.valEnd])
	if err != nil {
		return err
	}
	rw.replace(a, path.Transform(rw.tr).Data())
	return nil
}

func rectF(rw *rewriter, el element) error {
	var x, y, w, h, rx, ry float64
	var hasRx, hasRy bool
	var err error
	for _, attr := range el.attrs {
		v := rw.doc[attr.valStart:attr.valEnd]
		switch attr.name {
		case "x":
			x, err = parseCoord(v)
		case "y":
			y, err = parseCoord(v)
		case "width":
			w, err = parseCoord(v)
		case "height":
			h, err = parseCoord(v)
		case "rx":
			rx, err = parseCoord(v)
			hasRx = true
		case "ry":
			ry, err = parseCoord(v)
			hasRy = true
		}
		if err != nil {
			return err
		}
	}
	if w == 0 || h == 0 { // not drawn, but not an error
		return nil
	}
	// map both corners so a flipping frame still yields a positive box
	x0, y0 := rw.tr.Apply(x, y)
	x1, y1 := rw.tr.Apply(x+w, y+h)
	rw.setNumber(el, "x", math.Min(x0, x1))
	rw.setNumber(el, "y", math.Min(y0, y1))
	rw.setNumber(el, "width", math.Abs(x1-x0))
	rw.setNumber(el, "height", math.Abs(y1-y0))
	sx, sy := math.Abs(rw.tr.ScaleX), math.Abs(rw.tr.ScaleY)
	if hasRx && rx != 0 {
		rw.setNumber(el, "rx", rx*sx)
		// a lone rx implies ry = rx, which an anisotropic frame maps
		// to a different value; write it out
		if !hasRy && sx != sy {
			rw.setNumber(el, "ry", rx*sy)
		}
	}
	if hasRy && ry != 0 {
		rw.setNumber(el, "ry", ry*sy)
		if !hasRx && sx != sy {
			rw.setNumber(el, "rx", ry*sx)
		}
	}
	return nil
}

func circleF(rw *rewriter, el element) error {
	var cx, cy, r float64
	var err error
	for _, attr := range el.attrs {
		v := rw.doc[attr.valStart:attr.valEnd]
		switch attr.name {
		case "cx":
			cx, err = parseCoord(v)
		case "cy":
			cy, err = parseCoord(v)
		case "r":
			r, err = parseCoord(v)
		}
		if err != nil {
			return err
		}
	}
	if r == 0 { // not drawn, but not an error
		return nil
	}
	sx, sy := math.Abs(rw.tr.ScaleX), math.Abs(rw.tr.ScaleY)
	if sx != sy {
		// an anisotropic frame turns circles into ellipses, which the
		// r attribute cannot express
		return errCircleScale
	}
	ncx, ncy := rw.tr.Apply(cx, cy)
	rw.setNumber(el, "cx", ncx)
	rw.setNumber(el, "cy", ncy)
	rw.setNumber(el, "r", r*sx)
	return nil
}

func ellipseF(rw *rewriter, el element) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range el.attrs {
		v := rw.doc[attr.valStart:attr.valEnd]
		switch attr.name {
		case "cx":
			cx, err = parseCoord(v)
		case "cy":
			cy, err = parseCoord(v)
		case "rx":
			rx, err = parseCoord(v)
		case "ry":
			ry, err = parseCoord(v)
		}
		if err != nil {
			return err
		}
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	ncx, ncy := rw.tr.Apply(cx, cy)
	rw.setNumber(el, "cx", ncx)
	rw.setNumber(el, "cy", ncy)
	rw.setNumber(el, "rx", rx*math.Abs(rw.tr.ScaleX))
	rw.setNumber(el, "ry", ry*math.Abs(rw.tr.ScaleY))
	return nil
}

func lineF(rw *rewriter, el element) error {
	var x1, y1, x2, y2 float64
	var err error
	for _, attr := range el.attrs {
		v := rw.doc[attr.valStart:attr.valEnd]
		switch attr.name {
		case "x1":
			x1, err = parseCoord(v)
		case "y1":
			y1, err = parseCoord(v)
		case "x2":
			x2, err = parseCoord(v)
		case "y2":
			y2, err = parseCoord(v)
		}
		if err != nil {
			return err
		}
	}
	nx1, ny1 := rw.tr.Apply(x1, y1)
	nx2, ny2 := rw.tr.Apply(x2, y2)
	rw.setNumber(el, "x1", nx1)
	rw.setNumber(el, "y1", ny1)
	rw.setNumber(el, "x2", nx2)
	rw.setNumber(el, "y2", ny2)
	return nil
}

func polylineF(rw *rewriter, el element) error {
	a := el.attr("points")
	if a == nil {
		return nil
	}
	pts, err := svgpath.ParseNumberList(rw.doc[a.valStart:a.valEnd])
	if err != nil {
		return err
	}
	if len(pts)%2 != 0 {
		return fmt.Errorf("%s has odd number of points", el.name)
	}
	var b strings.Builder
	for i := 0; i < len(pts); i += 2 {
		x, y := rw.tr.Apply(pts[i], pts[i+1])
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(svgpath.FormatCoord(x))
		b.WriteByte(',')
		b.WriteString(svgpath.FormatCoord(y))
	}
	rw.replace(a, b.String())
	return nil
}

func polygonF(rw *rewriter, el element) error {
	return polylineF(rw, el)
}

// useF rescales the displacement of a use reference. The referenced
// geometry is rewritten where it is declared, and conjugating its
// translation by the frame map leaves a plain scale.
func useF(rw *rewriter, el element) error {
	pending := make([]edit, 0, 4)
	for _, attr := range el.attrs {
		var scale float64
		switch attr.name {
		case "x":
			scale = rw.tr.ScaleX
		case "y":
			scale = rw.tr.ScaleY
		case "width":
			scale = math.Abs(rw.tr.ScaleX)
		case "height":
			scale = math.Abs(rw.tr.ScaleY)
		default:
			continue
		}
		v, err := parseCoord(rw.doc[attr.valStart:attr.valEnd])
		if err != nil {
			return err
		}
		pending = append(pending, edit{
			start: attr.valStart,
			end:   attr.valEnd,
			text:  svgpath.FormatCoord(v * scale),
		})
	}
	rw.edits = append(rw.edits, pending...)
	return nil
}

// gradientF re-frames gradients declared in user units. Folding the
// frame map into gradientTransform covers every coordinate attribute
// at once, anisotropic frames included; bounding box gradients are
// scale invariant and stay untouched.
func gradientF(rw *rewriter, el element) error {
	a := el.attr("gradientUnits")
	if a == nil || strings.TrimSpace(rw.doc[a.valStart:a.valEnd]) != "userSpaceOnUse" {
		return nil
	}
	gt := Identity
	if t := el.attr("gradientTransform"); t != nil {
		var err error
		gt, err = parseTransformList(rw.doc[t.valStart:t.valEnd])
		if err != nil {
			return err
		}
	}
	rw.setAttr(el, "gradientTransform", matrixString(rw.mat.Mult(gt)))
	return nil
}
