package svgicon

import (
	"math"
	"strconv"
	"strings"

	"github.com/iconfit/iconfit/svgpath"
)

// SourceFrame is the rectangle a document's geometry is authored in.
// Width and Height are strictly positive once resolved.
type SourceFrame struct {
	MinX, MinY    float64
	Width, Height float64
}

// lengthUnits are suffixes tolerated (and discarded) on the root width
// and height attributes. Percentages do not resolve to user units and
// are rejected with everything else.
var lengthUnits = [...]string{"px", "pt", "mm", "cm"}

// resolveFrame determines the source frame from the root element. A
// well formed viewBox wins; otherwise positive width and height
// attributes span a frame with origin zero. Documents providing
// neither fail with ErrUnknownDimensions.
func resolveFrame(doc string, root element) (SourceFrame, error) {
	if a := root.attr("viewBox"); a != nil {
		if frame, ok := parseViewBox(doc[a.valStart:a.valEnd]); ok {
			return frame, nil
		}
	}
	w, okW := parseLength(doc, root.attr("width"))
	h, okH := parseLength(doc, root.attr("height"))
	if !okW || !okH {
		return SourceFrame{}, ErrUnknownDimensions
	}
	return SourceFrame{Width: w, Height: h}, nil
}

// parseViewBox accepts exactly four numbers `min-x min-y width height`
// with a positive width and height.
func parseViewBox(s string) (SourceFrame, bool) {
	vals, err := svgpath.ParseNumberList(s)
	if err != nil || len(vals) != 4 {
		return SourceFrame{}, false
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return SourceFrame{}, false
	}
	return SourceFrame{MinX: vals[0], MinY: vals[1], Width: vals[2], Height: vals[3]}, true
}

// parseLength reads a width or height value, trimming a trailing known
// unit. strconv accepts spellings like "Inf" that never denote a
// usable length, so non finite values are rejected here.
func parseLength(doc string, a *attribute) (float64, bool) {
	if a == nil {
		return 0, false
	}
	s := strings.TrimSpace(doc[a.valStart:a.valEnd])
	for _, unit := range lengthUnits {
		if strings.HasSuffix(s, unit) {
			s = strings.TrimSpace(strings.TrimSuffix(s, unit))
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// frameTransform maps the source frame onto the square target frame
// `0 0 size size`.
func frameTransform(f SourceFrame, size float64) svgpath.Transform {
	return svgpath.Transform{
		ScaleX:     size / f.Width,
		ScaleY:     size / f.Height,
		TranslateX: f.MinX,
		TranslateY: f.MinY,
	}
}
