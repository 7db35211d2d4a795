// Implements a raster preview backend for icons,
// by wrapping rasterx.
package svgraster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/fixed"

	"github.com/iconfit/iconfit/svgicon"
	"github.com/iconfit/iconfit/svgpath"
)

// DefaultSize is the edge length of a preview, in pixels.
const DefaultSize = 256

// Options control how an icon is rendered.
type Options struct {
	Size       int         // square output edge in pixels, DefaultSize when <= 0
	Fill       color.Color // glyph color, black when nil
	Background color.Color // canvas color, transparent when nil
}

// Render rasterizes the path geometry of an SVG document into a square
// image. The document frame is resolved the same way normalization
// resolves it, so the preview matches the rewritten output.
func Render(doc string, opts Options) (*image.RGBA, error) {
	icon, err := svgicon.ParseIcon(doc)
	if err != nil {
		return nil, err
	}
	return RenderIcon(icon, opts)
}

// RenderStream rasterizes an icon read from stream.
func RenderStream(stream io.Reader, opts Options) (*image.RGBA, error) {
	raw, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	return Render(string(raw), opts)
}

// RenderIcon rasterizes an already parsed icon.
func RenderIcon(icon *svgicon.Icon, opts Options) (*image.RGBA, error) {
	if icon.Frame.Width <= 0 || icon.Frame.Height <= 0 {
		return nil, svgicon.ErrUnknownDimensions
	}
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	fill := opts.Fill
	if fill == nil {
		fill = color.Black
	}
	tr := svgpath.Transform{
		ScaleX:     float64(size) / icon.Frame.Width,
		ScaleY:     float64(size) / icon.Frame.Height,
		TranslateX: icon.Frame.MinX,
		TranslateY: icon.Frame.MinY,
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	filler := rasterx.NewFiller(size, size, scanner)
	scanner.SetColor(fill)
	for _, path := range icon.Paths {
		drawPath(filler, path.Transform(tr))
		filler.Draw()
		filler.Clear()
	}
	return img, nil
}

// drawPath feeds one path into the filler, resolving relative and
// shorthand commands to absolute control points and flattening arcs
// to cubics.
func drawPath(f *rasterx.Filler, path svgpath.Path) {
	c := cursor{filler: f}
	for _, cmd := range path {
		c.step(cmd)
	}
	c.stop(false)
}

// cursor tracks the drawing state the path mini-language leaves
// implicit: the current point, the subpath start and the control
// point smooth commands reflect.
type cursor struct {
	filler         *rasterx.Filler
	x, y           float64
	startX, startY float64
	ctlX, ctlY     float64
	lastVerb       byte // 'C' or 'Q' when ctlX, ctlY are meaningful
	open           bool
}

func (c *cursor) step(cmd svgpath.Command) {
	switch op := cmd.(type) {
	case svgpath.MoveTo:
		c.stop(false)
		c.x, c.y = c.abs(op.Rel, op.X, op.Y)
		c.startX, c.startY = c.x, c.y
		c.filler.Start(toFixedP(c.x, c.y))
		c.open = true
		c.lastVerb = 0
	case svgpath.LineTo:
		x, y := c.abs(op.Rel, op.X, op.Y)
		c.lineTo(x, y)
	case svgpath.HLineTo:
		x := op.X
		if op.Rel {
			x += c.x
		}
		c.lineTo(x, c.y)
	case svgpath.VLineTo:
		y := op.Y
		if op.Rel {
			y += c.y
		}
		c.lineTo(c.x, y)
	case svgpath.CubicTo:
		x1, y1 := c.abs(op.Rel, op.X1, op.Y1)
		x2, y2 := c.abs(op.Rel, op.X2, op.Y2)
		x, y := c.abs(op.Rel, op.X, op.Y)
		c.cubeTo(x1, y1, x2, y2, x, y)
	case svgpath.SmoothCubicTo:
		x1, y1 := c.reflected('C')
		x2, y2 := c.abs(op.Rel, op.X2, op.Y2)
		x, y := c.abs(op.Rel, op.X, op.Y)
		c.cubeTo(x1, y1, x2, y2, x, y)
	case svgpath.QuadTo:
		x1, y1 := c.abs(op.Rel, op.X1, op.Y1)
		x, y := c.abs(op.Rel, op.X, op.Y)
		c.quadTo(x1, y1, x, y)
	case svgpath.SmoothQuadTo:
		x1, y1 := c.reflected('Q')
		x, y := c.abs(op.Rel, op.X, op.Y)
		c.quadTo(x1, y1, x, y)
	case svgpath.ArcTo:
		op.X, op.Y = c.abs(op.Rel, op.X, op.Y)
		op.Rel = false
		c.ensure()
		for _, seg := range op.Cubics(c.x, c.y) {
			c.cubeTo(seg.X1, seg.Y1, seg.X2, seg.Y2, seg.X, seg.Y)
		}
		c.lastVerb = 0
	case svgpath.Close:
		c.stop(true)
		c.x, c.y = c.startX, c.startY
		c.lastVerb = 0
	}
}

// ensure opens a subpath at the current point, for drawing commands
// that follow a close without an intervening move.
func (c *cursor) ensure() {
	if !c.open {
		c.filler.Start(toFixedP(c.x, c.y))
		c.open = true
	}
}

func (c *cursor) stop(closeLoop bool) {
	if c.open {
		c.filler.Stop(closeLoop)
		c.open = false
	}
}

func (c *cursor) abs(rel bool, x, y float64) (float64, float64) {
	if rel {
		return c.x + x, c.y + y
	}
	return x, y
}

func (c *cursor) lineTo(x, y float64) {
	c.ensure()
	c.filler.Line(toFixedP(x, y))
	c.x, c.y = x, y
	c.lastVerb = 0
}

func (c *cursor) cubeTo(x1, y1, x2, y2, x, y float64) {
	c.ensure()
	c.filler.CubeBezier(toFixedP(x1, y1), toFixedP(x2, y2), toFixedP(x, y))
	c.x, c.y = x, y
	c.ctlX, c.ctlY = x2, y2
	c.lastVerb = 'C'
}

func (c *cursor) quadTo(x1, y1, x, y float64) {
	c.ensure()
	c.filler.QuadBezier(toFixedP(x1, y1), toFixedP(x, y))
	c.x, c.y = x, y
	c.ctlX, c.ctlY = x1, y1
	c.lastVerb = 'Q'
}

// reflected returns the start control point of a smooth command: the
// previous control point mirrored through the current point, or the
// current point itself when the previous command had no control.
func (c *cursor) reflected(verb byte) (float64, float64) {
	if c.lastVerb != verb {
		return c.x, c.y
	}
	return 2*c.x - c.ctlX, 2*c.y - c.ctlY
}

func toFixedP(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// ParseColor reads the color syntax preview flags accept: the #rgb and
// #rrggbb hex forms and the SVG named colors.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3:
			v, err := strconv.ParseUint(hex, 16, 16)
			if err != nil {
				break
			}
			r := uint8(v >> 8 & 0xf)
			g := uint8(v >> 4 & 0xf)
			b := uint8(v & 0xf)
			return color.RGBA{R: r*16 + r, G: g*16 + g, B: b*16 + b, A: 0xff}, nil
		case 6:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				break
			}
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
		return color.RGBA{}, fmt.Errorf("unsupported color %q", s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unsupported color %q", s)
}
