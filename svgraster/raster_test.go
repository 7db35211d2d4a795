package svgraster

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/iconfit/iconfit/svgicon"
)

const squareDoc = `<svg viewBox="0 0 24 24"><path d="M4 4h16v16H4z"/></svg>`

func alphaAt(t *testing.T, img interface {
	At(x, y int) color.Color
}, x, y int) uint32 {
	t.Helper()
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestRenderFillsGlyph(t *testing.T) {
	img, err := Render(squareDoc, Options{Size: 48})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != 48 {
		t.Fatalf("expected a 48 pixel edge, got %d", got)
	}
	if alphaAt(t, img, 24, 24) == 0 {
		t.Error("center of the square is transparent")
	}
	if a := alphaAt(t, img, 1, 1); a != 0 {
		t.Errorf("margin pixel is filled (alpha %d)", a)
	}
}

func TestRenderDefaultSize(t *testing.T) {
	img, err := Render(squareDoc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != DefaultSize {
		t.Fatalf("expected the default %d pixel edge, got %d", DefaultSize, got)
	}
}

func TestRenderFillColor(t *testing.T) {
	img, err := Render(squareDoc, Options{Size: 24, Fill: color.RGBA{R: 0xff, A: 0xff}})
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := img.At(12, 12).RGBA()
	if a == 0 || r < 0xf000 || g > 0x0fff || b > 0x0fff {
		t.Fatalf("center pixel is rgba(%d %d %d %d), expected red", r, g, b, a)
	}
}

func TestRenderBackground(t *testing.T) {
	img, err := Render(squareDoc, Options{Size: 16, Background: color.White})
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Fatalf("corner pixel is rgba(%d %d %d %d), expected white", r, g, b, a)
	}
	r, _, _, a = img.At(8, 8).RGBA()
	if a != 0xffff || r > 0x0fff {
		t.Fatalf("glyph pixel is rgba(%d _ _ %d), expected near black", r, a)
	}
}

// A circle drawn as two arcs exercises the cubic flattening.
func TestRenderArcs(t *testing.T) {
	doc := `<svg viewBox="0 0 24 24"><path d="M12 2a10 10 0 1 0 0 20a10 10 0 1 0 0-20z"/></svg>`
	img, err := Render(doc, Options{Size: 24})
	if err != nil {
		t.Fatal(err)
	}
	if alphaAt(t, img, 12, 12) == 0 {
		t.Error("center of the disc is transparent")
	}
	if a := alphaAt(t, img, 1, 1); a != 0 {
		t.Errorf("pixel outside the disc is filled (alpha %d)", a)
	}
}

// Drawing commands after a close restart the subpath at its former
// start point.
func TestRenderSubpathAfterClose(t *testing.T) {
	doc := `<svg viewBox="0 0 24 24"><path d="M4 4h16v16H4zl-2-2h-2z"/></svg>`
	if _, err := Render(doc, Options{Size: 24}); err != nil {
		t.Fatal(err)
	}
}

func TestRenderUnknownDimensions(t *testing.T) {
	_, err := Render(`<svg><path d="M0 0h4"/></svg>`, Options{})
	if !errors.Is(err, svgicon.ErrUnknownDimensions) {
		t.Fatalf("expected ErrUnknownDimensions, got %v", err)
	}
}

func TestRenderBrokenDocument(t *testing.T) {
	if _, err := Render(`<svg viewBox="0 0 24 24"><path`, Options{}); err == nil {
		t.Fatal("expected an error for a truncated document")
	}
}

func TestRenderStream(t *testing.T) {
	img, err := RenderStream(strings.NewReader(squareDoc), Options{Size: 32})
	if err != nil {
		t.Fatal(err)
	}
	if alphaAt(t, img, 16, 16) == 0 {
		t.Error("center of the square is transparent")
	}
}

func TestCursorReflection(t *testing.T) {
	c := cursor{x: 10, y: 10, ctlX: 4, ctlY: 6, lastVerb: 'C'}
	if x, y := c.reflected('C'); x != 16 || y != 14 {
		t.Errorf("reflected control is (%g, %g), expected (16, 14)", x, y)
	}
	// a quadratic shorthand after a cubic falls back to the current point
	if x, y := c.reflected('Q'); x != 10 || y != 10 {
		t.Errorf("reflected control is (%g, %g), expected (10, 10)", x, y)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#fff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#F00", color.RGBA{R: 0xff, A: 0xff}},
		{"#1a2b3c", color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}},
		{"steelblue", color.RGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}},
		{" White ", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %s", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseColor(%q) = %v, expected %v", c.in, got, c.want)
		}
	}
	for _, in := range []string{"", "#12345", "#xyz", "no-such-color"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q): expected an error", in)
		}
	}
}
