package svgpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		data string
		want Path
	}{
		{"", nil},
		{"M10 20", Path{MoveTo{X: 10, Y: 20}}},
		{"m10,20", Path{MoveTo{Rel: true, X: 10, Y: 20}}},
		{"M10 20L30 40Z", Path{
			MoveTo{X: 10, Y: 20},
			LineTo{X: 30, Y: 40},
			Close{},
		}},
		{"M10 20z", Path{MoveTo{X: 10, Y: 20}, Close{Rel: true}}},
		// run-together numbers
		{"M10-5", Path{MoveTo{X: 10, Y: -5}}},
		{"l.5.5", Path{LineTo{Rel: true, X: 0.5, Y: 0.5}}},
		{"L1e2 2E-1", Path{LineTo{X: 100, Y: 0.2}}},
		// implicit repetition keeps variant and relativity
		{"L10 20 30 40", Path{LineTo{X: 10, Y: 20}, LineTo{X: 30, Y: 40}}},
		{"M1 2 3 4", Path{MoveTo{X: 1, Y: 2}, MoveTo{X: 3, Y: 4}}},
		{"h10 20", Path{HLineTo{Rel: true, X: 10}, HLineTo{Rel: true, X: 20}}},
		{"V5", Path{VLineTo{Y: 5}}},
		{"C1 2 3 4 5 6", Path{CubicTo{X1: 1, Y1: 2, X2: 3, Y2: 4, X: 5, Y: 6}}},
		{"s1,2 3,4", Path{SmoothCubicTo{Rel: true, X2: 1, Y2: 2, X: 3, Y: 4}}},
		{"Q1 2 3 4T5 6", Path{
			QuadTo{X1: 1, Y1: 2, X: 3, Y: 4},
			SmoothQuadTo{X: 5, Y: 6},
		}},
		// arc flags may be glued to their neighbors
		{"A5 5 0 0 1 10 10", Path{ArcTo{Rx: 5, Ry: 5, Sweep: true, X: 10, Y: 10}}},
		{"a1 1 0 0110 10", Path{ArcTo{Rel: true, Rx: 1, Ry: 1, Sweep: true, X: 10, Y: 10}}},
		{"A2 3-10 1 0-4-5", Path{ArcTo{Rx: 2, Ry: 3, Rotation: -10, LargeArc: true, X: -4, Y: -5}}},
		// separators are interchangeable
		{" M 10 , 20 \n L 30\t40 ", Path{MoveTo{X: 10, Y: 20}, LineTo{X: 30, Y: 40}}},
	} {
		got, err := Parse(test.data)
		if err != nil {
			t.Errorf("Parse(%q): %s", test.data, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", test.data, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, data := range []string{
		"X10 20",           // unknown command
		"M10 20X",          // unknown command after a group
		"M",                // missing operands
		"L10",              // operand count not a multiple of the arity
		"M10 20 30",        // dangling repetition operand
		"A5 5 0 2 0 10 10", // arc flag out of range
		"A5 5 0 0",         // truncated arc
		"M10 20 -",         // sign without digits
		"Z5",               // number after close
		"M1e 2",            // dangling exponent
	} {
		if _, err := Parse(data); !errors.Is(err, ErrMalformedPath) {
			t.Errorf("Parse(%q): expected malformed path error, got %v", data, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// serializing a parsed path must preserve variants, relativity and
	// operand values
	for _, data := range []string{
		"M10 20L30 40Z",
		"m1.5-2.5l.5.5z",
		"M0 0C1 2 3 4 5 6S7 8 9 10",
		"M0 0Q1 2 3 4t5 6",
		"M0 0H10V20h-5v-5",
		"M0 0A5 5 0 0 1 10 10a2 3 45 1 0 4 5",
		"M1 2 3 4 5 6",
	} {
		first, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse(%q): %s", data, err)
		}
		second, err := Parse(first.Data())
		if err != nil {
			t.Fatalf("Parse(%q) after round trip: %s", first.Data(), err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("round trip of %q changed the path (-first +second):\n%s", data, diff)
		}
	}
}

func TestSerializeMinimal(t *testing.T) {
	for _, test := range []struct {
		path Path
		want string
	}{
		{Path{MoveTo{X: 10, Y: 20}}, "M10 20"},
		{Path{MoveTo{X: 10, Y: -5}}, "M10-5"},
		{Path{MoveTo{Rel: true, X: -1.5, Y: 0.5}}, "m-1.5 0.5"},
		{Path{LineTo{X: 24}, Close{}}, "L24 0Z"},
		{Path{LineTo{X: 24}, Close{Rel: true}}, "L24 0z"},
		{Path{HLineTo{Rel: true, X: 3.25}, VLineTo{Y: -7}}, "h3.25V-7"},
		{Path{ArcTo{Rx: 5, Ry: 5, Sweep: true, X: 10, Y: 10}}, "A5 5 0 0 1 10 10"},
		{Path{ArcTo{Rx: 2, Ry: 3, Rotation: -10, LargeArc: true, X: -4, Y: -5}}, "A2 3-10 1 0-4-5"},
		// no trailing zeros, no exponents
		{Path{MoveTo{X: 24.0, Y: 0.30000000000000004}}, "M24 0.3"},
		{Path{LineTo{X: 1.0 / 3, Y: 2.0 / 3}}, "L0.333333 0.666667"},
		{Path{LineTo{X: -0.0000001, Y: 1}}, "L0 1"},
	} {
		if got := test.path.Data(); got != test.want {
			t.Errorf("Data() = %q, want %q", got, test.want)
		}
	}
}

func TestScanNumber(t *testing.T) {
	for _, test := range []struct {
		data string
		val  float64
		end  int
		ok   bool
	}{
		{"10", 10, 2, true},
		{"-5", -5, 2, true},
		{"+3.5", 3.5, 4, true},
		{".5.5", 0.5, 2, true},
		{"1.", 1, 2, true},
		{"1e2", 100, 3, true},
		{"1e-2x", 0.01, 4, true},
		{"10-5", 10, 2, true},
		{"", 0, 0, false},
		{"-", 0, 0, false},
		{".", 0, 0, false},
		{"e5", 0, 0, false},
	} {
		val, end, ok := scanNumber(test.data, 0)
		if val != test.val || end != test.end || ok != test.ok {
			t.Errorf("scanNumber(%q) = %v, %d, %v, want %v, %d, %v",
				test.data, val, end, ok, test.val, test.end, test.ok)
		}
	}
}
