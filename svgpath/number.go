package svgpath

import (
	"fmt"
	"math"
	"strconv"
)

// Numeric token scanning and formatting. The scanner is a hand written
// state machine because SVG lets numbers run together: "10-5" is 10
// followed by -5, and ".5.5" is 0.5 twice. Splitting on separators
// cannot express that.

// scanNumber scans one number starting at pos, returning its value and
// the position just after it. ok is false when no number starts there.
func scanNumber(data string, pos int) (val float64, end int, ok bool) {
	i := pos
	if i < len(data) && (data[i] == '+' || data[i] == '-') {
		i++
	}
	digits := 0
	for i < len(data) && isDigit(data[i]) {
		i++
		digits++
	}
	if i < len(data) && data[i] == '.' {
		i++
		for i < len(data) && isDigit(data[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, pos, false
	}
	// exponent, consumed only when complete
	if i < len(data) && (data[i] == 'e' || data[i] == 'E') {
		j := i + 1
		if j < len(data) && (data[j] == '+' || data[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(data) && isDigit(data[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	f, err := strconv.ParseFloat(data[pos:i], 64)
	if err != nil {
		return 0, pos, false
	}
	return f, i, true
}

// scanFlag scans an arc flag, a single 0 or 1 digit which may be glued
// to its neighbors.
func scanFlag(data string, pos int) (val bool, end int, ok bool) {
	if pos >= len(data) || (data[pos] != '0' && data[pos] != '1') {
		return false, pos, false
	}
	return data[pos] == '1', pos + 1, true
}

// skipSeparators advances past whitespace and at most one comma.
func skipSeparators(data string, pos int) int {
	pos = skipSpaces(data, pos)
	if pos < len(data) && data[pos] == ',' {
		pos = skipSpaces(data, pos+1)
	}
	return pos
}

func skipSpaces(data string, pos int) int {
	for pos < len(data) && isSpace(data[pos]) {
		pos++
	}
	return pos
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// ParseNumberList parses whitespace or comma separated numbers, the
// grammar shared by viewBox values and polygon point lists. Numbers
// may run together the same way they do in path data.
func ParseNumberList(s string) ([]float64, error) {
	var out []float64
	pos := skipSeparators(s, 0)
	for pos < len(s) {
		v, next, ok := scanNumber(s, pos)
		if !ok {
			return nil, fmt.Errorf("expected number at %d in %q", pos, s)
		}
		out = append(out, v)
		pos = skipSeparators(s, next)
	}
	return out, nil
}

// coordScale bounds serialized coordinates to six decimals, enough for
// icon geometry while dropping accumulated float noise.
const coordScale = 1e6

func roundCoord(f float64) float64 {
	f = math.Round(f*coordScale) / coordScale
	if f == 0 {
		return 0 // drops the sign of negative zero
	}
	return f
}

// appendCoords appends numbers in shortest decimal form, separated by
// a single space only where the syntax requires one.
func appendCoords(dst []byte, fs ...float64) []byte {
	for _, f := range fs {
		f = roundCoord(f)
		if needsGap(dst, f) {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendFloat(dst, f, 'f', -1, 64)
	}
	return dst
}

func appendFlag(dst []byte, flag bool) []byte {
	if needsGap(dst, 0) {
		dst = append(dst, ' ')
	}
	if flag {
		return append(dst, '1')
	}
	return append(dst, '0')
}

// FormatCoord renders a single coordinate the way path serialization
// does: shortest decimal form at six decimals, no exponent.
func FormatCoord(f float64) string {
	return strconv.FormatFloat(roundCoord(f), 'f', -1, 64)
}

// needsGap reports whether a separator must precede the next number:
// only after another number, and never when the next number brings its
// own leading minus sign.
func needsGap(dst []byte, next float64) bool {
	if len(dst) == 0 {
		return false
	}
	if !isDigit(dst[len(dst)-1]) {
		return false
	}
	return !math.Signbit(next)
}
