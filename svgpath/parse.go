package svgpath

import (
	"errors"
	"fmt"
)

// ErrMalformedPath reports a d attribute that does not follow the path
// data grammar. Returned errors wrap it with position context.
var ErrMalformedPath = errors.New("malformed path data")

// operand count per command letter
var cmdArity = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'A': 7, 'Z': 0,
}

// Parse parses the value of a d attribute into its command sequence.
// Operand groups repeating after a single command letter are emitted
// as separate commands of the same variant and relativity.
func Parse(data string) (Path, error) {
	var path Path
	pos := skipSpaces(data, 0)
	for pos < len(data) {
		letter := data[pos]
		rel := 'a' <= letter && letter <= 'z'
		upper := letter
		if rel {
			upper -= 'a' - 'A'
		}
		if _, known := cmdArity[upper]; !known {
			return nil, fmt.Errorf("%w: unknown command %q at %d", ErrMalformedPath, string(letter), pos)
		}
		pos++
		if upper == 'Z' {
			path = append(path, Close{Rel: rel})
			pos = skipSeparators(data, pos)
			continue
		}
		for {
			cmd, next, err := scanGroup(data, pos, upper, rel)
			if err != nil {
				return nil, err
			}
			path = append(path, cmd)
			pos = skipSeparators(data, next)
			if !startsNumber(data, pos) {
				break
			}
		}
	}
	return path, nil
}

// scanGroup scans one operand group for the given command letter.
func scanGroup(data string, pos int, upper byte, rel bool) (Command, int, error) {
	var f [7]float64
	for i := 0; i < cmdArity[upper]; i++ {
		pos = skipSeparators(data, pos)
		if upper == 'A' && (i == 3 || i == 4) {
			flag, next, ok := scanFlag(data, pos)
			if !ok {
				return nil, pos, fmt.Errorf("%w: arc flag must be 0 or 1 at %d", ErrMalformedPath, pos)
			}
			if flag {
				f[i] = 1
			}
			pos = next
			continue
		}
		v, next, ok := scanNumber(data, pos)
		if !ok {
			return nil, pos, fmt.Errorf("%w: expected number at %d", ErrMalformedPath, pos)
		}
		f[i] = v
		pos = next
	}
	return makeCommand(upper, rel, f), pos, nil
}

func startsNumber(data string, pos int) bool {
	if pos >= len(data) {
		return false
	}
	b := data[pos]
	return isDigit(b) || b == '.' || b == '+' || b == '-'
}

func makeCommand(upper byte, rel bool, f [7]float64) Command {
	switch upper {
	case 'M':
		return MoveTo{Rel: rel, X: f[0], Y: f[1]}
	case 'L':
		return LineTo{Rel: rel, X: f[0], Y: f[1]}
	case 'H':
		return HLineTo{Rel: rel, X: f[0]}
	case 'V':
		return VLineTo{Rel: rel, Y: f[0]}
	case 'C':
		return CubicTo{Rel: rel, X1: f[0], Y1: f[1], X2: f[2], Y2: f[3], X: f[4], Y: f[5]}
	case 'S':
		return SmoothCubicTo{Rel: rel, X2: f[0], Y2: f[1], X: f[2], Y: f[3]}
	case 'Q':
		return QuadTo{Rel: rel, X1: f[0], Y1: f[1], X: f[2], Y: f[3]}
	case 'T':
		return SmoothQuadTo{Rel: rel, X: f[0], Y: f[1]}
	default:
		return ArcTo{Rel: rel, Rx: f[0], Ry: f[1], Rotation: f[2],
			LargeArc: f[3] != 0, Sweep: f[4] != 0, X: f[5], Y: f[6]}
	}
}
