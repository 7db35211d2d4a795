// Normalizes hand authored SVG icons into a canonical square viewBox,
// so downstream consumers can assume uniform glyph geometry.
// Geometry is re-expressed through a translate-then-scale transform
// and the document is patched textually, leaving anything the
// rewriter does not understand exactly as authored.
package svgicon

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/iconfit/iconfit/svgpath"
)

// DefaultSize is the target frame used when callers pass a size of
// zero or less.
const DefaultSize = 24.0

// ErrorMode determines if the rewriter ignores, errors out, or logs a
// warning when it must leave part of a document untouched.
type ErrorMode uint8

const (
	// IgnoreErrorMode records skipped elements silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode additionally logs each skipped element.
	WarnErrorMode
	// StrictErrorMode turns the first issue into an error.
	StrictErrorMode
)

// ErrUnknownDimensions means neither viewBox nor width and height
// resolve a source frame; the document is then passed through
// unchanged.
var ErrUnknownDimensions = errors.New("unknown source dimensions")

// Skip records an element the rewriter left as authored.
type Skip struct {
	Element string // tag name
	Offset  int    // byte offset of the start tag in the source
	Reason  error
}

// Result is the outcome of normalizing one document.
type Result struct {
	Text    string // normalized text, or the input when Resized is false
	Resized bool
	Reason  error  // why the document was passed through
	Skipped []Skip // elements left as authored, never fatal
}

// Normalize rewrites an SVG document into the square frame
// `0 0 size size`. Path and shape geometry is re-expressed in the
// target frame and the root sizing attributes are replaced. Documents
// without resolvable dimensions pass through unchanged, and elements
// that cannot be rewritten are left alone; neither is an error outside
// of StrictErrorMode.
func Normalize(doc string, size float64, errMode ErrorMode) (*Result, error) {
	if size <= 0 {
		size = DefaultSize
	}
	rw := &rewriter{doc: doc, size: size, errMode: errMode}
	if err := rw.run(); err != nil {
		if errMode == StrictErrorMode {
			return nil, err
		}
		if errMode == WarnErrorMode {
			log.Println("svgicon: passthrough:", err)
		}
		return &Result{Text: doc, Reason: err, Skipped: rw.skipped}, nil
	}
	return &Result{
		Text:    applyEdits(doc, rw.edits),
		Resized: true,
		Skipped: rw.skipped,
	}, nil
}

// NormalizeStream reads a whole document and normalizes it. UTF-8
// input is used as is; legacy encodings are converted first, so the
// result is always UTF-8.
func NormalizeStream(stream io.Reader, size float64, errMode ErrorMode) (*Result, error) {
	raw, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		r, err := charset.NewReader(bytes.NewReader(raw), "image/svg+xml")
		if err != nil {
			return nil, err
		}
		if raw, err = io.ReadAll(r); err != nil {
			return nil, err
		}
	}
	return Normalize(string(raw), size, errMode)
}

// NormalizeFile normalizes the named file.
func NormalizeFile(path string, size float64, errMode ErrorMode) (*Result, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return NormalizeStream(fin, size, errMode)
}

// Icon is a parsed document: its text, resolved source frame and path
// geometries in document order. Shape elements are not collected.
type Icon struct {
	Text  string
	Frame SourceFrame
	Paths []svgpath.Path
}

// ParseIcon scans a document and parses its path geometry. Paths that
// do not parse are dropped; the frame is zero valued when the document
// does not resolve one.
func ParseIcon(doc string) (*Icon, error) {
	icon := &Icon{Text: doc}
	root := true
	err := scanDocument(doc, func(el element, depth int) (bool, error) {
		if root {
			root = false
			if frame, err := resolveFrame(doc, el); err == nil {
				icon.Frame = frame
			}
			return false, nil
		}
		if el.name != "path" {
			return false, nil
		}
		a := el.attr("d")
		if a == nil {
			return false, nil
		}
		path, err := svgpath.Parse(doc[a.valStart:a.valEnd])
		if err != nil {
			return false, nil
		}
		icon.Paths = append(icon.Paths, path)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return icon, nil
}
