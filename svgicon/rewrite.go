package svgicon

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/iconfit/iconfit/svgpath"
)

// edit replaces doc[start:end] with text. A pure insertion has
// start == end.
type edit struct {
	start, end int
	text       string
}

var errNestedViewport = errors.New("nested viewport is left as authored")

// rewriter accumulates the edits that normalize one document.
type rewriter struct {
	doc     string
	size    float64
	errMode ErrorMode

	tr      svgpath.Transform // frame map for plain geometry
	mat     Matrix2D          // the same map for transform attributes
	edits   []edit
	skipped []Skip
}

// run scans the document and gathers edits. An error here means the
// document as a whole cannot be rewritten and must pass through.
func (rw *rewriter) run() error {
	sawRoot := false
	err := scanDocument(rw.doc, func(el element, depth int) (bool, error) {
		if depth == 0 {
			sawRoot = true
			return rw.root(el)
		}
		return rw.element(el)
	})
	if err != nil {
		return err
	}
	if !sawRoot {
		return errors.New("document has no root element")
	}
	return nil
}

// root resolves the source frame and swaps the sizing attributes for
// the canonical square ones. Failing to resolve a frame aborts the
// whole rewrite.
func (rw *rewriter) root(el element) (bool, error) {
	if el.name != "svg" {
		return false, fmt.Errorf("root element is <%s>, not <svg>", el.name)
	}
	frame, err := resolveFrame(rw.doc, el)
	if err != nil {
		return false, err
	}
	rw.tr = frameTransform(frame, rw.size)
	rw.mat = frameMatrix(frame, rw.size)
	s := svgpath.FormatCoord(rw.size)
	rw.edits = append(rw.edits, edit{
		start: el.nameEnd,
		end:   el.nameEnd,
		text:  ` width="` + s + `" height="` + s + `" viewBox="0 0 ` + s + ` ` + s + `"`,
	})
	for _, name := range [...]string{"viewBox", "width", "height"} {
		if a := el.attr(name); a != nil {
			rw.edits = append(rw.edits, edit{start: a.start, end: a.end})
		}
	}
	if a := el.attr("transform"); a != nil {
		// a root transform scopes the whole document, so failing to
		// fold the frame map into it fails the rewrite, not the element
		t, err := parseTransformList(rw.doc[a.valStart:a.valEnd])
		if err != nil {
			return false, fmt.Errorf("root transform: %w", err)
		}
		rw.replace(a, matrixString(rw.mat.Mult(t)))
		return true, nil
	}
	return false, nil
}

func (rw *rewriter) element(el element) (bool, error) {
	if el.name == "svg" || (el.name == "symbol" && el.attr("viewBox") != nil) {
		return true, rw.handleError(el, errNestedViewport)
	}
	if a := el.attr("transform"); a != nil {
		return true, rw.absorbTransform(el, a)
	}
	f := rewriteFuncs[el.name]
	if f == nil {
		return false, nil
	}
	if err := f(rw, el); err != nil {
		return false, rw.handleError(el, err)
	}
	return false, nil
}

// absorbTransform folds the frame map into el's own transform, which
// re-frames the whole subtree in one edit. The caller skips the
// descendants either way: on failure they stay consistently in source
// units rather than half rewritten.
func (rw *rewriter) absorbTransform(el element, a *attribute) error {
	t, err := parseTransformList(rw.doc[a.valStart:a.valEnd])
	if err != nil {
		return rw.handleError(el, err)
	}
	rw.replace(a, matrixString(rw.mat.Mult(t)))
	return nil
}

// handleError records an element the rewriter leaves as authored,
// honoring the error mode.
func (rw *rewriter) handleError(el element, err error) error {
	rw.skipped = append(rw.skipped, Skip{Element: el.name, Offset: el.start, Reason: err})
	switch rw.errMode {
	case StrictErrorMode:
		return fmt.Errorf("<%s> at offset %d: %w", el.name, el.start, err)
	case WarnErrorMode:
		log.Printf("svgicon: leaving <%s> at offset %d as authored: %s", el.name, el.start, err)
	}
	return nil
}

func (rw *rewriter) replace(a *attribute, text string) {
	rw.edits = append(rw.edits, edit{start: a.valStart, end: a.valEnd, text: text})
}

// setAttr rewrites the named attribute value, adding the attribute
// right after the tag name when the element omitted it.
func (rw *rewriter) setAttr(el element, name, value string) {
	if a := el.attr(name); a != nil {
		rw.replace(a, value)
		return
	}
	rw.edits = append(rw.edits, edit{
		start: el.nameEnd,
		end:   el.nameEnd,
		text:  " " + name + `="` + value + `"`,
	})
}

func (rw *rewriter) setNumber(el element, name string, v float64) {
	rw.setAttr(el, name, svgpath.FormatCoord(v))
}

// applyEdits splices the edits into doc. Spans come from distinct
// attributes and never overlap; insertions sort before removals
// starting at the same offset and otherwise keep their order.
func applyEdits(doc string, edits []edit) string {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].end < edits[j].end
	})
	var b strings.Builder
	b.Grow(len(doc) + 64)
	pos := 0
	for _, e := range edits {
		b.WriteString(doc[pos:e.start])
		b.WriteString(e.text)
		pos = e.end
	}
	b.WriteString(doc[pos:])
	return b.String()
}
