package svgicon

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// The rewriter never regenerates markup. It needs the exact byte span
// of every start tag and attribute value so edits can be spliced into
// the original text: encoding/xml drives tokenization and wellformed-
// ness, and spans are recovered from the raw tag text bracketed by
// InputOffset marks.

// attribute locates one attribute inside a start tag. start covers the
// whitespace separating the attribute from its predecessor, so that
// removing the whole span leaves the tag well formed. valStart and
// valEnd delimit the text between the quotes. All offsets index the
// whole document.
type attribute struct {
	name             string
	start, end       int
	valStart, valEnd int
}

// element is a located start (or self closing) tag.
type element struct {
	name       string // local name, prefix stripped
	start, end int    // from '<' to just past '>'
	nameEnd    int    // just past the tag name, where inserts go
	attrs      []attribute
}

// attr returns the named attribute, or nil. Names match the raw
// spelling, prefix included.
func (el *element) attr(name string) *attribute {
	for i := range el.attrs {
		if el.attrs[i].name == name {
			return &el.attrs[i]
		}
	}
	return nil
}

// scanDocument walks the elements of doc in document order, calling
// visit with each located start tag and its nesting depth, the root
// being depth zero. When visit asks to absorb an element its
// descendants are not visited. Text, comments and directives are
// never reported.
func scanDocument(doc string, visit func(el element, depth int) (absorb bool, err error)) error {
	dec := xml.NewDecoder(strings.NewReader(doc))
	// the stream was converted to UTF-8 upstream, whatever the
	// declaration still claims
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	dec.Entity = xml.HTMLEntity
	depth := 0
	absorbed := -1 // depth owning the current absorbed subtree
	for {
		before := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			if absorbed < 0 {
				el, err := parseTag(doc, int(before), int(dec.InputOffset()))
				if err != nil {
					return err
				}
				doAbsorb, err := visit(el, depth)
				if err != nil {
					return err
				}
				if doAbsorb {
					absorbed = depth
				}
			}
			depth++
		case xml.EndElement:
			depth--
			if absorbed == depth {
				absorbed = -1
			}
		}
	}
}

// parseTag recovers attribute spans from the raw text of a start tag.
// The decoder has already accepted the tag, so failures here mean the
// spans cannot be trusted and the document must be left alone.
func parseTag(doc string, start, end int) (element, error) {
	raw := doc[start:end]
	el := element{start: start, end: end}
	i := 1 // past '<'
	for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '>' && raw[i] != '/' {
		i++
	}
	name := raw[1:i]
	if j := strings.LastIndexByte(name, ':'); j >= 0 {
		name = name[j+1:]
	}
	el.name = name
	el.nameEnd = start + i
	for {
		wsStart := i
		i = skipTagSpace(raw, i)
		if i >= len(raw) || raw[i] == '>' || raw[i] == '/' {
			return el, nil
		}
		nameStart := i
		for i < len(raw) && raw[i] != '=' && !isTagSpace(raw[i]) && raw[i] != '>' && raw[i] != '/' {
			i++
		}
		attrName := raw[nameStart:i]
		i = skipTagSpace(raw, i)
		if i >= len(raw) || raw[i] != '=' {
			return el, fmt.Errorf("attribute %q has no value", attrName)
		}
		i = skipTagSpace(raw, i+1)
		if i >= len(raw) || (raw[i] != '"' && raw[i] != '\'') {
			return el, fmt.Errorf("attribute %q is not quoted", attrName)
		}
		quote := raw[i]
		i++
		valStart := i
		for i < len(raw) && raw[i] != quote {
			i++
		}
		if i >= len(raw) {
			return el, fmt.Errorf("attribute %q is not terminated", attrName)
		}
		valEnd := i
		i++
		el.attrs = append(el.attrs, attribute{
			name:     attrName,
			start:    start + wsStart,
			end:      start + i,
			valStart: start + valStart,
			valEnd:   start + valEnd,
		})
	}
}

func skipTagSpace(s string, i int) int {
	for i < len(s) && isTagSpace(s[i]) {
		i++
	}
	return i
}

func isTagSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
