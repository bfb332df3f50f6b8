package pagexml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrMalformedXML is returned when provider XML cannot be parsed into a rooted document.
var ErrMalformedXML = errors.New("malformed page XML")

// Element names of the page-description format.
const (
	tagPage       = "Page"
	tagOutline    = "Outline"
	tagPosition   = "Position"
	tagOEChildren = "OEChildren"
	tagOE         = "OE"
	tagT          = "T"
)

// ParseDocument parses XML returned by the hierarchy or page-content provider.
func ParseDocument(xml string) (*etree.Document, error) {
	if strings.TrimSpace(xml) == "" {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedXML)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedXML)
	}

	return doc, nil
}

// Render serializes doc, indenting nested elements by indent spaces.
// A negative indent writes the document on a single line.
func Render(doc *etree.Document, indent int) (string, error) {
	out := doc.Copy()
	if indent >= 0 {
		out.Indent(indent)
	}
	return out.WriteToString()
}

// findFirst returns the first descendant of root, in document order, that satisfies match.
// root itself is not a candidate.
func findFirst(root *etree.Element, match func(*etree.Element) bool) *etree.Element {
	if root == nil {
		return nil
	}
	for _, c := range root.ChildElements() {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant of root that satisfies match, in document order.
func findAll(root *etree.Element, match func(*etree.Element) bool) []*etree.Element {
	var res []*etree.Element
	if root == nil {
		return res
	}
	for _, c := range root.ChildElements() {
		if match(c) {
			res = append(res, c)
		}
		res = append(res, findAll(c, match)...)
	}
	return res
}

// documentElement returns the document node to search from, or nil.
func documentElement(doc *etree.Document) *etree.Element {
	if doc == nil {
		return nil
	}
	return &doc.Element
}

func attrValue(el *etree.Element, key string) (string, bool) {
	for _, a := range el.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
