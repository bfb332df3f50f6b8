package pagexml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// FontPolicy controls the style emitted when no font is configured.
type FontPolicy string

const (
	// FontPolicyEmpty emits font-family with an empty value.
	FontPolicyEmpty FontPolicy = "empty"
	// FontPolicyOmit emits the body wrapper without a style attribute.
	FontPolicyOmit FontPolicy = "omit"
	// FontPolicyDefault substitutes BuildOptions.DefaultFont.
	FontPolicyDefault FontPolicy = "default"
)

// Valid reports whether p is a known policy. The empty string is valid and
// behaves like FontPolicyEmpty.
func (p FontPolicy) Valid() bool {
	switch p {
	case "", FontPolicyEmpty, FontPolicyOmit, FontPolicyDefault:
		return true
	}
	return false
}

// BuildOptions configures Build.
type BuildOptions struct {
	Font        string
	FontPolicy  FontPolicy
	DefaultFont string
}

const cdataEnd = "]]>"

// SplitLines splits text into lines on "\n". A "\r" directly before the
// newline is dropped. Empty lines are kept, so "" yields one empty line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Build assembles a page update document for pageID that embeds each line of
// highlighted HTML as raw markup. When pos is non-nil the outline is placed
// at that position.
func Build(ns Namespace, pageID, highlighted string, pos *Position, opts BuildOptions) *etree.Document {
	page := etree.NewElement(ns.Name(tagPage))
	ns.Declare(page)

	outline := page.CreateElement(ns.Name(tagOutline))
	if pos != nil {
		p := outline.CreateElement(ns.Name(tagPosition))
		p.CreateAttr("x", pos.X)
		p.CreateAttr("y", pos.Y)
	}

	children := outline.CreateElement(ns.Name(tagOEChildren))
	open := opts.openBody()
	for _, line := range SplitLines(highlighted) {
		t := children.CreateElement(ns.Name(tagOE)).CreateElement(ns.Name(tagT))
		addCData(t, stripInvalidChars(open+html.UnescapeString(line)+"</body>"))
	}

	page.CreateAttr("ID", pageID)

	doc := etree.NewDocument()
	doc.SetRoot(page)
	return doc
}

func (o BuildOptions) openBody() string {
	font := o.Font
	if font == "" {
		switch o.FontPolicy {
		case FontPolicyOmit:
			return "<body>"
		case FontPolicyDefault:
			font = o.DefaultFont
		}
	}
	return fmt.Sprintf(`<body style="font-family:%s">`, font)
}

// stripInvalidChars drops runes outside the XML 1.0 Char production, such as
// form feeds and other C0 controls. Invalid UTF-8 becomes U+FFFD.
func stripInvalidChars(s string) string {
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// addCData appends data to el as CDATA. A "]]>" inside data is split across
// two adjacent sections.
func addCData(el *etree.Element, data string) {
	for {
		i := strings.Index(data, cdataEnd)
		if i < 0 {
			el.CreateCData(data)
			return
		}
		el.CreateCData(data[:i+2])
		data = data[i+2:]
	}
}
