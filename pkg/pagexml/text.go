package pagexml

import (
	"strings"

	"github.com/beevik/etree"
)

// TextPayloads returns the character data of every T element in doc, in
// document order. CDATA and escaped text are concatenated as written.
func TextPayloads(doc *etree.Document, ns Namespace) []string {
	var out []string
	for _, t := range findAll(documentElement(doc), func(el *etree.Element) bool {
		return ns.Matches(el, tagT)
	}) {
		var b strings.Builder
		for _, tok := range t.Child {
			if cd, ok := tok.(*etree.CharData); ok {
				b.WriteString(cd.Data)
			}
		}
		out = append(out, b.String())
	}
	return out
}
