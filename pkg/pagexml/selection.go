package pagexml

import "github.com/beevik/etree"

const selectedPartial = "partial"

// Position is the canvas coordinate at which new content is inserted.
// X and Y are kept exactly as the host wrote them.
type Position struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// SelectionPosition returns the position of the first partially selected
// outline in the page content document, or nil if there is none or the
// outline carries no position.
func SelectionPosition(doc *etree.Document, ns Namespace) *Position {
	outline := findFirst(documentElement(doc), func(el *etree.Element) bool {
		if !ns.Matches(el, tagOutline) {
			return false
		}
		v, ok := attrValue(el, "selected")
		return ok && v == selectedPartial
	})
	if outline == nil {
		return nil
	}

	pos := findFirst(outline, func(el *etree.Element) bool {
		return ns.Matches(el, tagPosition)
	})
	if pos == nil {
		return nil
	}

	x, _ := attrValue(pos, "x")
	y, _ := attrValue(pos, "y")
	return &Position{X: x, Y: y}
}
