package pagexml

import "github.com/beevik/etree"

const attrCurrentlyViewed = "isCurrentlyViewed"

// CurrentPageID returns the ID of the first page, in document order, that the
// hierarchy marks as currently viewed. It reports false when no page qualifies.
func CurrentPageID(doc *etree.Document, ns Namespace) (string, bool) {
	page := findFirst(documentElement(doc), func(el *etree.Element) bool {
		return ns.Matches(el, tagPage) && isCurrentlyViewed(el)
	})
	if page == nil {
		return "", false
	}

	id, ok := attrValue(page, "ID")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func isCurrentlyViewed(el *etree.Element) bool {
	v, ok := attrValue(el, attrCurrentlyViewed)
	return ok && v == "true"
}
