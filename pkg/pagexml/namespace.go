// Package pagexml locates pages and insertion points in page-description XML
// and builds page update documents that embed highlighted HTML.
package pagexml

import (
	"github.com/beevik/etree"
)

// Namespace is the XML namespace shared by every element of a page document.
// It is read once from the hierarchy document and passed explicitly to every
// locator and builder call.
type Namespace struct {
	Prefix string
	URI    string
}

// NamespaceOf returns the namespace of the document's root element.
// A document without a root yields the zero Namespace.
func NamespaceOf(doc *etree.Document) Namespace {
	if doc == nil {
		return Namespace{}
	}
	root := doc.Root()
	if root == nil {
		return Namespace{}
	}
	return Namespace{
		Prefix: root.Space,
		URI:    root.NamespaceURI(),
	}
}

// Name returns the qualified tag for a local element name.
func (ns Namespace) Name(local string) string {
	if ns.Prefix == "" {
		return local
	}
	return ns.Prefix + ":" + local
}

// Matches reports whether el has the given local name and belongs to ns.
func (ns Namespace) Matches(el *etree.Element, local string) bool {
	if el == nil || el.Tag != local {
		return false
	}
	return el.NamespaceURI() == ns.URI
}

// Declare adds the namespace declaration for ns to el.
func (ns Namespace) Declare(el *etree.Element) {
	if ns.URI == "" {
		return
	}
	if ns.Prefix == "" {
		el.CreateAttr("xmlns", ns.URI)
		return
	}
	el.CreateAttr("xmlns:"+ns.Prefix, ns.URI)
}
