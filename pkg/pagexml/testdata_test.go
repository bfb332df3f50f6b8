package pagexml

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

const testNS = "http://schemas.microsoft.com/office/onenote/2013/onenote"

func parse(t *testing.T, xml string) *etree.Document {
	t.Helper()
	doc, err := ParseDocument(xml)
	require.NoError(t, err)
	return doc
}

func oneNS() Namespace {
	return Namespace{Prefix: "one", URI: testNS}
}
