package pagexml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextPayloads(t *testing.T) {
	doc := parse(t, `<one:Page xmlns:one="`+testNS+`">
  <one:Title><one:OE><one:T><![CDATA[Title]]></one:T></one:OE></one:Title>
  <one:Outline>
    <one:OEChildren>
      <one:OE><one:T><![CDATA[<b>bold</b>]]></one:T></one:OE>
      <one:OE><one:T>a &amp; b</one:T></one:OE>
      <one:OE><one:T/></one:OE>
    </one:OEChildren>
  </one:Outline>
</one:Page>`)

	assert.Equal(t, []string{"Title", "<b>bold</b>", "a & b", ""}, TextPayloads(doc, oneNS()))
}

func TestTextPayloads_None(t *testing.T) {
	assert.Empty(t, TextPayloads(parse(t, `<one:Page xmlns:one="`+testNS+`"/>`), oneNS()))
	assert.Empty(t, TextPayloads(nil, oneNS()))
}
