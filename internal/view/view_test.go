package view

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(format Format) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	r := NewRenderer(format, true)
	r.SetWriter(&out)
	r.SetErrWriter(&errOut)
	return r, &out, &errOut
}

func TestValidateFormat(t *testing.T) {
	for _, ok := range []string{"", "table", "json", "plain"} {
		assert.NoError(t, ValidateFormat(ok), ok)
	}
	for _, bad := range []string{"TABLE", "xml", "yaml"} {
		err := ValidateFormat(bad)
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), "invalid output format")
		assert.Contains(t, err.Error(), "table, json, plain")
	}
	assert.Equal(t, []string{"table", "json", "plain"}, ValidFormats())
}

func TestNewRenderer_DefaultFormat(t *testing.T) {
	assert.Equal(t, FormatTable, NewRenderer("", true).Format())
	assert.Equal(t, FormatPlain, NewRenderer(FormatPlain, true).Format())
}

// The position table printed by "page current".
var positionHeaders = []string{"ID", "X", "Y"}

func TestRenderer_RenderTable(t *testing.T) {
	rows := [][]string{
		{"{P-1}", "36.0", "86.4"},
		{"{P-2}", "-", "-"},
	}

	t.Run("table aligns columns under headers", func(t *testing.T) {
		r, out, _ := newTestRenderer(FormatTable)
		r.RenderTable(positionHeaders, rows)

		assert.Equal(t, "ID     X     Y\n{P-1}  36.0  86.4\n{P-2}  -     -\n", out.String())
	})

	t.Run("plain drops headers", func(t *testing.T) {
		r, out, _ := newTestRenderer(FormatPlain)
		r.RenderTable(positionHeaders, rows)

		assert.Equal(t, "{P-1}\t36.0\t86.4\n{P-2}\t-\t-\n", out.String())
	})

	t.Run("json keys rows by lowercased header", func(t *testing.T) {
		r, out, _ := newTestRenderer(FormatJSON)
		r.RenderTable(positionHeaders, rows)

		var got []map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, map[string]string{"id": "{P-1}", "x": "36.0", "y": "86.4"}, got[0])
	})

	t.Run("json skips missing cells", func(t *testing.T) {
		r, out, _ := newTestRenderer(FormatJSON)
		r.RenderTable(positionHeaders, [][]string{{"{P-1}"}})

		var got []map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, map[string]string{"id": "{P-1}"}, got[0])
	})

	t.Run("empty table", func(t *testing.T) {
		r, out, _ := newTestRenderer(FormatTable)
		r.RenderTable(positionHeaders, nil)
		assert.Equal(t, "ID  X  Y\n", out.String())

		r, out, _ = newTestRenderer(FormatJSON)
		r.RenderTable(positionHeaders, nil)
		assert.Equal(t, "null\n", out.String())
	})
}

func TestRenderer_RenderKeyValue(t *testing.T) {
	tests := []struct {
		format Format
		value  string
		want   string
	}{
		{FormatTable, "{P-1}", "Page: {P-1}\n"},
		{FormatPlain, "{P-1}", "Page\t{P-1}\n"},
		{FormatJSON, "{P-1}", `{"Page":"{P-1}"}` + "\n"},
		{FormatJSON, `say "hi"`, `{"Page":"say \"hi\""}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			r, out, _ := newTestRenderer(tt.format)
			r.RenderKeyValue("Page", tt.value)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRenderer_RenderJSON(t *testing.T) {
	r, out, _ := newTestRenderer(FormatJSON)

	require.NoError(t, r.RenderJSON(struct {
		PageID string `json:"pageId"`
		Lines  int    `json:"lines"`
	}{"{P-1}", 3}))
	assert.Equal(t, "{\n  \"pageId\": \"{P-1}\",\n  \"lines\": 3\n}\n", out.String())

	out.Reset()
	require.NoError(t, r.RenderJSON([]string{}))
	assert.Equal(t, "[]\n", out.String())

	assert.Error(t, r.RenderJSON(make(chan int)))
}

func TestRenderer_Messages(t *testing.T) {
	r, out, errOut := newTestRenderer(FormatTable)

	r.RenderText("<one:Page/>")
	r.Success("Inserted 2 line(s)")
	r.Warning("Insertion cancelled.")
	r.Error("no page is currently being viewed")

	assert.Equal(t, "<one:Page/>\n✓ Inserted 2 line(s)\n", out.String())
	assert.Equal(t, "! Insertion cancelled.\n✗ no page is currently being viewed\n", errOut.String())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	quiet := NewLogger(&buf, false, true)
	quiet.Debug("hidden")
	quiet.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	verbose := NewLogger(&buf, true, true)
	verbose.WithField("page_id", "P").Debug("details")
	assert.Contains(t, buf.String(), "details")
	assert.Contains(t, buf.String(), "page_id=P")
}
