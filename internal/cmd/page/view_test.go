package page

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/notehighlight-cli/internal/pipeline"
)

func TestRunView_CurrentPage(t *testing.T) {
	client, infos := newHost(t, hierarchyXML, map[string]string{"{P-2}": contentXML})
	g, stdout := testGlobals(t, "")

	err := runView(context.Background(), "", &viewOptions{globalOptions: g}, client)
	require.NoError(t, err)

	assert.Equal(t, "basic", infos["{P-2}"])
	out := stdout.String()
	assert.Contains(t, out, "ID: {P-2}")
	assert.Contains(t, out, "first line\n**second**")
}

func TestRunView_ByID(t *testing.T) {
	other := strings.ReplaceAll(contentXML, "{P-2}", "{P-1}")
	client, infos := newHost(t, hierarchyXML, map[string]string{"{P-1}": other})
	g, stdout := testGlobals(t, "plain")

	err := runView(context.Background(), "{P-1}", &viewOptions{globalOptions: g}, client)
	require.NoError(t, err)

	assert.Contains(t, infos, "{P-1}")
	assert.Equal(t, "first line\n**second**\n", stdout.String())
}

func TestRunView_RawFormat(t *testing.T) {
	client, _ := newHost(t, hierarchyXML, map[string]string{"{P-2}": contentXML})
	g, stdout := testGlobals(t, "")

	err := runView(context.Background(), "{P-2}", &viewOptions{globalOptions: g, raw: true}, client)
	require.NoError(t, err)

	assert.Equal(t, contentXML+"\n", stdout.String())
}

func TestRunView_JSONOutput(t *testing.T) {
	client, _ := newHost(t, hierarchyXML, map[string]string{"{P-2}": contentXML})
	g, stdout := testGlobals(t, "json")

	err := runView(context.Background(), "{P-2}", &viewOptions{globalOptions: g}, client)
	require.NoError(t, err)

	var got pageText
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "{P-2}", got.ID)
	assert.Equal(t, []string{
		`<body style="font-family:Consolas">first line</body>`,
		`<body style="font-family:Consolas"><strong>second</strong></body>`,
	}, got.Text)
	assert.Equal(t, "first line\n**second**", got.Markdown)
}

func TestRunView_EmptyPage(t *testing.T) {
	empty := `<one:Page xmlns:one="` + oneNS + `" ID="{P-2}"/>`
	client, _ := newHost(t, hierarchyXML, map[string]string{"{P-2}": empty})
	g, stdout := testGlobals(t, "")

	err := runView(context.Background(), "{P-2}", &viewOptions{globalOptions: g}, client)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "(No content)")
}

func TestRunView_NotFound(t *testing.T) {
	client, _ := newHost(t, hierarchyXML, nil)
	g, _ := testGlobals(t, "")

	err := runView(context.Background(), "{missing}", &viewOptions{globalOptions: g}, client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get page: page not found")
}

func TestRunView_NoCurrentPage(t *testing.T) {
	hierarchy := strings.Replace(hierarchyXML, ` isCurrentlyViewed="true"`, "", 1)
	client, _ := newHost(t, hierarchy, nil)
	g, _ := testGlobals(t, "")

	err := runView(context.Background(), "", &viewOptions{globalOptions: g}, client)
	assert.ErrorIs(t, err, pipeline.ErrNoCurrentPage)
}

func TestRunView_MalformedPage(t *testing.T) {
	client, _ := newHost(t, hierarchyXML, map[string]string{"{P-2}": "<one:Page"})
	g, _ := testGlobals(t, "")

	err := runView(context.Background(), "{P-2}", &viewOptions{globalOptions: g}, client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read page")
}
