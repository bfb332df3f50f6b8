package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/notehighlight-cli/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range config.EnvVars {
		t.Setenv(name, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg := &config.Config{
		URL:         "http://localhost:8642",
		Email:       "test@example.com",
		APIToken:    "test-token-value",
		Highlighter: "pygmentize-html",
		FontPolicy:  "omit",
	}
	require.NoError(t, cfg.Save(configPath))

	var buf bytes.Buffer
	require.NoError(t, runShow(&buf, configPath, true))

	out := buf.String()
	assert.Contains(t, out, "http://localhost:8642  (source: config)")
	assert.Contains(t, out, "test********alue")
	assert.NotContains(t, out, "test-token-value")
	assert.Contains(t, out, "pygmentize-html")
	assert.Contains(t, out, "omit")
	assert.Contains(t, out, "Config file: "+configPath)
	assert.NotContains(t, out, "(file not found)")
}

func TestRunShow_EnvOverride(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{URL: "http://file", Email: "a@b", APIToken: "x"}).Save(configPath))
	t.Setenv("NHL_FONT", "Fira Code")

	var buf bytes.Buffer
	require.NoError(t, runShow(&buf, configPath, true))

	assert.Contains(t, buf.String(), "Fira Code  (source: NHL_FONT)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)

	var buf bytes.Buffer
	err := runShow(&buf, filepath.Join(t.TempDir(), "config.yml"), true)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "(file not found)")
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", maskToken("abcd"))
	assert.Equal(t, "********", maskToken("abcdefgh"))
	assert.Equal(t, "abcd*efgh", maskToken("abcdXefgh"))
}

func TestValueSource(t *testing.T) {
	clearEnv(t)
	f := shownField{value: "v", inFile: "v", env: "NHL_FONT"}

	assert.Equal(t, "config", valueSource(f, true))
	assert.Equal(t, "-", valueSource(f, false))

	t.Setenv("NHL_FONT", "v")
	assert.Equal(t, "NHL_FONT", valueSource(f, true))

	assert.Equal(t, "-", valueSource(shownField{value: "v", inFile: "w"}, true))
}
