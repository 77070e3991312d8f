package surface

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-gallery/utils"
)

func testLogger() *utils.Logger {
	return utils.NewLoggerTo(&bytes.Buffer{}, "error")
}

func TestMemoryKeepsLastSwap(t *testing.T) {
	m := &Memory{}
	ctx := context.Background()

	require.NoError(t, m.Replace(ctx, `<div class="card"></div>`))
	require.NoError(t, m.ReplaceText(ctx, "Failed"))

	assert.Equal(t, "Failed", m.Text)
	assert.Empty(t, m.HTML)
	assert.Equal(t, 2, m.Swaps)
}

func TestPageReplacesWholeContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "index.html")
	page := NewPage(path, "listings-container", testLogger())
	ctx := context.Background()

	require.NoError(t, page.Replace(ctx, `<div class="card">first</div>`))
	require.NoError(t, page.Replace(ctx, `<div class="card">second</div>`))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, `<div id="listings-container"><div class="card">second</div></div>`)
	assert.NotContains(t, doc, "first")
	assert.Contains(t, doc, "#listings-container")
}

func TestPageTextIsEscaped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	page := NewPage(path, "listings-container", testLogger())

	require.NoError(t, page.Replace(context.Background(), `<div class="card">x</div>`))
	require.NoError(t, page.ReplaceText(context.Background(), "Failed <b>badly</b>"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, `<div id="listings-container">Failed &lt;b&gt;badly&lt;/b&gt;</div>`)
	assert.NotContains(t, doc, `class="card"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestSwapScriptEncodesValues(t *testing.T) {
	script, err := swapScript("listings-container", "innerText", "it's \"quoted\"\n</script>")
	require.NoError(t, err)

	assert.Contains(t, script, `document.getElementById("listings-container")`)
	assert.Contains(t, script, `el.innerText = "it's \"quoted\"\n\u003c/script\u003e";`)
	assert.Contains(t, script, "return true;")
}

func TestChromeRequiresPageURL(t *testing.T) {
	c := NewChrome(ChromeOptions{ContainerID: "listings-container"}, testLogger())
	err := c.ReplaceText(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page url")
}

// Runs only where a Chrome binary is available.
func TestChromeSwapsLivePage(t *testing.T) {
	if os.Getenv("GALLERY_TEST_CHROME") == "" {
		t.Skip("set GALLERY_TEST_CHROME=1 to run against headless Chrome")
	}
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "index.html")
	require.NoError(t, NewPage(pagePath, "listings-container", testLogger()).ReplaceText(context.Background(), "Loading..."))

	snapshot := filepath.Join(dir, "rendered.html")
	c := NewChrome(ChromeOptions{
		PageURL:        (&url.URL{Scheme: "file", Path: pagePath}).String(),
		ContainerID:    "listings-container",
		ScreenshotPath: filepath.Join(dir, "shot.png"),
		SnapshotPath:   snapshot,
	}, testLogger())

	require.NoError(t, c.Replace(context.Background(), `<div class="card"><img src="missing.jpg" onerror="this.src='IMG_NA.png'; this.removeAttribute('alt');" alt="x"></div>`))

	data, err := os.ReadFile(snapshot)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `class="card"`))
	assert.NotContains(t, string(data), "Loading...")
	assert.FileExists(t, filepath.Join(dir, "shot.png"))
}
