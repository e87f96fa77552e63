package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCmd_HasFlags(t *testing.T) {
	flag := renderCmd.Flags().Lookup("query")
	require.NotNil(t, flag)
	assert.Equal(t, "q", flag.Shorthand)
	assert.NotNil(t, renderCmd.Flags().Lookup("compact"))
	assert.NotNil(t, renderCmd.Flags().Lookup("output"))
}

func TestRenderCmd_WritesFilteredPage(t *testing.T) {
	dir, data := setupTestEnv(t)
	out := filepath.Join(dir, "site", "index.html")

	stdout, err := execute(t, dir, "--data", data, "render", "-q", "sea", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Rendered 2 items to "+out)

	page, err := os.ReadFile(out)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page)))
	require.NoError(t, err)
	assert.Equal(t, "Studio", doc.Find("h1.pageTitle").Text())
	assert.Equal(t, 2, doc.Find(".card").Length())
	assert.Equal(t, 0, doc.Find("form.search").Length())
}

func TestRenderCmd_MissingDocumentRendersEmptyPage(t *testing.T) {
	dir, _ := setupTestEnv(t)
	out := filepath.Join(dir, "out.html")

	_, err := execute(t, dir, "--data", filepath.Join(dir, "nope.json"), "render", "-o", out)
	require.NoError(t, err)

	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), "No sections/items found.")
}
