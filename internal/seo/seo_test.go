package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plettj/lichess.ai/internal/content"
)

func testMetadata() content.Metadata {
	return content.Metadata{
		BaseURL:     "https://lichess.ai",
		Title:       "Lichess.ai",
		Description: "A machine learning analysis of the lichess.org public database.",
		SiteName:    "lichess.ai",
		Locale:      "en_US",
		Type:        "website",
		OpenGraph: content.OpenGraph{
			Title: "A machine learning analysis of the lichess.org public database.",
		},
		Image: content.Image{Path: "/static/assets/preview.png", Alt: "Lichess.org's preview tile"},
	}
}

func TestBuildResolvesAbsoluteURLs(t *testing.T) {
	meta := Build(testMetadata(), "")

	require.Equal(t, "Lichess.ai", meta.Title)
	require.Equal(t, "https://lichess.ai/", meta.Canonical)
	require.Equal(t, "https://lichess.ai", meta.OG.URL)
	require.Equal(t, "https://lichess.ai/static/assets/preview.png", meta.OG.Image)
	require.Equal(t, meta.OG.Image, meta.Twitter.Image)
	require.Equal(t, "lichess.ai", meta.OG.SiteName)
	require.Equal(t, "en_US", meta.OG.Locale)
	require.Equal(t, "summary_large_image", meta.Twitter.Card)
	// description falls back to the document description when open_graph omits it
	require.Equal(t, "A machine learning analysis of the lichess.org public database.", meta.OG.Description)
}

func TestBuildHonoursBaseURLOverride(t *testing.T) {
	meta := Build(testMetadata(), "https://preview.example.org/")

	require.Equal(t, "https://preview.example.org/", meta.Canonical)
	require.Equal(t, "https://preview.example.org/static/assets/preview.png", meta.OG.Image)
}

func TestWithTitle(t *testing.T) {
	meta := Build(testMetadata(), "")

	require.Equal(t, meta, meta.WithTitle(""))
	require.Equal(t, meta, meta.WithTitle("Lichess.ai"))

	sub := meta.WithTitle("Page not found")
	require.Equal(t, "Page not found | Lichess.ai", sub.Title)
	require.Equal(t, "noindex", sub.Robots)
	require.Equal(t, "Lichess.ai", meta.Title, "original must not change")
}

func TestAbsolute(t *testing.T) {
	require.Equal(t, "https://cdn.example.org/a.png", Absolute("https://lichess.ai", "https://cdn.example.org/a.png"))
	require.Equal(t, "https://lichess.ai/static/a.png", Absolute("https://lichess.ai/", "static/a.png"))
	require.Equal(t, "https://lichess.ai/static/a.png", Absolute("https://lichess.ai", "/static/a.png"))
}

func TestScriptEscapesMarkup(t *testing.T) {
	payload := WebSite("</script><b>", "https://lichess.ai", "")
	js := string(Script(payload))
	require.NotContains(t, js, "</script>")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	require.Equal(t, "</script><b>", decoded["name"])
	require.Equal(t, "WebSite", decoded["@type"])
}

func TestCreativeWorkListsAuthors(t *testing.T) {
	work := CreativeWork("Lichess.ai", "https://lichess.ai", []map[string]any{
		Person("Josiah Plett", "https://github.com/plettj"),
		Person("Trevor Du", ""),
	})
	authors, ok := work["author"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, authors, 2)
	require.Equal(t, "https://github.com/plettj", authors[0]["url"])
	_, hasURL := authors[1]["url"]
	require.False(t, hasURL)
}
