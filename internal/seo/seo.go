package seo

import (
	"net/url"
	"strings"

	"github.com/plettj/lichess.ai/internal/content"
)

// OpenGraph holds the https://ogp.me/ fields rendered into the document head.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	ImageAlt    string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

// Twitter holds the twitter:* card fields.
type Twitter struct {
	Card        string
	Title       string
	Description string
	Image       string
}

// Meta is the head metadata for a rendered page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
}

// Build derives page metadata from the site content. baseURL overrides the
// canonical URL from the content file when non-empty; relative image paths are
// resolved against it.
func Build(meta content.Metadata, baseURL string) Meta {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = meta.BaseURL
	}
	image := Absolute(base, meta.Image.Path)
	ogTitle := firstNonEmpty(meta.OpenGraph.Title, meta.Title)
	ogDescription := firstNonEmpty(meta.OpenGraph.Description, meta.Description)

	return Meta{
		Title:       meta.Title,
		Description: meta.Description,
		Canonical:   base + "/",
		Robots:      "index, follow",
		OG: OpenGraph{
			Title:       ogTitle,
			Description: ogDescription,
			Image:       image,
			ImageAlt:    meta.Image.Alt,
			Type:        meta.Type,
			URL:         base,
			SiteName:    meta.SiteName,
			Locale:      meta.Locale,
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       ogTitle,
			Description: ogDescription,
			Image:       image,
		},
	}
}

// WithTitle returns a copy of m for a sub-page titled title.
func (m Meta) WithTitle(title string) Meta {
	if title == "" || title == m.Title {
		return m
	}
	m.Title = title + " | " + m.Title
	m.Robots = "noindex"
	return m
}

// Absolute resolves ref against base. Absolute refs are returned unchanged.
func Absolute(base, ref string) string {
	ref = strings.TrimSpace(ref)
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() {
		return ref
	}
	b, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
