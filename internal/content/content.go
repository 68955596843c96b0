package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/plettj/lichess.ai/internal/links"
)

const (
	siteFile     = "site.yaml"
	homeFile     = "home.md"
	notFoundFile = "notfound.md"
)

// Site is the complete hand-authored content, loaded once at startup.
type Site struct {
	Meta     Metadata
	Home     Page
	NotFound Page
}

// Metadata is the document-level information the layout publishes for every page.
type Metadata struct {
	BaseURL     string    `yaml:"base_url"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	SiteName    string    `yaml:"site_name"`
	Locale      string    `yaml:"locale"`
	Type        string    `yaml:"type"`
	OpenGraph   OpenGraph `yaml:"open_graph"`
	Image       Image     `yaml:"image"`
	Font        Font      `yaml:"font"`
	TopLoader   TopLoader `yaml:"toploader"`
}

// OpenGraph holds the social-preview title and description.
type OpenGraph struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Image is the social-preview image, addressed by site path.
type Image struct {
	Path string `yaml:"path"`
	Alt  string `yaml:"alt"`
}

// Font describes the display font provider.
type Font struct {
	Family     string `yaml:"family"`
	Variable   string `yaml:"variable"`
	Stylesheet string `yaml:"stylesheet"`
}

// TopLoader configures the page-transition progress bar.
type TopLoader struct {
	Color  string `yaml:"color"`
	Height int    `yaml:"height"`
}

// Page is a single static content view.
type Page struct {
	Title   string
	Authors []links.Link
	Actions []links.Link
	// Body is sanitised HTML rendered from markdown.
	Body template.HTML
}

type pageFrontMatter struct {
	Title   string       `yaml:"title"`
	Authors []links.Link `yaml:"authors"`
	Actions []links.Link `yaml:"actions"`
}

// ValidationError lists content fields that are missing or malformed.
type ValidationError struct {
	File   string
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("content: %s: missing or invalid fields [%s]", e.File, strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

var (
	markdown   = goldmark.New()
	bodyPolicy = newBodyPolicy()
)

// Load reads site.yaml, home.md and notfound.md from fsys.
func Load(fsys fs.FS) (Site, error) {
	meta, err := loadMetadata(fsys)
	if err != nil {
		return Site{}, err
	}
	home, err := loadPage(fsys, homeFile)
	if err != nil {
		return Site{}, err
	}
	notFound, err := loadPage(fsys, notFoundFile)
	if err != nil {
		return Site{}, err
	}
	return Site{Meta: meta, Home: home, NotFound: notFound}, nil
}

func loadMetadata(fsys fs.FS) (Metadata, error) {
	raw, err := fs.ReadFile(fsys, siteFile)
	if err != nil {
		return Metadata{}, fmt.Errorf("content: read %s: %w", siteFile, err)
	}
	var meta Metadata
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, fmt.Errorf("content: parse %s: %w", siteFile, err)
	}
	meta.BaseURL = strings.TrimRight(strings.TrimSpace(meta.BaseURL), "/")

	var invalid []string
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			invalid = append(invalid, field)
		}
	}
	require("title", meta.Title)
	require("description", meta.Description)
	require("site_name", meta.SiteName)
	require("image.path", meta.Image.Path)
	if !absoluteHTTPURL(meta.BaseURL) {
		invalid = append(invalid, "base_url")
	}
	if meta.Font.Stylesheet != "" && !absoluteHTTPURL(meta.Font.Stylesheet) {
		invalid = append(invalid, "font.stylesheet")
	}
	if meta.TopLoader.Height < 0 {
		invalid = append(invalid, "toploader.height")
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return Metadata{}, &ValidationError{File: siteFile, fields: invalid}
	}
	if meta.Locale == "" {
		meta.Locale = "en_US"
	}
	if meta.Type == "" {
		meta.Type = "website"
	}
	return meta, nil
}

func loadPage(fsys fs.FS, name string) (Page, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Page{}, fmt.Errorf("content: read %s: %w", name, err)
	}
	fm, body := splitFrontMatter(string(raw))
	var front pageFrontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", name, err)
		}
	}

	var invalid []string
	if strings.TrimSpace(front.Title) == "" {
		invalid = append(invalid, "title")
	}
	invalid = append(invalid, invalidLinks("authors", front.Authors)...)
	invalid = append(invalid, invalidLinks("actions", front.Actions)...)
	if len(invalid) > 0 {
		return Page{}, &ValidationError{File: name, fields: invalid}
	}

	html, err := RenderMarkdown(body)
	if err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", name, err)
	}
	return Page{
		Title:   strings.TrimSpace(front.Title),
		Authors: front.Authors,
		Actions: front.Actions,
		Body:    html,
	}, nil
}

// RenderMarkdown converts markdown to sanitised HTML. Raw HTML in the source is dropped;
// links keep only their href and open in the same tab.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(bodyPolicy.SanitizeBytes(buf.Bytes())), nil
}

func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "em", "strong", "code", "ul", "ol", "li")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.AllowRelativeURLs(true)
	policy.RequireParseableURLs(true)
	return policy
}

func invalidLinks(field string, in []links.Link) []string {
	var invalid []string
	for i, l := range in {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		if strings.TrimSpace(l.Label) == "" {
			invalid = append(invalid, prefix+".label")
		}
		if _, err := url.Parse(strings.TrimSpace(l.Href)); err != nil || strings.TrimSpace(l.Href) == "" {
			invalid = append(invalid, prefix+".href")
		}
	}
	return invalid
}

func absoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
