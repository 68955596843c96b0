package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"

	"github.com/plettj/lichess.ai/internal/content"
	"github.com/plettj/lichess.ai/internal/links"
	"github.com/plettj/lichess.ai/internal/seo"
)

// LayoutData is the document shell shared by every page.
type LayoutData struct {
	Lang      string
	Meta      seo.Meta
	JSONLD    []template.JS
	Font      content.Font
	FontCSS   template.CSS
	TopLoader content.TopLoader

	// Content is filled in by Layout with the rendered child.
	Content template.HTML
}

// PageData is the view model for a static content page.
type PageData struct {
	Title   string
	Body    template.HTML
	Credits []links.Credit
	Actions []links.Rendered
}

var cssVariable = regexp.MustCompile(`^--[a-zA-Z0-9-]+$`)

// NewLayoutData builds the shell for meta from the site content.
func NewLayoutData(site content.Site, meta seo.Meta) LayoutData {
	authors := make([]map[string]any, 0, len(site.Home.Authors))
	for _, a := range links.ResolveAll(site.Home.Authors) {
		authors = append(authors, seo.Person(a.Label, a.Href))
	}
	return LayoutData{
		Lang: htmlLang(meta.OG.Locale),
		Meta: meta,
		JSONLD: []template.JS{
			seo.Script(seo.WebSite(meta.OG.SiteName, meta.OG.URL, meta.Description)),
			seo.Script(seo.CreativeWork(meta.Title, meta.OG.URL, authors)),
		},
		Font:      site.Meta.Font,
		FontCSS:   fontCSS(site.Meta.Font),
		TopLoader: site.Meta.TopLoader,
	}
}

// NewPageData resolves the links of a content page.
func NewPageData(p content.Page) PageData {
	return PageData{
		Title:   p.Title,
		Body:    p.Body,
		Credits: links.Credits(links.ResolveAll(p.Authors)),
		Actions: links.ResolveAll(p.Actions),
	}
}

// Layout wraps child in the document shell. The child's output is placed in the
// content slot unchanged.
func Layout(r *Renderer, data LayoutData, child templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if child != nil {
			if err := child.Render(ctx, &buf); err != nil {
				return fmt.Errorf("view: render layout content: %w", err)
			}
		}
		data.Content = template.HTML(buf.String())
		return r.Execute(w, "layout", data)
	})
}

// Home renders the landing page content.
func Home(r *Renderer, data PageData) templ.Component {
	return Template(r, "home", data)
}

// NotFound renders the content shown for unknown paths.
func NotFound(r *Renderer, data PageData) templ.Component {
	return Template(r, "notfound", data)
}

// Template adapts a named template to templ.Component.
func Template(r *Renderer, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return r.Execute(w, name, data)
	})
}

func fontCSS(f content.Font) template.CSS {
	family := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', ';', '{', '}', '<', '>':
			return -1
		}
		return r
	}, strings.TrimSpace(f.Family))
	if family == "" || !cssVariable.MatchString(f.Variable) {
		return ""
	}
	return template.CSS(fmt.Sprintf(":root{%s:%q,ui-monospace,monospace}", f.Variable, family))
}

// htmlLang turns an Open Graph locale (en_US) into a BCP 47 tag (en-US).
func htmlLang(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return "en"
	}
	return strings.ReplaceAll(locale, "_", "-")
}
