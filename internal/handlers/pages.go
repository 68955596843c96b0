package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/plettj/lichess.ai/internal/content"
	"github.com/plettj/lichess.ai/internal/observability"
	"github.com/plettj/lichess.ai/internal/seo"
	"github.com/plettj/lichess.ai/internal/view"
)

// Pages serves the site's pages. All view models are built once in NewPages and
// shared read-only between requests.
type Pages struct {
	renderer *view.Renderer

	homeLayout     view.LayoutData
	home           view.PageData
	notFoundLayout view.LayoutData
	notFound       view.PageData
}

// NewPages prepares view models from the site content. baseURL overrides the
// canonical URL in the content when non-empty.
func NewPages(renderer *view.Renderer, site content.Site, baseURL string) *Pages {
	meta := seo.Build(site.Meta, baseURL)
	return &Pages{
		renderer:       renderer,
		homeLayout:     view.NewLayoutData(site, meta),
		home:           view.NewPageData(site.Home),
		notFoundLayout: view.NewLayoutData(site, meta.WithTitle(site.NotFound.Title)),
		notFound:       view.NewPageData(site.NotFound),
	}
}

// HomePage is the landing page wrapped in the layout.
func (p *Pages) HomePage() templ.Component {
	return view.Layout(p.renderer, p.homeLayout, view.Home(p.renderer, p.home))
}

// NotFoundPage is the not-found content wrapped in the layout.
func (p *Pages) NotFoundPage() templ.Component {
	return view.Layout(p.renderer, p.notFoundLayout, view.NotFound(p.renderer, p.notFound))
}

// Home renders the landing page.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, p.HomePage())
}

// NotFound renders the not-found page with status 404.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusNotFound, p.NotFoundPage())
}

func serve(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c,
		templ.WithStatus(status),
		templ.WithErrorHandler(renderError),
	).ServeHTTP(w, r)
}

func renderError(r *http.Request, err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.FromContext(r.Context()).Error("render page",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	})
}
