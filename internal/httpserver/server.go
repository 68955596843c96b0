package httpserver

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/plettj/lichess.ai/internal/handlers"
	mw "github.com/plettj/lichess.ai/internal/middleware"
)

// Config wires the site's HTTP stack.
type Config struct {
	Address string
	Logger  *zap.Logger
	Pages   *handlers.Pages
	// Static is served under /static/.
	Static fs.FS

	RequestTimeout    time.Duration
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// New returns an http.Server for cfg. The caller owns starting and stopping it.
func New(cfg Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           NewRouter(cfg),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// NewRouter builds the chi router with the middleware chain and routes.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chiMid.RealIP)
	r.Use(mw.Logger(cfg.Logger))
	r.Use(chiMid.Recoverer)
	r.Use(chiMid.GetHead)
	r.Use(chiMid.Compress(5))
	if cfg.RequestTimeout > 0 {
		r.Use(chiMid.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", handlers.Healthz)

	if cfg.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static", mw.Assets(cfg.Static)))
	}

	if cfg.Pages != nil {
		r.Get("/", cfg.Pages.Home)
		r.NotFound(cfg.Pages.NotFound)
	}
	return r
}
