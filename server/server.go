// Package server exposes goshogi games over HTTP. Games are stored as
// engine serializations and every command runs under a per-game lock.
package server

import (
	"context"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/icco/goshogi"
	"github.com/icco/gutil/logging"
	"github.com/microcosm-cc/bluemonday"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/unrolled/render"
	"github.com/unrolled/secure"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Renderer is a renderer for all occasions. These are our preferred default options.
	// See:
	//  - https://github.com/unrolled/render/blob/v1/README.md
	Renderer = render.New(render.Options{
		Charset:                   "UTF-8",
		DisableHTTPErrorRendering: false,
		IndentJSON:                false,
		IndentXML:                 true,
		Funcs:                     []template.FuncMap{},
	})

	log       = logging.Must(logging.NewLogger(goshogi.Service))
	ugcPolicy = bluemonday.StrictPolicy()
)

// Config is everything a Server needs besides its database.
type Config struct {
	// Rules are the rules games can be created with.
	Rules goshogi.RuleBook
	// Secret signs auth tokens.
	Secret []byte
	// Host is the public host the swagger UI points at.
	Host  string
	IsDev bool
	// Options are applied to every game the server builds.
	Options []goshogi.Option
}

// Server is the HTTP API.
type Server struct {
	cfg     Config
	store   *Store
	tokens  *Tokens
	locks   *keyedMutex
	metrics *metrics
}

// New builds a server on a migrated database.
func New(db *gorm.DB, cfg Config) (*Server, error) {
	if cfg.Rules == nil {
		cfg.Rules = goshogi.BuiltinRules()
	}
	if cfg.Host == "" {
		cfg.Host = "localhost:8080"
	}
	m, err := newMetrics()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:     cfg,
		store:   NewStore(db, cfg.Rules, cfg.Options...),
		tokens:  NewTokens(cfg.Secret),
		locks:   newKeyedMutex(),
		metrics: m,
	}, nil
}

// Store returns the server's game store.
func (s *Server) Store() *Store { return s.store }

// Shutdown flushes metrics.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.metrics.Shutdown(ctx)
}

// Handler returns the instrumented router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(log.Desugar()))

	r.Use(cors.New(cors.Options{
		AllowCredentials:   true,
		OptionsPassthrough: true,
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:     []string{"Link", "Location"},
		MaxAge:             300, // Maximum value not ignored by any of major browsers
	}).Handler)

	r.NotFound(s.notFoundHandler)

	// Stuff that does not ssl redirect
	r.Group(func(r chi.Router) {
		r.Use(secure.New(secure.Options{
			BrowserXssFilter:   true,
			ContentTypeNosniff: true,
			FrameDeny:          true,
			HostsProxyHeaders:  []string{"X-Forwarded-Host"},
			IsDevelopment:      s.cfg.IsDev,
			SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		}).Handler)

		r.Get("/healthz", s.healthCheckHandler)
		r.Handle("/metrics", s.metrics.handler())
	})

	// Everything that does SSL only
	r.Group(func(r chi.Router) {
		r.Use(secure.New(secure.Options{
			BrowserXssFilter:     true,
			ContentTypeNosniff:   true,
			FrameDeny:            true,
			HostsProxyHeaders:    []string{"X-Forwarded-Host"},
			IsDevelopment:        s.cfg.IsDev,
			SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
			SSLRedirect:          !s.cfg.IsDev,
			STSIncludeSubdomains: true,
			STSPreload:           true,
			STSSeconds:           315360000,
		}).Handler)

		// Public routes
		r.Get("/", s.rootHandler)
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("//"+s.cfg.Host+"/swagger/doc.json"),
		))
		r.Get("/rules", s.rulesHandler)
		r.Post("/auth/register", s.registerHandler)
		r.Post("/auth/login", s.loginHandler)

		// Public game viewing
		r.HandleFunc("/game/{slug}", s.getGameHandler)
		r.Get("/game/{slug}/kifu", s.kifuHandler)
		r.Get("/game/{slug}/legal", s.legalHandler)
		r.Get("/game/{slug}/{turn}", s.getTurnHandler)

		// Protected routes requiring authentication
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/game/new", s.newGameHandler)
			r.Post("/game/new", s.newGameHandler)
			r.Post("/game/{slug}/join", s.joinGameHandler)
			r.Post("/game/{slug}/command", s.commandHandler)
		})
	})

	return otelhttp.NewHandler(r, goshogi.Service, otelhttp.WithMeterProvider(s.metrics.provider))
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Healthy  string `json:"healthy"`
	Revision string `json:"revision"`
	Tag      string `json:"tag"`
	Branch   string `json:"branch"`
}

func (s *Server) render(w http.ResponseWriter, status int, v any) {
	if err := Renderer.JSON(w, status, v); err != nil {
		log.Errorw("failed to render JSON", zap.Error(err))
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, msg string) {
	s.render(w, status, ErrorResponse{Error: msg})
}

// renderErr maps err onto a status code and renders it.
func (s *Server) renderErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Errorw("request failed", zap.Error(err))
		s.renderError(w, status, "internal server error")
		return
	}
	s.renderError(w, status, err.Error())
}
