package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/live"
	"github.com/ziadkadry99/splatdocs/internal/nav"
	"github.com/ziadkadry99/splatdocs/internal/session"
	"github.com/ziadkadry99/splatdocs/internal/site"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
)

// purgeInterval is how often expired visitor sessions are removed.
const purgeInterval = time.Hour

// Config holds server configuration.
type Config struct {
	Port           int
	DefaultID      string   // subsection the root redirects to
	AllowAll       bool     // allow all CORS origins (dev mode)
	AllowedOrigins []string // extra CORS origins besides localhost
	RateLimitRPS   float64  // per-IP rate on POST and websocket routes; 0 disables
	RateLimitBurst int
	SessionMaxAge  time.Duration // sessions idle longer than this are purged; 0 disables
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Catalog  *content.Catalog
	Sessions session.Store
	Cookies  *session.Cookies
	Nav      *nav.Controller
	Live     *live.Host
	Store    vectordb.VectorStore // optional; nil disables semantic search
}

// Server is the live documentation server.
type Server struct {
	cfg        Config
	deps       Deps
	renderer   *site.Renderer
	pages      *site.Pages
	router     chi.Router
	httpServer *http.Server

	ctx         context.Context
	cancel      context.CancelFunc
	limiterDone <-chan struct{}
	purgeDone   chan struct{}
}

// New creates a server with all dependencies.
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Catalog == nil || deps.Nav == nil || deps.Cookies == nil {
		return nil, errors.New("server: catalog, nav controller and cookies are required")
	}
	if deps.Live == nil {
		deps.Live = live.NewHost(live.DefaultConfig())
	}
	if cfg.DefaultID == "" {
		cfg.DefaultID = deps.Catalog.Tree(deps.Nav.Defaults().Lang).First()
	}
	renderer := site.NewRenderer()
	pages, err := site.NewPages(deps.Catalog, renderer)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		deps:     deps,
		renderer: renderer,
		pages:    pages,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   append([]string{"http://localhost:*", "http://127.0.0.1:*"}, s.cfg.AllowedOrigins...),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	limit := func(next http.Handler) http.Handler { return next }
	if s.cfg.RateLimitRPS > 0 {
		limit, s.limiterDone = RateLimitMiddleware(s.ctx, s.cfg.RateLimitRPS, s.cfg.RateLimitBurst, 0)
	}

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// The websocket outlives any request timeout.
	r.With(limit).Get("/ws/widgets", s.deps.Live.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/", s.handleRoot)
		r.Get("/section/{id}", s.handleSection)
		r.Get("/static/{file}", s.handleStatic)
		r.Get("/widgets/{kind}.svg", s.handleWidgetSVG)

		r.With(limit).Post("/lang/toggle", s.handleLangToggle)
		r.With(limit).Post("/sidebar/{part}/toggle", s.handleSidebarToggle)

		r.Route("/api", func(r chi.Router) {
			r.Get("/tree", s.handleTree)
			r.Get("/section/{id}", s.handleAPISection)
			r.Get("/search-index", s.handleSearchIndex)
			r.Get("/search", s.handleSearch)
			r.With(limit).Post("/search", s.handleSearch)
		})
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port. It blocks until the
// server is shut down.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.startPurge()

	log.Printf("server: listening on %s", addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections, ends live widget sessions and
// waits for background work to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	s.deps.Live.Shutdown()
	s.cancel()
	if s.limiterDone != nil {
		<-s.limiterDone
	}
	if s.purgeDone != nil {
		<-s.purgeDone
	}
	return err
}

// startPurge removes idle visitor sessions periodically.
func (s *Server) startPurge() {
	if s.deps.Sessions == nil || s.cfg.SessionMaxAge <= 0 {
		return
	}
	s.purgeDone = make(chan struct{})
	go func() {
		defer close(s.purgeDone)
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for {
			s.purge()
			select {
			case <-ticker.C:
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

func (s *Server) purge() {
	n, err := s.deps.Sessions.Purge(s.ctx, time.Now().Add(-s.cfg.SessionMaxAge))
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("server: purging sessions: %v", err)
		}
		return
	}
	if n > 0 {
		log.Printf("server: purged %d idle session(s)", n)
	}
}
