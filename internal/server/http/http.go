package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
)

const (
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

type Config struct {
	Addr         string        `mapstructure:"addr"`
	AuthToken    string        `mapstructure:"auth_token"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type Server struct {
	public       *http.Server
	publicRouter *chi.Mux

	handler *Handler
}

func New(cfg Config, handler *Handler) *Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	return &Server{
		public: &http.Server{
			Addr:         cfg.Addr,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		publicRouter: chi.NewRouter(),

		handler: handler,
	}
}

// Handler registers the public routes and returns the router. It must be
// called at most once per Server.
func (s *Server) Handler(mws ...func(http.Handler) http.Handler) http.Handler {
	s.registerPublicRoutes(mws...)
	return s.publicRouter
}

func (s *Server) ServePublic(mws ...func(http.Handler) http.Handler) error {
	s.public.Handler = s.Handler(mws...)
	return s.public.ListenAndServe()
}

func (s *Server) ShutdownPublic(ctx context.Context) error {
	if err := s.public.Shutdown(ctx); err != nil {
		return s.public.Close()
	}
	return nil
}

func (s *Server) registerPublicRoutes(middlewares ...func(http.Handler) http.Handler) {
	s.publicRouter.Use(middlewares...)
	s.publicRouter.Get("/_/ready", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	s.publicRouter.Route("/titles/{titleID}", func(r chi.Router) {
		r.Use(s.handler.authenticate)
		r.Post("/installs", s.handler.Install)
		r.Post("/purchases", s.handler.Purchase)
	})
}
