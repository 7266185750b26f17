// Package server exposes curriculum generation and lesson chat over a small
// JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/edudesign/internal/curriculum"
	"github.com/abhisek/edudesign/internal/lessonchat"
	"github.com/abhisek/edudesign/internal/logger"
	"github.com/abhisek/edudesign/internal/persona"
)

// Designer generates curriculum designs.
type Designer interface {
	Generate(ctx context.Context, themePrompt string) (*curriculum.Design, error)
}

// Chatter answers lesson chat turns.
type Chatter interface {
	Chat(ctx context.Context, history []lessonchat.Message, newMessage, lessonContext string, p persona.Archetype) (string, error)
}

type Config struct {
	Addr              string
	RequestsPerMinute int
	Burst             int
	AllowedOrigins    []string

	// Timeout bounds each generative call. Zero leaves the client defaults.
	Timeout time.Duration
}

type Server struct {
	Engine *gin.Engine

	cfg Config
	log *logger.Logger
}

func New(cfg Config, designer Designer, chatter Chatter, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	h := &handlers{designer: designer, chatter: chatter, timeout: cfg.Timeout, log: log}
	return &Server{Engine: newRouter(cfg, h, log), cfg: cfg, log: log}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("http server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		s.log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
