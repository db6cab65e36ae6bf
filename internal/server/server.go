// Package server exposes a dict.Registry over HTTP: one-shot scans as JSON
// requests and streaming scans over websockets.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/sarthakjha889/go-aho-corasick/dict"
	"github.com/sarthakjha889/go-aho-corasick/internal/config"
	"github.com/sarthakjha889/go-aho-corasick/pkg/logger"
)

type Server struct {
	router   *gin.Engine
	reg      *dict.Registry
	log      logger.Logger
	cfg      config.Server
	limiter  *rate.Limiter
	upgrader websocket.Upgrader
}

func New(log logger.Logger, reg *dict.Registry, cfg config.Server) *Server {
	s := &Server{
		router: gin.New(),
		reg:    reg,
		log:    logger.NewPrefixedLogger(log, "http"),
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	s.router.Use(gin.Recovery(), s.logRequests())
	s.router.GET("/healthz", s.health)

	// profiling is only exposed behind a token
	metrics := gin.WrapH(promhttp.Handler())
	if cfg.AuthToken != "" {
		admin := s.router.Group("/", gin.BasicAuth(gin.Accounts{
			"admin": cfg.AuthToken,
		}))
		pprof.Register(admin)
		admin.GET("/metrics", metrics)
	} else {
		s.router.GET("/metrics", metrics)
	}

	v1 := s.router.Group("/v1", s.rateLimit())
	v1.GET("/dictionaries", s.listDictionaries)
	v1.GET("/dictionaries/:name", s.getDictionary)
	v1.POST("/dictionaries/:name/scan", s.scan)
	v1.GET("/dictionaries/:name/stream", s.stream)

	return s
}

// Handler returns the routes for use with an external http.Server.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := s.newServer(s.cfg.Addr, s.router)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
