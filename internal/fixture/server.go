package fixture

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rshade/svccat/internal/catalog"
	"github.com/rshade/svccat/internal/fetch"
)

// Paths served by the fixture server.
const (
	ServicesPath = "/api/services"
	HealthPath   = "/healthz"
)

const shutdownTimeout = 5 * time.Second

// Server serves a fixed set of records.
type Server struct {
	records []catalog.ServiceRecord
	latency time.Duration
	logger  zerolog.Logger
	engine  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every catalog response by d, which makes debouncing and
// out-of-order responses visible in the browser.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a server over records.
func NewServer(records []catalog.ServiceRecord, opts ...Option) *Server {
	s := &Server{
		records: records,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.GET(ServicesPath, s.listServices)
	engine.GET(HealthPath, s.health)
	s.engine = engine
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// ready, when non-nil, receives the bound address once the listener is open.
func (s *Server) Run(ctx context.Context, addr string, ready func(net.Addr)) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	server := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	s.logger.Info().
		Str("addr", ln.Addr().String()).
		Int("services", len(s.records)).
		Msg("fixture server listening")
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving fixtures: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down fixture server: %w", err)
	}
	s.logger.Info().Msg("fixture server stopped")
	return nil
}

func (s *Server) listServices(c *gin.Context) {
	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-c.Request.Context().Done():
			return
		}
	}

	matches := Filter(s.records, c.Query(fetch.SearchParam))
	if matches == nil {
		matches = []catalog.ServiceRecord{}
	}
	c.JSON(http.StatusOK, matches)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"services": len(s.records),
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Str("request_id", c.GetHeader(fetch.HeaderRequestID)).
			Str("trace_id", c.GetHeader(fetch.HeaderTraceID)).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("fixture request")
	}
}
