package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/valyala/fastjson"
	"golang.org/x/sync/errgroup"

	"logpane/internal/app/store"
	"logpane/internal/config"
	"logpane/internal/config/logger"
)

// Server exposes the transformation log store over HTTP
type Server struct {
	addr      string
	store     store.Store
	log       logger.Logger
	parser    fastjson.ParserPool
	handler   http.Handler
	startTime time.Time
}

// NewServer creates the log service. Error reporting to Sentry is enabled when server.sentryDSN is set.
func NewServer(cfg *config.Config, st store.Store, log logger.Logger) *Server {
	log = log.WithComponent("SERVER")

	if cfg.Server.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Server.SentryDSN, Release: config.AppName + "@" + config.Version}); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Sentry, error reporting disabled")
		}
	}

	s := &Server{
		addr:      cfg.Server.Addr,
		store:     st,
		log:       log,
		startTime: time.Now(),
	}
	s.handler = gzhttp.GzipHandler(s.routes())

	return s
}

// Handler returns the compressed HTTP handler of the API
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), s.recovery(), s.accessLog())

	r.GET("/api/health", s.handleHealth)

	logs := r.Group("/api/log/transformation/:testId")
	logs.GET("/count", s.handleCount)
	logs.GET("", s.handlePage)
	logs.POST("", s.handleIngest)
	logs.DELETE("", s.handleDelete)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Msgf("Listening on %s", listener.Addr())

		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		s.log.Info().Msg("Shutting down")
		sentry.Flush(config.ShutdownTimeout)

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
