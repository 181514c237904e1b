package mcp

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/careerhub/internal/api"
	"github.com/honeycarbs/careerhub/internal/config"
	"github.com/honeycarbs/careerhub/internal/mcp/tools"
	"github.com/honeycarbs/careerhub/pkg/logging"
)

const version = "0.2.0"

// Server exposes the MCP tools and the REST API on one HTTP listener
type Server struct {
	logger *logging.Logger
	config config.Config

	srv     *http.Server
	started atomic.Bool
}

// NewServer registers every tool backed by res and mounts the handlers
func NewServer(log *logging.Logger, cfg config.Config, res *Resources) *Server {
	mcpServer := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "careerhub",
		Version: version,
	}, nil)

	registered := tools.Register(mcpServer, log,
		tools.WithJobQuery(res.Jobs, res.Filters, cfg.PageSize),
		tools.WithJobRefresh(res.Jobs),
		tools.WithFilters(res.Filters),
		tools.WithAlerts(res.Alerts),
		tools.WithResume(),
		tools.WithSheetsExport(res.Sheets, res.Jobs, res.Jobs),
		tools.WithGraphInspect(res.Neo4j),
	)
	log.Info("mcp tools registered", "tools", registered)

	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp/stream", handler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	api.NewHandler(res.Jobs, res.Filters, cfg.PageSize, log).RegisterRoutes(mux)

	return &Server{
		logger: log.Named("server"),
		config: cfg,
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
