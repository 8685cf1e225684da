package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/net/netutil"

	"github.com/GPTx-global/guru-dataoracle/app"
	"github.com/GPTx-global/guru-dataoracle/oracle/health"
	gurutypes "github.com/GPTx-global/guru-dataoracle/types"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// Backend is the execution environment the server exposes.
type Backend interface {
	types.QueryServer

	Deliver(ctx context.Context, msg types.Msg) (*sdk.Result, int64, error)
	Height() int64
	ExportGenesis() *types.GenesisState
	AddEventListener(l app.EventListener)
}

var _ Backend = (*app.App)(nil)

// Server serves the registry over HTTP and streams committed events over
// WebSocket.
type Server struct {
	cfg     Config
	chainID string
	logger  log.Logger

	backend  Backend
	checker  *health.Checker
	metrics  *telemetry.Metrics
	validate *validator.Validate

	router *mux.Router
	hub    *Hub

	listener net.Listener
	server   *http.Server
}

// New creates the server and subscribes its event hub to backend commits.
// checker and metrics may be nil.
func New(cfg Config, chainID string, backend Backend, checker *health.Checker, metrics *telemetry.Metrics, logger log.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		chainID:  chainID,
		logger:   logger.With("module", "api"),
		backend:  backend,
		checker:  checker,
		metrics:  metrics,
		validate: validator.New(),
		router:   mux.NewRouter(),
	}
	s.hub = NewHub(s.logger)
	backend.AddEventListener(s.hub.Broadcast)

	s.routes()
	return s
}

// Handler returns the root handler with CORS and request middleware applied.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", gurutypes.CallerHeader},
		ExposedHeaders:   []string{gurutypes.RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(s.router)
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	if s.cfg.MaxOpenConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxOpenConnections)
	}

	s.listener = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting API server", "address", ln.Addr().String())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server stopped", "err", err)
		}
	}()
	return nil
}

// Addr returns the listening address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully shuts down the HTTP server and closes WebSocket clients.
func (s *Server) Shutdown() error {
	s.hub.Close()
	if s.server == nil {
		return nil
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = ShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Shutting down API server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}
	return nil
}
