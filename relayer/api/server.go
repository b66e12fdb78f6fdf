package api

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Server provides HTTP endpoints
type Server struct {
	logger  zerolog.Logger
	network Network
	store   MessageStore
	metrics http.Handler
	server  *http.Server
}

// NewServer creates a new Server instance. A nil metrics handler leaves
// /metrics unrouted.
func NewServer(logger zerolog.Logger, port int, network Network, messages MessageStore, metrics http.Handler) *Server {
	s := &Server{
		logger:  logger.With().Str("component", "query_server").Logger(),
		network: network,
		store:   messages,
		metrics: metrics,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.setupRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("query server is nil")
	}

	// Channel to signal server startup result
	startupChan := make(chan error, 1)

	go func() {
		// Bind first so a taken port is reported to the caller
		ln, err := net.Listen("tcp", s.server.Addr)
		if err != nil {
			startupChan <- fmt.Errorf("failed to bind to address %s: %w", s.server.Addr, err)
			return
		}
		startupChan <- nil

		err = s.server.Serve(ln)
		switch err {
		case nil:
			s.logger.Info().Msg("query server stopped normally")
		case http.ErrServerClosed:
			s.logger.Info().Msg("query server closed gracefully")
		default:
			s.logger.Error().Err(err).Msg("query server error")
		}
	}()

	select {
	case err := <-startupChan:
		if err != nil {
			return err
		}
		s.logger.Info().Str("addr", s.server.Addr).Msg("query server started")
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("server startup timeout")
	}
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}
