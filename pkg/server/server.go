// Package server implements the CheckMate connection handler: accepting
// TCP clients, running each through the per-connection state machine in
// pkg/clientstate, and coordinating across connections through pkg/registry.
package server

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/DziubanMaciej/CheckMate/pkg/registry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Config holds the server's runtime options, parsed by pkg/config.
type Config struct {
	Port           uint16
	LogEveryStatus bool
	MetricsPort    uint16
}

// Server accepts connections and runs one handler goroutine per connection.
// The registry is the only state shared across handlers.
type Server struct {
	cfg      Config
	logger   *zap.Logger
	registry *registry.Registry
	metrics  *metrics
}

// New builds a Server. It does not bind a socket until Listen or Serve is
// called.
func New(cfg Config, logger *zap.Logger) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		registry: registry.New(),
		metrics:  newMetrics(),
	}
}

// Listen binds the server's TCP listener. Split out from Serve so tests (and
// callers that want to log/report the bound port, e.g. when Port is 0) can
// observe the real address before the accept loop starts.
func (s *Server) Listen() (net.Listener, error) {
	addr := net.JoinHostPort("", portString(s.cfg.Port))
	return net.Listen("tcp", addr)
}

// Serve binds the listener and runs the accept loop until ctx is canceled or
// the listener fails. A ShutdownServer reaction from any handler exits the
// whole process directly (spec §4.5) rather than returning through Serve.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()
	return s.ServeListener(ctx, ln)
}

// ServeListener runs the accept loop over an already-bound listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	if s.cfg.MetricsPort != 0 {
		go s.serveMetrics(s.cfg.MetricsPort)
	}

	s.logger.Sugar().Infof("Listening on %s", ln.Addr())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		go s.handleConnection(ctx, conn)
	}
}

func (s *Server) serveMetrics(port uint16) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := net.JoinHostPort("", portString(port))
	if err := http.ListenAndServe(addr, mux); err != nil {
		s.logger.Warn("metrics listener stopped", zap.Error(err))
	}
}

func portString(p uint16) string {
	return strconv.Itoa(int(p))
}
