// Package server hosts the HTTP listener and the request handling
// chain behind it.
package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/tilt-dev/simpleserve/internal/portdiag"
	"github.com/tilt-dev/simpleserve/pkg/api"
)

// Server owns the listening socket. The lifecycle is Listen, then
// Serve, then Stop.
type Server struct {
	host  string
	port  int
	stats *Stats

	httpServer *http.Server
	listener   net.Listener
}

// New assembles the handler chain for the given config. It does no
// I/O; the socket is acquired by Listen. Access lines are written to
// accessLog.
func New(cfg *api.Server, accessLog io.Writer) *Server {
	stats := newStats()

	var handler http.Handler = newHandler(stats)
	if cfg.RateLimit != nil && cfg.RateLimit.RequestsPerSecond > 0 {
		handler = newRateLimit(cfg.RateLimit, stats, handler)
	}
	handler = newAccessLog(accessLog, handler)

	return &Server{
		host:  cfg.Host,
		port:  cfg.Port,
		stats: stats,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 3 * time.Second,
		},
	}
}

// Stats exposes the request counters.
func (s *Server) Stats() *Stats {
	return s.stats
}

// Listen binds the TCP socket. With port 0 the kernel picks one; Port
// reports the result.
func (s *Server) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		if owner, ok := portdiag.ListenerOnPort(s.port); ok {
			return errors.Wrapf(err, "listening on %s (port held by %s)", addr, owner)
		}
		return errors.Wrapf(err, "listening on %s", addr)
	}
	s.listener = l
	s.port = l.Addr().(*net.TCPAddr).Port
	klog.V(2).Infof("listening on %s", l.Addr())
	return nil
}

// Port returns the port the server is bound to. Only meaningful after
// Listen.
func (s *Server) Port() int {
	return s.port
}

// Serve runs the accept loop. It returns nil after a graceful Stop
// and the accept-loop error otherwise.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	err := s.httpServer.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop drains in-flight requests and releases the socket. ctx bounds
// the drain.
func (s *Server) Stop(ctx context.Context) error {
	klog.V(1).Infof("stopping: %s", s.stats.Summary())
	return s.httpServer.Shutdown(ctx)
}
