package http_server

import (
	"context"
	"net/http"
	"time"
)

const defaultShutdownTimeout = 30 * time.Second

type Server struct {
	server          *http.Server
	notify          chan error
	shutdownTimeout time.Duration
}

func New(handler http.Handler, address string, shutdownTimeout time.Duration) *Server {
	httpServer := &http.Server{
		Handler:           handler,
		Addr:              address,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		server:          httpServer,
		notify:          make(chan error, 1),
		shutdownTimeout: shutdownTimeout,
	}

	s.start()

	return s
}

func (s *Server) start() {
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			s.notify <- err
		}
		close(s.notify)
	}()
}

// Notify yields a listen error, or is closed after a clean shutdown.
func (s *Server) Notify() <-chan error {
	return s.notify
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
