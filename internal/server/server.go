// Package server runs the accept loop.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/HMasataka/tinyhttpd/pkg/retry"
)

var ErrServerClosed = errors.New("server: listener closed")

//go:generate mockgen -source server.go -destination mock/server.go
type Acceptor interface {
	Accept() (net.Conn, error)
	Close() error
	Addr() net.Addr
}

type Options struct {
	Strategy Strategy
	Retry    retry.Config
}

func DefaultOptions() Options {
	return Options{
		Strategy: Serial{},
		Retry:    retry.DefaultConfig(),
	}
}

type Server struct {
	listener Acceptor
	handler  *Handler
	options  Options
}

func New(l Acceptor, h *Handler, options Options) *Server {
	if options.Strategy == nil {
		options.Strategy = Serial{}
	}
	if options.Retry == (retry.Config{}) {
		options.Retry = retry.DefaultConfig()
	}

	return &Server{
		listener: l,
		handler:  h,
		options:  options,
	}
}

// Serve accepts until ctx is cancelled, which closes the listener, and then
// waits for in-flight connections. It returns nil after cancellation and
// ErrServerClosed when the listener was closed from elsewhere.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		if err := s.listener.Close(); err != nil {
			slog.Debug("failed to close listener", "error", err)
		}
	})
	defer stop()
	defer s.options.Strategy.Wait()

	attempt := 0
	for {
		transition(ctx, StateIdle)
		transition(ctx, StateAccepting)

		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !retry.ShouldRetry(err) {
				return ErrServerClosed
			}

			wait := s.options.Retry.Next(attempt)
			attempt++
			slog.ErrorContext(ctx, "accept failed", "error", err, slog.Duration("retry_in", wait))

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(wait):
			}
			continue
		}
		attempt = 0

		slog.DebugContext(ctx, "accepted connection", slog.String("remote", conn.RemoteAddr().String()))
		s.options.Strategy.Dispatch(ctx, conn, s.handler.ServeConn)
	}
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
