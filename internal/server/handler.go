package server

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/HMasataka/tinyhttpd/internal/request"
	"github.com/HMasataka/tinyhttpd/internal/resolver"
	"github.com/HMasataka/tinyhttpd/internal/response"
	"github.com/HMasataka/tinyhttpd/internal/wire"
)

type HandlerOptions struct {
	// ReadSize bounds the single read taken from each connection.
	ReadSize int
	// Zero timeouts mean a client can hold the connection forever.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func DefaultHandlerOptions() HandlerOptions {
	return HandlerOptions{
		ReadSize: 1024,
	}
}

// Handler turns one request into one response. It keeps no per-request state
// and may be shared between goroutines.
type Handler struct {
	codec    *wire.Codec
	resolver *resolver.Resolver
	builder  *response.Builder
	options  HandlerOptions
}

func NewHandler(codec *wire.Codec, r *resolver.Resolver, b *response.Builder, options HandlerOptions) *Handler {
	if options.ReadSize <= 0 {
		options.ReadSize = DefaultHandlerOptions().ReadSize
	}

	return &Handler{
		codec:    codec,
		resolver: r,
		builder:  b,
		options:  options,
	}
}

// Handle runs parse, resolve and build over raw and returns the bytes to
// write. It always returns a complete response.
func (h *Handler) Handle(ctx context.Context, raw []byte) []byte {
	transition(ctx, StateParsing)
	line, err := request.Parse(raw, h.codec)
	if err != nil {
		slog.WarnContext(ctx, "malformed request", "error", err)
		transition(ctx, StateBuilding)
		return h.builder.Malformed().Bytes()
	}

	slog.InfoContext(ctx, line.Unescaped(h.codec))

	transition(ctx, StateResolving)
	target := h.resolver.Resolve(ctx, line.Path)

	transition(ctx, StateBuilding)
	resp := h.builder.Build(ctx, target)

	slog.DebugContext(ctx, "response built",
		slog.String("kind", target.Kind.String()),
		slog.String("outcome", resp.Outcome.String()),
		slog.Int("body", len(resp.Body)),
	)

	return resp.Bytes()
}

// ServeConn reads once from conn, answers and closes it.
func (h *Handler) ServeConn(ctx context.Context, conn net.Conn) {
	defer func() {
		transition(ctx, StateClosing)
		if err := conn.Close(); err != nil {
			slog.DebugContext(ctx, "failed to close connection", "error", err)
		}
	}()

	transition(ctx, StateReading)
	if h.options.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(h.options.ReadTimeout)); err != nil {
			slog.DebugContext(ctx, "failed to set read deadline", "error", err)
		}
	}

	buf := make([]byte, h.options.ReadSize)
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		slog.WarnContext(ctx, "got a request with an empty body", "error", err)
	}

	out := h.Handle(ctx, buf[:n])

	transition(ctx, StateWriting)
	if h.options.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(h.options.WriteTimeout)); err != nil {
			slog.DebugContext(ctx, "failed to set write deadline", "error", err)
		}
	}

	if _, err := conn.Write(out); err != nil {
		slog.WarnContext(ctx, "failed to write response", "error", err)
	}
}

func transition(ctx context.Context, s State) {
	slog.DebugContext(ctx, "connection state", slog.String("state", s.String()))
}
