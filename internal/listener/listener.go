// Package listener owns the bound, listening socket.
package listener

import (
	"errors"
	"fmt"
	"net"
)

const (
	DefaultPort    = 8000
	MinimumBacklog = 5
)

var (
	ErrBind        = errors.New("unable to use specified port")
	ErrInvalidPort = errors.New("port out of range")
)

type Options struct {
	Port    int
	Backlog int
}

func DefaultOptions() Options {
	return Options{
		Port:    DefaultPort,
		Backlog: MinimumBacklog,
	}
}

// Listener accepts one connection at a time on 0.0.0.0:Port with address
// reuse enabled.
type Listener struct {
	ln      net.Listener
	options Options
}

func Open(options Options) (*Listener, error) {
	if options.Port < 0 || options.Port > 65535 {
		return nil, fmt.Errorf("%w: %w: %d", ErrBind, ErrInvalidPort, options.Port)
	}
	if options.Backlog < MinimumBacklog {
		options.Backlog = MinimumBacklog
	}

	ln, err := listen(options)
	if err != nil {
		return nil, fmt.Errorf("%w: port %d: %w", ErrBind, options.Port, err)
	}

	return &Listener{ln: ln, options: options}, nil
}

// Accept blocks until a client connects. After Close it returns an error
// matching net.ErrClosed.
func (l *Listener) Accept() (net.Conn, error) {
	return l.ln.Accept()
}

func (l *Listener) Close() error {
	return l.ln.Close()
}

func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Port is the bound port, which differs from Options.Port when that was 0.
func (l *Listener) Port() int {
	if addr, ok := l.ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return l.options.Port
}

func (l *Listener) Backlog() int {
	return l.options.Backlog
}
