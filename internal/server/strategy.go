package server

import (
	"context"
	"net"

	"github.com/gammazero/workerpool"
)

// ServeFunc handles one connection to completion.
type ServeFunc func(ctx context.Context, conn net.Conn)

// Strategy decides where a connection is served.
//
//go:generate mockgen -source strategy.go -destination mock/strategy.go
type Strategy interface {
	Dispatch(ctx context.Context, conn net.Conn, serve ServeFunc)
	// Wait blocks until every dispatched connection has been served.
	Wait()
}

var (
	_ Strategy = Serial{}
	_ Strategy = (*Pooled)(nil)
)

// Serial serves the connection on the accepting goroutine, so the next
// Accept happens only after the previous connection is closed.
type Serial struct{}

func (Serial) Dispatch(ctx context.Context, conn net.Conn, serve ServeFunc) {
	serve(ctx, conn)
}

func (Serial) Wait() {}

// Pooled serves connections on a fixed number of workers.
type Pooled struct {
	pool *workerpool.WorkerPool
}

func NewPooled(workers int) *Pooled {
	if workers < 1 {
		workers = 1
	}
	return &Pooled{pool: workerpool.New(workers)}
}

func (p *Pooled) Dispatch(ctx context.Context, conn net.Conn, serve ServeFunc) {
	p.pool.Submit(func() {
		serve(ctx, conn)
	})
}

// Wait drains queued connections and stops the workers. The pool cannot be
// reused afterwards.
func (p *Pooled) Wait() {
	p.pool.StopWait()
}
