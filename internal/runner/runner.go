package runner

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// shutdownTimeout bounds graceful HTTP server shutdown.
const shutdownTimeout = 5 * time.Second

// Worker is a long-running background task.
type Worker interface {
	Start(ctx context.Context) error
}

// Runner starts background workers and HTTP servers together and stops on
// the first failure or on context cancellation. A listen failure surfaces as
// an error so the process can exit non-zero; worker exits caused by context
// cancellation are not failures.
type Runner struct {
	workers []Worker
	servers []*http.Server

	wg    sync.WaitGroup
	errCh chan error
}

// New creates an empty Runner.
func New() *Runner {
	return &Runner{errCh: make(chan error, 1)}
}

// AddWorker registers a background worker.
func (r *Runner) AddWorker(w Worker) {
	r.workers = append(r.workers, w)
}

// AddServer registers an HTTP server.
func (r *Runner) AddServer(srv *http.Server) {
	r.servers = append(r.servers, srv)
}

// Run starts everything registered and blocks until a failure, context
// cancellation, or all workers finishing on their own.
func (r *Runner) Run(ctx context.Context) error {
	for _, w := range r.workers {
		r.startWorker(ctx, w)
	}
	for _, srv := range r.servers {
		r.startServer(ctx, srv)
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		r.wg.Wait()
		return nil
	case err := <-r.errCh:
		return err
	case <-done:
		return nil
	}
}

func (r *Runner) startWorker(ctx context.Context, w Worker) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.fail(err)
		}
	}()
}

func (r *Runner) startServer(ctx context.Context, srv *http.Server) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		listenErr := make(chan error, 1)
		go func() {
			listenErr <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				r.fail(err)
			}
		case err := <-listenErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				r.fail(err)
			}
		}
	}()
}

// fail records the first error; later ones are dropped.
func (r *Runner) fail(err error) {
	select {
	case r.errCh <- err:
	default:
	}
}
