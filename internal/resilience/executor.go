// Package resilience wraps persistence-backed operation bodies with
// bounded retry on transient storage faults. Business failures travel
// as failed envelopes and are never retried; only an unexpected error
// from the body triggers another attempt.
package resilience

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"orgboard/internal/response"
	"orgboard/pkg/metrics"
)

type Executor struct {
	backoff []time.Duration
	logger  *zap.Logger
}

func New(logger *zap.Logger) *Executor {
	return NewWithBackoff(logger, 5*time.Second, 15*time.Second, 30*time.Second)
}

func NewWithBackoff(logger *zap.Logger, steps ...time.Duration) *Executor {
	return &Executor{backoff: steps, logger: logger}
}

// Transient reports whether err looks like a recoverable storage fault
// (timeout or lost connection) rather than a business or programming
// error.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

// Do runs body, retrying it after each transient fault with the fixed
// backoff steps, and returns the body's envelope on success. Once the
// steps are exhausted, or on a non-transient fault, the error is
// surfaced as a 500 envelope. Bodies are re-executed whole, so only
// idempotent bodies (reads, id-keyed updates and deletes) belong here;
// creates go through Once.
func Do[T any](ctx context.Context, e *Executor, op string, body func(context.Context) (response.Response[T], error)) response.Response[T] {
	start := time.Now()
	for attempt := 0; ; attempt++ {
		resp, err := body(ctx)
		if err == nil {
			observe(op, resp.StatusCode, start)
			return resp
		}
		if attempt >= len(e.backoff) || !Transient(err) {
			e.logger.Error("operation failed",
				zap.String("operation", op),
				zap.Int("attempts", attempt+1),
				zap.Error(err),
			)
			observe(op, http.StatusInternalServerError, start)
			return response.Fail[T](err.Error(), http.StatusInternalServerError)
		}

		wait := e.backoff[attempt]
		e.logger.Warn("transient fault, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
		metrics.OperationRetries.WithLabelValues(op).Inc()

		if !sleep(ctx, wait) {
			observe(op, http.StatusInternalServerError, start)
			return response.Fail[T](ctx.Err().Error(), http.StatusInternalServerError)
		}
	}
}

// Once runs body exactly once, mapping an unexpected error to a 500
// envelope. Used for create bodies, which are not safe to re-execute
// after a slow-but-committed write.
func Once[T any](ctx context.Context, e *Executor, op string, body func(context.Context) (response.Response[T], error)) response.Response[T] {
	start := time.Now()
	resp, err := body(ctx)
	if err != nil {
		e.logger.Error("operation failed",
			zap.String("operation", op),
			zap.Error(err),
		)
		observe(op, http.StatusInternalServerError, start)
		return response.Fail[T](err.Error(), http.StatusInternalServerError)
	}
	observe(op, resp.StatusCode, start)
	return resp
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func observe(op string, status int, start time.Time) {
	metrics.OperationDuration.
		WithLabelValues(op, strconv.Itoa(status)).
		Observe(time.Since(start).Seconds())
}
