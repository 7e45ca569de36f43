package resilience

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orgboard/internal/response"
)

func testExecutor() *Executor {
	return NewWithBackoff(zap.NewNop(), time.Millisecond, time.Millisecond, time.Millisecond)
}

func TestDoRetriesTransientFaults(t *testing.T) {
	e := testExecutor()
	attempts := 0
	resp := Do(context.Background(), e, "team.update", func(ctx context.Context) (response.Response[bool], error) {
		attempts++
		if attempts < 3 {
			return response.Response[bool]{}, context.DeadlineExceeded
		}
		return response.Ok(true), nil
	})

	require.True(t, resp.IsSuccess)
	assert.Equal(t, 3, attempts)
}

func TestDoGivesUpAfterBackoffSteps(t *testing.T) {
	e := testExecutor()
	attempts := 0
	resp := Do(context.Background(), e, "team.update", func(ctx context.Context) (response.Response[bool], error) {
		attempts++
		return response.Response[bool]{}, context.DeadlineExceeded
	})

	assert.Equal(t, 4, attempts) // initial try plus one per backoff step
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestDoDoesNotRetryUnexpectedErrors(t *testing.T) {
	e := testExecutor()
	attempts := 0
	resp := Do(context.Background(), e, "team.update", func(ctx context.Context) (response.Response[bool], error) {
		attempts++
		return response.Response[bool]{}, errors.New("duplicate key value violates unique constraint")
	})

	assert.Equal(t, 1, attempts)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "duplicate key value violates unique constraint", resp.Message)
}

func TestDoDoesNotRetryBusinessFailures(t *testing.T) {
	e := testExecutor()
	attempts := 0
	resp := Do(context.Background(), e, "board.get", func(ctx context.Context) (response.Response[bool], error) {
		attempts++
		return response.Fail[bool]("Board not found", http.StatusNotFound), nil
	})

	assert.Equal(t, 1, attempts)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Board not found", resp.Message)
}

func TestOnceNeverRetries(t *testing.T) {
	e := testExecutor()
	attempts := 0
	resp := Once(context.Background(), e, "team.create", func(ctx context.Context) (response.Response[bool], error) {
		attempts++
		return response.Response[bool]{}, context.DeadlineExceeded
	})

	assert.Equal(t, 1, attempts)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestDoStopsWhenContextCancelled(t *testing.T) {
	e := NewWithBackoff(zap.NewNop(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	resp := Do(ctx, e, "team.update", func(ctx context.Context) (response.Response[bool], error) {
		attempts++
		return response.Response[bool]{}, context.DeadlineExceeded
	})

	assert.Equal(t, 1, attempts)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestTransient(t *testing.T) {
	assert.False(t, Transient(nil))
	assert.False(t, Transient(errors.New("boom")))
	assert.False(t, Transient(context.Canceled))
	assert.True(t, Transient(context.DeadlineExceeded))
	assert.True(t, Transient(timeoutErr{}))
}
