package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsTasks(t *testing.T) {
	wp := NewWorkerPool(3, 4)
	defer wp.Close()

	var n atomic.Int64
	results := make(chan Result, 20)
	for i := 0; i < 20; i++ {
		i := i
		require.NoError(t, wp.Submit(context.Background(), Task{
			Fn: func() (any, error) {
				n.Add(1)
				return i * 2, nil
			},
			ResultC: results,
		}))
	}
	sum := 0
	for i := 0; i < 20; i++ {
		r := <-results
		require.NoError(t, r.Err)
		sum += r.Value.(int)
	}
	assert.Equal(t, int64(20), n.Load())
	assert.Equal(t, 380, sum)
}

func TestWorkerPool_PanicBecomesError(t *testing.T) {
	wp := NewWorkerPool(1, 1)
	defer wp.Close()

	res := make(chan Result, 1)
	require.NoError(t, wp.Submit(context.Background(), Task{
		Fn:      func() (any, error) { panic("boom") },
		ResultC: res,
	}))
	r := <-res
	require.Error(t, r.Err)
	assert.Contains(t, r.Err.Error(), "boom")
}

func TestWorkerPool_CloseDrainsAndRejects(t *testing.T) {
	wp := NewWorkerPool(1, 8)
	var n atomic.Int64
	for i := 0; i < 5; i++ {
		require.NoError(t, wp.Submit(context.Background(), Task{Fn: func() (any, error) {
			time.Sleep(time.Millisecond)
			n.Add(1)
			return nil, nil
		}}))
	}
	wp.Close()
	wp.Close()
	assert.Equal(t, int64(5), n.Load())

	err := wp.Submit(context.Background(), Task{Fn: func() (any, error) { return nil, nil }})
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestWorkerPool_SubmitHonoursContext(t *testing.T) {
	wp := NewWorkerPool(1, 0)
	defer wp.Close()

	block := make(chan struct{})
	require.NoError(t, wp.Submit(context.Background(), Task{Fn: func() (any, error) {
		<-block
		return nil, nil
	}}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := wp.Submit(ctx, Task{Fn: func() (any, error) { return nil, nil }})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(block)
}
