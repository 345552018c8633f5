package service

import (
	"context"
	"fmt"

	"tips-bot/pkg/workerpool"
)

// AsyncService runs blocking work on the shared pool so bot handlers only wait
// as long as their context allows.
type AsyncService struct {
	Pool *workerpool.WorkerPool
}

func NewAsyncService(pool *workerpool.WorkerPool) *AsyncService {
	return &AsyncService{Pool: pool}
}

func (a *AsyncService) SubmitAsync(ctx context.Context, fn func() (any, error)) (any, error) {
	resCh := make(chan workerpool.Result, 1)
	if err := a.Pool.Submit(ctx, workerpool.Task{Fn: fn, ResultC: resCh}); err != nil {
		return nil, err
	}
	select {
	case res := <-resCh:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run is SubmitAsync with a typed result.
func Run[T any](ctx context.Context, a *AsyncService, fn func() (T, error)) (T, error) {
	var zero T
	v, err := a.SubmitAsync(ctx, func() (any, error) { return fn() })
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("async result has type %T", v)
	}
	return out, nil
}
