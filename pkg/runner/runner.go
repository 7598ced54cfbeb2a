package runner

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout задача не уложилась в отведенное время
var ErrTimeout = errors.New("runner: batch process timed out")

// RunWithTimeout выполняет fn с ограничением по времени.
// По истечении таймаута контекст fn отменяется и возвращается ErrTimeout.
func RunWithTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- fn(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%w after %v", ErrTimeout, timeout)
	}
}
