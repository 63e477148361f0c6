// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания сигналов SIGINT/SIGTERM или отмены родительского контекста.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Hook - действие, выполняемое при завершении.
type Hook func(ctx context.Context) error

// ErrTimeout возвращается, если хуки не успели завершиться.
var ErrTimeout = errors.New("shutdown timeout exceeded")

// Wait блокируется до сигнала SIGINT/SIGTERM или отмены ctx, затем параллельно
// выполняет хуки в пределах timeout и возвращает объединенные ошибки хуков.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	return Run(timeout, hooks...)
}

// Run выполняет хуки параллельно с общим таймаутом.
func Run(timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		mu.Lock()
		errs = append(errs, ErrTimeout)
		mu.Unlock()
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
