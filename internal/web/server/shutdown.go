package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ShutdownHook runs after the server stopped accepting requests.
type ShutdownHook func(ctx context.Context) error

// Run serves until ctx is canceled, then shuts down gracefully within the
// configured ShutdownTimeout and runs hooks in reverse order. Callers wire
// OS signals into ctx with signal.NotifyContext.
func (s *Server) Run(ctx context.Context, hooks ...ShutdownHook) error {
	if err := s.Listen(); err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.Serve()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down server", zap.Duration("timeout", timeout))
	var errs []error
	if err := s.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		s.Close()
	}
	if err := <-serveErr; err != nil {
		errs = append(errs, err)
	}

	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](shutdownCtx); err != nil {
			s.logger.Warn("shutdown hook failed", zap.Error(err))
			errs = append(errs, fmt.Errorf("shutdown hook %d: %w", i, err))
		}
	}

	if len(errs) == 0 {
		s.logger.Info("server stopped")
	}
	return errors.Join(errs...)
}
