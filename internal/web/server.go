// Package web is the upload/download shell around the invoice generator.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"commission/internal/invoice"
	"commission/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// Server runs the web shell
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// NewServer creates a server listening on addr
func NewServer(addr string, generator invoice.InvoiceGenerator) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(generator).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: logger.WithComponent("web-server"),
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	const op = "Run"

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("Web shell listening")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s: server failed: %w", op, err)
	case <-ctx.Done():
		s.log.Info().Msg("Shutting down web shell")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: shutdown failed: %w", op, err)
		}
		return nil
	}
}
