// Package server wires the document handler, middleware and API docs into
// an http.Server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"github.com/OmaR-WezA/weza-docs/src/pkg/documents"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Port        int
	AdminSecret string
	// OpenAPISpec, when set, is served as /openapi.json with a swagger UI
	// mounted under /swagger/.
	OpenAPISpec []byte
}

func NewMux(handler *documents.Handler, opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/pdf-upload", requireAdminSecret(opts.AdminSecret, handler.Upload))
	mux.HandleFunc("GET /api/pdf-list", handler.List)
	mux.HandleFunc("GET /api/pdf-download", handler.Download)
	mux.HandleFunc("POST /api/pdf-delete", requireAdminSecret(opts.AdminSecret, handler.Delete))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			slog.Warn("failed to write response", "error", err)
		}
	})

	if len(opts.OpenAPISpec) > 0 {
		mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if _, err := w.Write(opts.OpenAPISpec); err != nil {
				slog.Warn("failed to write openapi spec", "error", err)
			}
		})
		mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/openapi.json")))
	}

	return withRequestID(withAccessLog(mux))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, handler *documents.Handler, opts Options) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewMux(handler, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("http server listening", "addr", srv.Addr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", serveErr)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
