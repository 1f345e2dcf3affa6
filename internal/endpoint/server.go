package endpoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewMux routes the generation endpoint and the health check.
func NewMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle(GeneratePath, otelhttp.NewHandler(h, GeneratePath))
	return mux
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string

	// UpstreamTimeout is the per-attempt upstream bound. The write timeout
	// is derived from it so a full primary + fallback cascade fits.
	UpstreamTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown. Defaults to 10s.
	ShutdownTimeout time.Duration
}

// NewServer creates an *http.Server for h.
func NewServer(cfg ServerConfig, h *Handler) *http.Server {
	writeTimeout := 2*cfg.UpstreamTimeout + 15*time.Second
	if cfg.UpstreamTimeout <= 0 {
		writeTimeout = 0
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewMux(h),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}

// Serve runs srv on ln until ctx is cancelled, then shuts it down
// gracefully. In-flight requests get up to shutdownTimeout to finish.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("spacequiz listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ListenAndServe listens on cfg.Addr and serves h until ctx is cancelled.
func ListenAndServe(ctx context.Context, cfg ServerConfig, h *Handler) error {
	srv := NewServer(cfg, h)
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	return Serve(ctx, srv, ln, cfg.ShutdownTimeout)
}
