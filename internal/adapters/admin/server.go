package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"console-bridge/internal/core/services/reload"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Reloader interface {
	Reload(ctx context.Context) (reload.Report, error)
}

// NewHandler serves Prometheus metrics, a health check and the operator
// reload endpoint.
func NewHandler(reloader Reloader) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("/reload", reloadHandler(reloader))
	return mux
}

func reloadHandler(reloader Reloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		slog.Info("Reload requested", "remote", r.RemoteAddr)

		report, err := reloader.Reload(r.Context())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Reload failed, previous commands are still active: %v\n", err)
			return
		}

		fmt.Fprintln(w, report.String())
	}
}

type Server struct {
	srv *http.Server
}

func NewServer(addr string, reloader Reloader) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           NewHandler(reloader),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func (s *Server) Start() {
	go func() {
		slog.Info("Admin server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Admin server failed", "error", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
