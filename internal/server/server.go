// Package server exposes the payoff engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Config controls the API runtime behavior.
type Config struct {
	Addr      string
	MaxMonths int
	MaxBody   int64
}

// Service serves the payoff API.
type Service struct {
	cfg     Config
	log     *zap.Logger
	cache   Cache
	schemas validators
}

// New returns a service. A nil cache disables caching and a nil logger
// discards logs.
func New(cfg Config, log *zap.Logger, cache Cache) (*Service, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.MaxMonths <= 0 {
		cfg.MaxMonths = 600
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = 1 << 20
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cache == nil {
		cache = NopCache{}
	}

	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}

	return &Service{cfg: cfg, log: log, cache: cache, schemas: schemas}, nil
}

// Handler returns the API routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/simulate", s.endpoint("simulate", s.simulate))
	mux.HandleFunc("/v1/compare", s.endpoint("compare", s.compare))
	mux.HandleFunc("/v1/amortize", s.endpoint("amortize", s.amortize))
	mux.HandleFunc("/v1/scenarios", s.endpoint("scenarios", s.scenarios))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("api listening", zap.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
		s.log.Info("api shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("api http server: %w", err)
	}
}

// Close releases the cache connection.
func (s *Service) Close() error {
	return s.cache.Close()
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
