package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	charmlog "github.com/charmbracelet/log"

	apperrors "github.com/dcrt-lumc/exonviz/pkg/errors"
	"github.com/dcrt-lumc/exonviz/pkg/layout"
	"github.com/dcrt-lumc/exonviz/pkg/mutalyzer"
	"github.com/dcrt-lumc/exonviz/pkg/render"
)

func newServeCmd() *cobra.Command {
	var addr string
	cacheOpts := cacheFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve exon figures over HTTP",
		Long: `Serve starts an HTTP server that renders figures on request:

  GET /figure/{transcript}   SVG figure for a transcript or HGVS description
  GET /healthz               liveness probe

Layout parameters are taken from query parameters: max-width, height,
gap, scale (numbers) and non-coding (boolean). Each request renders one
static figure; use a shared redis cache (--redis) when running several
instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, cacheOpts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cacheOpts.register(cmd)
	return cmd
}

func runServe(ctx context.Context, addr string, cacheOpts cacheFlags) error {
	logger := loggerFromContext(ctx)

	backend, err := cacheOpts.open()
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer backend.Close()

	client := mutalyzer.NewClient(backend, cacheTTL)
	srv := &figureServer{client: client, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/figure/{transcript}", srv.handleFigure)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving figures", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type figureServer struct {
	client *mutalyzer.Client
	logger *charmlog.Logger
}

func (s *figureServer) handleFigure(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "transcript")

	cfg, err := configFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	description, err := normalizeInput(input)
	if err != nil {
		s.writeError(w, err)
		return
	}

	tr, err := s.client.Resolve(r.Context(), description, false)
	if err != nil {
		s.writeError(w, err)
		return
	}

	l, err := layout.Flow(tr, cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}

	svg := render.SVG(l, render.WithTitle(description))
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(svg)
}

// configFromQuery builds a layout config from the request's query
// parameters, starting from the defaults.
func configFromQuery(r *http.Request) (layout.Config, error) {
	cfg := layout.DefaultConfig()
	q := r.URL.Query()

	for name, target := range map[string]*float64{
		"max-width": &cfg.MaxWidth,
		"height":    &cfg.ExonHeight,
		"gap":       &cfg.Gap,
		"scale":     &cfg.ScalePerBase,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return layout.Config{}, apperrors.New(apperrors.ErrCodeInvalidConfig, "bad %s value %q", name, raw)
		}
		*target = v
	}

	if raw := q.Get("non-coding"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return layout.Config{}, apperrors.New(apperrors.ErrCodeInvalidConfig, "bad non-coding value %q", raw)
		}
		cfg.IncludeNonCoding = v
	}

	return cfg, cfg.Validate()
}

func (s *figureServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeInvalidConfig, apperrors.ErrCodeInvalidTranscript, apperrors.ErrCodeEmptyTranscript:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNetwork, apperrors.ErrCodeTimeout, apperrors.ErrCodeResolution:
		status = http.StatusBadGateway
	}
	s.logger.Warn("request failed", "status", status, "err", err)
	http.Error(w, err.Error(), status)
}
