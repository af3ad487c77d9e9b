// Package api serves terrain generation over HTTP.
//
// Routes:
//
//	POST /v1/generate   run the pipeline; the body is a partial pipeline.Options
//	GET  /v1/defaults   the default options
//	GET  /healthz       liveness probe
//	GET  /version       build information
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/fluvia/pkg/buildinfo"
	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/observability"
	"github.com/matzehuels/fluvia/pkg/pipeline"
)

const (
	// DefaultMaxCells caps the grid size of a single request.
	DefaultMaxCells = 512 * 512

	// maxBodyBytes caps the size of a request body.
	maxBodyBytes = 1 << 20

	shutdownTimeout = 10 * time.Second
)

// Server handles API requests with a shared pipeline runner.
type Server struct {
	Runner   *pipeline.Runner
	Logger   *log.Logger
	MaxCells int
}

// New creates a server. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Logger: logger, MaxCells: DefaultMaxCells}
}

// Handler returns the router serving every route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/defaults", s.handleDefaults)
		r.Post("/generate", s.handleGenerate)
	})
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// logRequests reports every request to the logger and the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pipeline.DefaultOptions())
}

// generateRequest is a partial pipeline.Options plus output settings.
// Omitted fields keep their defaults.
type generateRequest struct {
	pipeline.Options
	// Samples is the spline density; 0 omits splines.
	Samples *int `json:"samples,omitempty"`
	Refresh bool `json:"refresh,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req := generateRequest{Options: pipeline.DefaultOptions()}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	opts := req.Options
	opts.Refresh = req.Refresh
	opts.Logger = s.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}
	if opts.Width*opts.Height > s.MaxCells {
		writeError(w, errors.New(errors.ErrCodeInvalidOptions, "grid %dx%d exceeds %d cells", opts.Width, opts.Height, s.MaxCells))
		return
	}
	samples := pipeline.DefaultSamplesPerSegment
	if req.Samples != nil {
		samples = *req.Samples
	}

	ctx := r.Context()
	in, err := s.Runner.NoiseInput(ctx, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.Runner.Execute(ctx, in, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	doc, err := pipeline.NewDocument(ctx, res, samples)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps coded errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func statusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidOptions, errors.ErrCodeDimensionMismatch:
		return http.StatusBadRequest
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
