// Package server exposes Analyse over HTTP.
//
//	POST /v1/analyse  {"input": "x^2=36", "strict": false}
//	POST /v1/batch    {"inputs": ["x^2=36", "2^3^2"], "strict": false}
//	GET  /healthz
//	GET  /metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/cottand/surd/internal/log"
	"github.com/cottand/surd/surd"
	"github.com/cottand/surd/surderr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const maxBodyBytes = 1 << 20

type Config struct {
	Addr string
	// Concurrency bounds the inputs of one batch request analysed at once
	Concurrency int
}

type Server struct {
	cfg      Config
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	mux      *http.ServeMux
	*slog.Logger
}

func New(cfg Config) *Server {
	s := &Server{
		cfg:      cfg,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surd",
			Name:      "requests_total",
			Help:      "Requests served, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "surd",
			Name:      "request_duration_seconds",
			Help:      "Time spent serving requests, by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
		mux:    http.NewServeMux(),
		Logger: log.Section("server"),
	}
	s.registry.MustRegister(s.requests, s.latency)

	s.mux.HandleFunc("POST /v1/analyse", s.instrument("analyse", s.analyse))
	s.mux.HandleFunc("POST /v1/batch", s.instrument("batch", s.batch))
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// Run serves on cfg.Addr until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Info("listening", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// handlerFunc returns the status it wrote, which labels the request's outcome
type handlerFunc func(w http.ResponseWriter, r *http.Request) int

func (s *Server) instrument(operation string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		status := http.StatusInternalServerError
		defer func() {
			if rec := recover(); rec != nil {
				s.Error("panic serving request", "operation", operation, "panic", rec, "stack", string(debug.Stack()))
				writeJSON(w, status, errorBody{Error: "internal server error"})
			}
			s.latency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
			s.requests.WithLabelValues(operation, outcome(status)).Inc()
		}()
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		status = h(w, r)
		s.Debug("served", "operation", operation, "status", status, "took", time.Since(start))
	}
}

func outcome(status int) string {
	switch {
	case status < 300:
		return "ok"
	case status == http.StatusUnprocessableEntity:
		return "rejected"
	case status < 500:
		return "bad_request"
	default:
		return "error"
	}
}

type analyseRequest struct {
	Input  string `json:"input"`
	Strict bool   `json:"strict"`
}

type batchRequest struct {
	Inputs []string `json:"inputs"`
	Strict bool     `json:"strict"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func decode(r *http.Request, into any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("invalid JSON: trailing data")
	}
	return nil
}

func (s *Server) analyse(w http.ResponseWriter, r *http.Request) int {
	var req analyseRequest
	if err := decode(r, &req); err != nil {
		return writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	}
	res, err := surd.Analyse(req.Input, surd.Options{Strict: req.Strict})
	if err != nil {
		return writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error: surderr.FormatWithCode(err),
			Code:  surderr.CodeOf(err).String(),
		})
	}
	return writeJSON(w, http.StatusOK, res)
}

func (s *Server) batch(w http.ResponseWriter, r *http.Request) int {
	var req batchRequest
	if err := decode(r, &req); err != nil {
		return writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	}
	items, err := surd.Batch(r.Context(), req.Inputs, surd.Options{Strict: req.Strict}, s.cfg.Concurrency)
	if err != nil {
		return writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
	}
	return writeJSON(w, http.StatusOK, items)
}

func writeJSON(w http.ResponseWriter, status int, body any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
	return status
}
