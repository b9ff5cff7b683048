// Package api exposes the HTTP interface for the readings service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/verbumdei/lectio/internal/datekey"
	"github.com/verbumdei/lectio/internal/fetch"
	"github.com/verbumdei/lectio/internal/liturgy"
	"github.com/verbumdei/lectio/internal/metrics"
	"github.com/verbumdei/lectio/internal/parser"
	"github.com/verbumdei/lectio/internal/service"
)

// ReadingsProvider is the slice of the readings service the API needs.
type ReadingsProvider interface {
	GetReadings(ctx context.Context, key string) (liturgy.DailyReadings, error)
	Today(ctx context.Context) (liturgy.DailyReadings, error)
	Tomorrow(ctx context.Context) (liturgy.DailyReadings, error)
	GetSeason(ctx context.Context, key string) (liturgy.Season, error)
	GetRank(ctx context.Context, key string) (liturgy.Rank, error)
}

// Server wires HTTP handlers to the readings service.
type Server struct {
	router   chi.Router
	readings ReadingsProvider
	logger   *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(readings ReadingsProvider, logger *zap.Logger) *Server {
	s := &Server{
		readings: readings,
		logger:   logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(metricsMiddleware)
	r.Use(timeoutMiddleware(30 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1/readings", func(r chi.Router) {
		r.Get("/today", s.getToday)
		r.Get("/tomorrow", s.getTomorrow)
		r.Get("/demo", s.getDemo)
		r.Route("/{date_key}", func(r chi.Router) {
			r.Get("/", s.getByKey)
			r.Get("/season", s.getSeason)
			r.Get("/rank", s.getRank)
		})
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) getByKey(w http.ResponseWriter, r *http.Request) {
	readings, err := s.readings.GetReadings(r.Context(), chi.URLParam(r, "date_key"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func (s *Server) getToday(w http.ResponseWriter, r *http.Request) {
	readings, err := s.readings.Today(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func (s *Server) getTomorrow(w http.ResponseWriter, r *http.Request) {
	readings, err := s.readings.Tomorrow(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func (s *Server) getDemo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, service.DemoData())
}

func (s *Server) getSeason(w http.ResponseWriter, r *http.Request) {
	season, err := s.readings.GetSeason(r.Context(), chi.URLParam(r, "date_key"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]liturgy.Season{"season": season})
}

func (s *Server) getRank(w http.ResponseWriter, r *http.Request) {
	rank, err := s.readings.GetRank(r.Context(), chi.URLParam(r, "date_key"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]liturgy.Rank{"rank": rank})
}

// writeServiceError maps service errors onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, datekey.ErrFormat), errors.Is(err, datekey.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, fetch.ErrRaceTimeout):
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, fetch.ErrAllRoutesFailed),
		errors.Is(err, fetch.ErrNetwork),
		errors.Is(err, parser.ErrParse):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
