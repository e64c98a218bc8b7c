package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"pokedex-insights-go/internal/charts"
	"pokedex-insights-go/internal/dashboard"
	"pokedex-insights-go/internal/dataset"
	"pokedex-insights-go/internal/filter"
	"pokedex-insights-go/internal/logger"
)

type Server struct {
	svc    *dashboard.Service
	log    *logger.Logger
	router chi.Router
}

func New(svc *dashboard.Service, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	s := &Server{svc: svc, log: log, router: chi.NewRouter()}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(s.log.Middleware)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/pokemon", s.handleList)
		r.Get("/pokemon/{id}", s.handleDetail)
		r.Get("/charts", s.handleCharts)
		r.Get("/export.xlsx", s.handleExport)
	})
}

func criteria(r *http.Request) filter.Criteria {
	q := r.URL.Query()
	return filter.Criteria{Search: q.Get("q"), Type: q.Get("type")}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.View(criteria(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.List(criteria(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]any{"count": len(items), "results": items})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, d)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v, err := s.svc.Charts(q.Get("types"), q.Get("stats"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	records, err := s.svc.Records()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := dataset.Export(&buf, records); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="pokedex.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		s.reqLog(r).WithError(err).Error("failed to write export")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, charts.ErrUnsupportedKind):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail logs err and answers with the status it maps to.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.reqLog(r).WithError(err).WithField("status", status).Warn("request failed")
	s.writeJSON(w, r, status, errorBody{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.reqLog(r).WithError(err).Error("failed to write response")
	}
}

func (s *Server) reqLog(r *http.Request) *logrus.Entry {
	return s.log.WithRequest(r).WithField("component", "server")
}
