// Package server exposes the session's financial views as a JSON API with a
// change-event feed.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/session"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
}

// Event is emitted whenever the session changes through the API.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

const (
	EventMenuPrice  = "menu_price"
	EventSimulation = "simulation"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"startedAt"`
	Store           string    `json:"store"`
	Menus           int       `json:"menus"`
	HasSimulation   bool      `json:"hasSimulation"`
	EventCount      int       `json:"eventCount"`
	SubscriberCount int       `json:"subscriberCount"`
}

// Service serves one session over HTTP.
type Service struct {
	cfg     Config
	sess    *session.Session
	policy  finance.Policy
	appCfg  config.Config
	handler http.Handler

	mu          sync.RWMutex
	startedAt   time.Time
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a service for s. appCfg supplies the business templates.
func New(cfg Config, s *session.Session, p finance.Policy, appCfg config.Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}

	svc := &Service{
		cfg:       cfg,
		sess:      s,
		policy:    p,
		appCfg:    appCfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
	svc.handler = svc.routes()
	return svc
}

// Handler returns the routed API, for tests and embedding.
func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(requestLogger)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)

	r.HandleFunc("/v1/dashboard", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/v1/analysis", s.handleAnalysis).Methods(http.MethodGet)

	r.HandleFunc("/v1/menus", s.handleMenus).Methods(http.MethodGet)
	r.HandleFunc("/v1/menus/{id}", s.handleMenu).Methods(http.MethodGet)
	r.HandleFunc("/v1/menus/{id}/price", s.handleSimulatePrice).Queries("price", "{price}").Methods(http.MethodGet)
	r.HandleFunc("/v1/menus/{id}/price", s.handleApplyPrice).Queries("price", "{price}").Methods(http.MethodPut)

	r.HandleFunc("/v1/cashflow/{year:[0-9]{4}}/{month:[0-9]{1,2}}", s.handleCashflow).Methods(http.MethodGet)

	r.HandleFunc("/v1/templates", s.handleTemplates).Methods(http.MethodGet)
	r.HandleFunc("/v1/simulations", s.handleCreateSimulation).Methods(http.MethodPost)
	r.HandleFunc("/v1/simulations/current", s.handleCurrentSimulation).Methods(http.MethodGet)

	r.HandleFunc("/v1/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/stream", s.handleStream).Methods(http.MethodGet)
	return r
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Infof("navi API listening on %s", s.cfg.Addr)

	select {
	case <-ctx.Done():
		log.Info("shutting down navi API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("navi http server: %w", err)
	}
}

func (s *Service) publish(typ string, data any) {
	s.mu.Lock()
	s.nextEventID++
	ev := Event{ID: s.nextEventID, Type: typ, Timestamp: time.Now(), Data: data}
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) status() Status {
	_, hasSim := s.sess.Simulation()
	menus := len(s.sess.Menus())

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		StartedAt:       s.startedAt,
		Store:           s.sess.Store().Name,
		Menus:           menus,
		HasSimulation:   hasSim,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// statusRecorder keeps the response code for the request log. It forwards
// Flush so the event stream still works behind it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		log.WithFields(log.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

// writeError maps engine and session errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, finance.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, finance.ErrDomain):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrMenuNotFound):
		status = http.StatusNotFound
	default:
		log.Errorf("request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
