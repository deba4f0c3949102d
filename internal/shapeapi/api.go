// Package shapeapi exposes triangle classification over HTTP.
package shapeapi

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/trigon/internal/classify"
)

// ClassifyService defines the business operations shapeapi needs.
type ClassifyService interface {
	Classify(ctx context.Context, sides [3]string) (*classify.Record, error)
	Get(ctx context.Context, id string) (*classify.Record, bool, error)
	Recent(ctx context.Context, limit int) ([]*classify.Record, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger log.Logger
	svc    ClassifyService
	guard  func(http.Handler) http.Handler
}

// Option configures an API.
type Option func(*API)

// WithGuard wraps every /api/v1 route in mw, typically authmw.BearerTokens.
func WithGuard(mw func(http.Handler) http.Handler) Option {
	return func(a *API) { a.guard = mw }
}

// New creates a new API handler.
func New(logger log.Logger, svc ClassifyService, opts ...Option) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("classify service is required"))
	}
	a := &API{
		logger: logger,
		svc:    svc,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		if a.guard != nil {
			r.Use(a.guard)
		}
		r.Post("/triangles", a.handleClassify)
		r.Get("/triangles", a.handleList)
		r.Get("/triangles/{id}", a.handleGet)
	})
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("trigon.record.id", id))

	rec, ok, err := a.svc.Get(r.Context(), id)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to get classification record", "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// nothing to do with errors here
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
