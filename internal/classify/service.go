package classify

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
)

var tracer = otel.Tracer("github.com/linnemanlabs/trigon/internal/classify")

const (
	// DefaultListLimit is used by Recent when the caller passes limit <= 0.
	DefaultListLimit = 20

	// MaxListLimit caps Recent regardless of the requested limit.
	MaxListLimit = 100
)

// Options tunes Service behaviour.
type Options struct {
	// AllowFractional accepts sides with a fractional form.
	AllowFractional bool
}

// Service is the business boundary for classification operations.
type Service struct {
	store   Store
	logger  log.Logger
	metrics *Metrics
	opts    Options
	now     func() time.Time
}

// NewService creates a new classification service. metrics may be nil.
func NewService(store Store, logger log.Logger, metrics *Metrics, opts Options) *Service {
	if store == nil {
		panic(xerrors.New("classify store is required"))
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		store:   store,
		logger:  logger,
		metrics: metrics,
		opts:    opts,
		now:     time.Now,
	}
}

// Classify evaluates sides, persists the verdict, and returns the record.
// Triples that are not triangles still produce a record.
func (s *Service) Classify(ctx context.Context, sides [3]string) (*Record, error) {
	ctx, span := tracer.Start(ctx, "classify.triangle")
	defer span.End()

	// records keep the text that was parsed
	for i := range sides {
		sides[i] = strings.TrimSpace(sides[i])
	}

	v, err := Evaluate(sides, s.opts.AllowFractional)
	if err != nil {
		s.metrics.observeError(errorLabel(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rec := &Record{
		ID:        ulid.Make().String(),
		Sides:     sides,
		CreatedAt: s.now().UTC(),
		Verdict:   v,
	}

	span.SetAttributes(
		attribute.String("trigon.record.id", rec.ID),
		attribute.String("trigon.triangle.measurement", string(v.Measurement)),
		attribute.Bool("trigon.triangle.valid", v.Valid),
	)
	if v.Valid {
		span.SetAttributes(attribute.String("trigon.triangle.kind", string(v.Kind)))
	} else {
		span.SetAttributes(attribute.String("trigon.triangle.reason", v.Reason))
	}

	start := time.Now()
	err = s.store.Put(ctx, rec)
	s.metrics.observeStore("put", time.Since(start).Seconds(), err)
	if err != nil {
		s.metrics.observeError("store")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.metrics.observeVerdict(v)
	s.logger.Info(ctx, "triangle classified",
		"id", rec.ID,
		"sides", rec.Sides,
		"valid", v.Valid,
		"kind", v.Kind,
		"reason", v.Reason,
	)

	return rec, nil
}

// Get retrieves a classification record by ID.
func (s *Service) Get(ctx context.Context, id string) (*Record, bool, error) {
	start := time.Now()
	r, ok, err := s.store.Get(ctx, id)
	s.metrics.observeStore("get", time.Since(start).Seconds(), err)
	return r, ok, err
}

// Recent returns the newest records. limit is clamped to 1..MaxListLimit,
// with DefaultListLimit used for limit <= 0.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Record, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	start := time.Now()
	out, err := s.store.List(ctx, limit)
	s.metrics.observeStore("list", time.Since(start).Seconds(), err)
	return out, err
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, ErrFractionalDisabled):
		return "fractional_disabled"
	case errors.Is(err, ErrBadMeasurement):
		return "bad_measurement"
	default:
		return "other"
	}
}
