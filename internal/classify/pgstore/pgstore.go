// Package pgstore provides a PostgreSQL implementation of classify.Store.
package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/trigon/internal/classify"
	"github.com/linnemanlabs/trigon/internal/triangle"
)

var tracer = otel.Tracer("github.com/linnemanlabs/trigon/internal/classify/pgstore")

//go:embed schema.sql
var schema string

const verdictColumns = `id, sides, measurement, valid, kind, reason, created_at`

// Store persists classification records in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema on pool and returns a ready Store. The caller owns
// the pool.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

func startSpan(ctx context.Context, name, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", op),
	))
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (*classify.Record, bool, error) {
	ctx, span := startSpan(ctx, "pgstore.Get", "SELECT")
	defer span.End()

	r, err := scanRecord(s.pool.QueryRow(ctx,
		`SELECT `+verdictColumns+` FROM triangle_verdicts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		fail(span, err)
		return nil, false, err
	}
	return r, true, nil
}

// Put inserts or replaces a record.
func (s *Store) Put(ctx context.Context, r *classify.Record) error {
	ctx, span := startSpan(ctx, "pgstore.Put", "UPSERT")
	defer span.End()

	_, err := s.pool.Exec(ctx, `INSERT INTO triangle_verdicts (`+verdictColumns+`)
	VALUES ($1,$2,$3,$4,$5,$6,$7)
	ON CONFLICT (id) DO UPDATE SET
		sides       = EXCLUDED.sides,
		measurement = EXCLUDED.measurement,
		valid       = EXCLUDED.valid,
		kind        = EXCLUDED.kind,
		reason      = EXCLUDED.reason,
		created_at  = EXCLUDED.created_at`,
		r.ID, r.Sides[:], string(r.Measurement), r.Valid, string(r.Kind), r.Reason, r.CreatedAt,
	)
	if err != nil {
		err = fmt.Errorf("upsert verdict: %w", err)
		fail(span, err)
		return err
	}
	return nil
}

// List returns up to limit records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*classify.Record, error) {
	ctx, span := startSpan(ctx, "pgstore.List", "SELECT")
	defer span.End()

	rows, err := s.pool.Query(ctx,
		`SELECT `+verdictColumns+` FROM triangle_verdicts ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		err = fmt.Errorf("query verdicts: %w", err)
		fail(span, err)
		return nil, err
	}
	defer rows.Close()

	var out []*classify.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			fail(span, err)
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		err = fmt.Errorf("iterate verdicts: %w", err)
		fail(span, err)
		return nil, err
	}
	return out, nil
}

// scanRecord scans one row. pgx.ErrNoRows is returned unwrapped.
func scanRecord(row pgx.Row) (*classify.Record, error) {
	var (
		r           classify.Record
		sides       []string
		measurement string
		kind        string
	)

	err := row.Scan(&r.ID, &sides, &measurement, &r.Valid, &kind, &r.Reason, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sides) != len(r.Sides) {
		return nil, fmt.Errorf("scan: record %s has %d sides", r.ID, len(sides))
	}

	copy(r.Sides[:], sides)
	r.Measurement = classify.Measurement(measurement)
	r.Kind = triangle.Kind(kind)
	return &r, nil
}
