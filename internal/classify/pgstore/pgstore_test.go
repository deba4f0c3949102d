package pgstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/linnemanlabs/trigon/internal/classify"
	"github.com/linnemanlabs/trigon/internal/classify/pgstore"
	"github.com/linnemanlabs/trigon/internal/postgres"
	"github.com/linnemanlabs/trigon/internal/triangle"
)

func openStore(t *testing.T) *pgstore.Store {
	t.Helper()
	dsn := os.Getenv("TRIGON_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TRIGON_TEST_DATABASE_URL not set, skipping integration test")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("postgres.NewPool: %v", err)
	}
	t.Cleanup(pool.Close)

	s, err := pgstore.New(ctx, pool)
	if err != nil {
		t.Fatalf("pgstore.New: %v", err)
	}
	return s
}

func TestPutAndGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	r := &classify.Record{
		ID:        "test-put-get-" + time.Now().Format("150405.000000"),
		Sides:     [3]string{"3", "4", "5"},
		CreatedAt: time.Now().Truncate(time.Microsecond).UTC(),
		Verdict: classify.Verdict{
			Measurement: classify.MeasurementInteger,
			Valid:       true,
			Kind:        triangle.KindScalene,
		},
	}
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get returned ok=false, want true")
	}

	assertEqual(t, "ID", r.ID, got.ID)
	assertEqual(t, "Sides", r.Sides, got.Sides)
	assertEqual(t, "Measurement", r.Measurement, got.Measurement)
	assertEqual(t, "Valid", r.Valid, got.Valid)
	assertEqual(t, "Kind", r.Kind, got.Kind)
	assertEqual(t, "Reason", r.Reason, got.Reason)
	if !got.CreatedAt.Equal(r.CreatedAt) {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, r.CreatedAt)
	}
}

func TestGetMissing(t *testing.T) {
	s := openStore(t)

	_, ok, err := s.Get(context.Background(), "nonexistent-id")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get returned ok=true for nonexistent ID")
	}
}

func TestUpsert(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	r := &classify.Record{
		ID:        "test-upsert-" + time.Now().Format("150405.000000"),
		Sides:     [3]string{"7", "3", "2"},
		CreatedAt: time.Now().Truncate(time.Microsecond).UTC(),
		Verdict: classify.Verdict{
			Measurement: classify.MeasurementInteger,
			Reason:      triangle.ReasonInequalityViolated,
		},
	}
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put initial: %v", err)
	}

	r.Sides = [3]string{"7", "4", "4"}
	r.Verdict = classify.Verdict{Measurement: classify.MeasurementInteger, Valid: true, Kind: triangle.KindIsosceles}
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put update: %v", err)
	}

	got, ok, err := s.Get(ctx, r.ID)
	if err != nil || !ok {
		t.Fatalf("Get after upsert: ok=%v err=%v", ok, err)
	}
	assertEqual(t, "Valid", true, got.Valid)
	assertEqual(t, "Kind", triangle.KindIsosceles, got.Kind)
	assertEqual(t, "Reason", "", got.Reason)
}

func TestListNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	base := time.Now().Add(time.Hour).Truncate(time.Microsecond).UTC()
	suffix := base.Format("150405.000000")
	for i, id := range []string{"list-a-", "list-b-", "list-c-"} {
		err := s.Put(ctx, &classify.Record{
			ID:        id + suffix,
			Sides:     [3]string{"2", "2", "2"},
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Verdict:   classify.Verdict{Measurement: classify.MeasurementInteger, Valid: true, Kind: triangle.KindEquilateral},
		})
		if err != nil {
			t.Fatalf("Put %s: %v", id, err)
		}
	}

	got, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d records, want 2", len(got))
	}
	assertEqual(t, "first", "list-c-"+suffix, got[0].ID)
	assertEqual(t, "second", "list-b-"+suffix, got[1].ID)
}

func assertEqual[T comparable](t *testing.T, field string, want, got T) {
	t.Helper()
	if want != got {
		t.Errorf("%s: got %v, want %v", field, got, want)
	}
}
