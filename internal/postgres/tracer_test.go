package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/linnemanlabs/go-core/log"
)

func TestShortenFuncName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full path", "github.com/linnemanlabs/trigon/internal/classify/pgstore.(*Store).Get", "(*Store).Get"},
		{"already short", "(*Store).Get", "Get"},
		{"empty string", "", ""},
		{"no dots", "main", "main"},
		{"no slashes", "pgstore.(*Store).List", "(*Store).List"},
		{"single segment", "foo.Bar", "Bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := shortenFuncName(tt.in)
			if got != tt.want {
				t.Errorf("shortenFuncName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithHTTPMethod_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithHTTPMethod(context.Background(), "POST")
	if got := httpMethodFromContext(ctx); got != "POST" {
		t.Errorf("httpMethodFromContext = %q, want %q", got, "POST")
	}
}

func TestWithHTTPMethod_Empty(t *testing.T) {
	t.Parallel()

	ctx := WithHTTPMethod(context.Background(), "")
	if got := httpMethodFromContext(ctx); got != "" {
		t.Errorf("httpMethodFromContext = %q, want empty", got)
	}
}

func TestLabelOr(t *testing.T) {
	t.Parallel()

	if got := labelOr("", "unknown"); got != "unknown" {
		t.Errorf("labelOr(empty) = %q, want unknown", got)
	}
	if got := labelOr("GET", "unknown"); got != "GET" {
		t.Errorf("labelOr(GET) = %q, want GET", got)
	}
	if outcome(nil) != "ok" || outcome(errors.New("x")) != "error" {
		t.Error("outcome labels wrong")
	}
}

// Tests below swap the process-wide observer and must not run in parallel.

func TestSetQueryObserver(t *testing.T) {
	defer SetQueryObserver(nil)

	called := false
	SetQueryObserver(QueryObserverFunc(func(_ context.Context, _, _, _ string, _ time.Duration) {
		called = true
	}))

	got := getQueryObserver()
	if got == nil {
		t.Fatal("expected non-nil observer after Set")
	}
	got.ObserveQuery(context.Background(), "GET", "/test", "ok", time.Millisecond)
	if !called {
		t.Error("observer was not called")
	}

	SetQueryObserver(nil)
	if got := getQueryObserver(); got != nil {
		t.Errorf("expected nil observer after Set(nil), got %v", got)
	}
}

func TestQueryTracer_ObservesQueries(t *testing.T) {
	defer SetQueryObserver(nil)

	type obs struct{ method, route, outcome string }
	var seen []obs
	SetQueryObserver(QueryObserverFunc(func(_ context.Context, method, route, outcome string, _ time.Duration) {
		seen = append(seen, obs{method, route, outcome})
	}))

	qt := newQueryTracer(nil, time.Hour)
	ctx := log.WithContext(context.Background(), log.Nop())
	ctx = WithHTTPMethod(ctx, "POST")

	qctx := qt.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	qt.TraceQueryEnd(qctx, nil, pgx.TraceQueryEndData{})

	qctx = qt.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT broken"})
	qt.TraceQueryEnd(qctx, nil, pgx.TraceQueryEndData{Err: errors.New("syntax error")})

	want := []obs{
		{"POST", "unknown", "ok"},
		{"POST", "unknown", "error"},
	}
	if len(seen) != len(want) {
		t.Fatalf("observed %d queries, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("observation %d = %+v, want %+v", i, seen[i], want[i])
		}
	}
}

func TestQueryTracer_EndWithoutStart(t *testing.T) {
	defer SetQueryObserver(nil)

	called := false
	SetQueryObserver(QueryObserverFunc(func(context.Context, string, string, string, time.Duration) {
		called = true
	}))

	newQueryTracer(nil, 0).TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	if called {
		t.Error("observer called for a query with no start info")
	}
}
