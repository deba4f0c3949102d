package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linnemanlabs/go-core/httpmw"
	"github.com/linnemanlabs/go-core/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/linnemanlabs/trigon/internal/postgres"
	"github.com/linnemanlabs/trigon/internal/shapeapi"
)

type handlerDeps struct {
	logger           log.Logger
	api              *shapeapi.API
	healthz          http.HandlerFunc
	readyz           http.HandlerFunc
	metrics          func(http.Handler) http.Handler
	trustedProxyHops int
}

func isProbePath(p string) bool {
	return strings.HasPrefix(p, "/-/")
}

// newHandler assembles the public listener. Wrappers run outermost first,
// so request id and recovery see the raw request and handlers see the full
// annotated context.
func newHandler(d handlerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Compress(5, "application/json"))
	r.Use(httpmw.AnnotateHTTPRoute)

	// method label for db query metrics
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(postgres.WithHTTPMethod(req.Context(), req.Method)))
		})
	})

	r.Use(httpmw.AccessLog())

	// triangle requests are three numbers; 8KB is generous
	r.Use(httpmw.MaxBody(8 * 1024))

	r.Get("/-/healthy", d.healthz)
	r.Get("/-/ready", d.readyz)

	d.api.RegisterRoutes(r)

	var h http.Handler = r
	h = httpmw.WithLogger(d.logger)(h)
	h = httpmw.TraceResponseHeaders("X-Trace-Id", "X-Span-Id")(h)
	h = otelhttp.NewHandler(h, "http.server",
		otelhttp.WithFilter(func(r *http.Request) bool { return !isProbePath(r.URL.Path) }),
		// renamed to the route pattern by AnnotateHTTPRoute
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithPublicEndpointFn(func(_ *http.Request) bool { return true }),
	)
	if d.metrics != nil {
		h = d.metrics(h)
	}
	h = httpmw.ClientIPWithOptions(httpmw.ClientIPOptions{
		TrustedHops: d.trustedProxyHops,
	})(h)
	h = httpmw.RequestID("X-Request-Id")(h)
	h = httpmw.Recover(d.logger, nil)(h)
	h = httpmw.SecurityHeaders(h)
	return h
}
