package classify

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the classification subsystem.
type Metrics struct {
	ClassificationsTotal *prometheus.CounterVec
	RejectionsTotal      *prometheus.CounterVec
	ErrorsTotal          *prometheus.CounterVec
	StoreDuration        *prometheus.HistogramVec
}

// NewMetrics registers and returns classification metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ClassificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trigon_classifications_total",
			Help: "Valid triangles classified, by kind and measurement.",
		}, []string{"kind", "measurement"}),
		RejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trigon_rejections_total",
			Help: "Triples that did not form a triangle, by reason.",
		}, []string{"reason"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trigon_classify_errors_total",
			Help: "Classification requests that failed before a verdict, by error.",
		}, []string{"error"}),
		StoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trigon_store_duration_seconds",
			Help:    "Duration of record store calls in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms .. ~1s
		}, []string{"op", "outcome"}),
	}

	reg.MustRegister(
		m.ClassificationsTotal,
		m.RejectionsTotal,
		m.ErrorsTotal,
		m.StoreDuration,
	)

	return m
}

func (m *Metrics) observeVerdict(v Verdict) {
	if m == nil {
		return
	}
	if v.Valid {
		m.ClassificationsTotal.WithLabelValues(string(v.Kind), string(v.Measurement)).Inc()
		return
	}
	m.RejectionsTotal.WithLabelValues(v.Reason).Inc()
}

func (m *Metrics) observeError(label string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(label).Inc()
}

func (m *Metrics) observeStore(op string, seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.StoreDuration.WithLabelValues(op, outcome).Observe(seconds)
}
