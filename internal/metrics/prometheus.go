package metrics

import (
	"fmt"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

type promRecorder struct {
	storeTotal   *prom.CounterVec
	storeSeconds *prom.HistogramVec
	httpTotal    *prom.CounterVec
	httpSeconds  *prom.HistogramVec
	rowsIngested prom.Counter
}

func (p *promRecorder) IncStoreOpTotal(op string, success bool) {
	p.storeTotal.WithLabelValues(op, fmt.Sprintf("%t", success)).Inc()
}

func (p *promRecorder) ObserveStoreOpSeconds(op string, success bool, seconds float64) {
	p.storeSeconds.WithLabelValues(op, fmt.Sprintf("%t", success)).Observe(seconds)
}

func (p *promRecorder) IncHTTPRequestTotal(route string, status int) {
	p.httpTotal.WithLabelValues(route, fmt.Sprintf("%d", status)).Inc()
}

func (p *promRecorder) ObserveHTTPRequestSeconds(route string, status int, seconds float64) {
	p.httpSeconds.WithLabelValues(route, fmt.Sprintf("%d", status)).Observe(seconds)
}

func (p *promRecorder) AddRowsIngested(n int) {
	p.rowsIngested.Add(float64(n))
}

func enablePrometheus(addr string) error {
	registry := prom.NewRegistry()
	p := &promRecorder{
		storeTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "store_ops_total",
			Help: "Total number of store operations",
		}, []string{"op", "success"}),
		storeSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "store_op_seconds",
			Help:    "Store operation duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"op", "success"}),
		httpTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "status"}),
		httpSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "http_request_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"route", "status"}),
		rowsIngested: prom.NewCounter(prom.CounterOpts{
			Name: "rows_ingested_total",
			Help: "Total number of CSV rows ingested",
		}),
	}

	registry.MustRegister(p.storeTotal, p.storeSeconds, p.httpTotal, p.httpSeconds, p.rowsIngested)
	SetRecorder(p)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	go func() { _ = http.ListenAndServe(addr, mux) }()
	return nil
}
