package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "skin_relay"

// Metrics - коллекторы сервера в собственном реестре.
type Metrics struct {
	registry          *prometheus.Registry
	submissions       *prometheus.CounterVec
	relayDuration     prometheus.Histogram
	communityRequests *prometheus.CounterVec
}

// NewMetrics создает реестр с коллекторами рантайма и метриками заявок.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "submissions_total",
			Help:      "Skin submissions by outcome.",
		}, []string{"outcome"}),
		relayDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "relay_duration_seconds",
			Help:      "Time spent validating and relaying one submission.",
			Buckets:   prometheus.DefBuckets,
		}),
		communityRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "community_requests_total",
			Help:      "Community endpoint requests by endpoint and result.",
		}, []string{"endpoint", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.submissions,
		m.relayDuration,
		m.communityRequests,
	)
	return m
}

// Registry возвращает реестр метрик.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeSubmission(outcome string, started time.Time) {
	m.submissions.WithLabelValues(outcome).Inc()
	m.relayDuration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) observeCommunity(endpoint string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.communityRequests.WithLabelValues(endpoint, result).Inc()
}

// observeStats: ответ с нулевыми счетчиками для части репозиториев считается degraded.
func (m *Metrics) observeStats(degraded bool) {
	result := "ok"
	if degraded {
		result = "degraded"
	}
	m.communityRequests.WithLabelValues("stats", result).Inc()
}

// Handler отдает метрики в формате Prometheus.
func (m *Metrics) Handler(logger *slog.Logger) http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog:      promLogger{logger: logger},
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// promLogger реализует интерфейс promhttp.Logger
type promLogger struct {
	logger *slog.Logger
}

func (l promLogger) Println(v ...interface{}) {
	l.logger.Error("metrics handler error", slog.String("error", fmt.Sprint(v...)))
}
