package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusCollector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	serversTotal      prometheus.Gauge
	alertEventsFiring prometheus.Gauge
	alertEventsTotal  prometheus.Counter
	metricSamples     prometheus.Counter
	signinsTotal      *prometheus.CounterVec
	wsClients         prometheus.Gauge
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hostdeck_http_requests_total",
			Help: "HTTP requests handled, by method, path and status",
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hostdeck_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method", "path"}),

		serversTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "hostdeck_servers_total",
			Help: "Number of registered servers",
		}),

		alertEventsFiring: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "hostdeck_alert_events_firing",
			Help: "Alert events currently firing",
		}),

		alertEventsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hostdeck_alert_events_total",
			Help: "Alert events raised since start",
		}),

		metricSamples: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hostdeck_metric_samples_total",
			Help: "Metric samples generated since start",
		}),

		signinsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hostdeck_signins_total",
			Help: "Sign-in attempts by outcome",
		}, []string{"outcome"}),

		wsClients: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "hostdeck_ws_clients",
			Help: "Connected websocket metric feed clients",
		}),
	}
}

// Middleware records request counts and latency per route.
func (p *PrometheusCollector) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		p.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		p.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the /metrics endpoint.
func (p *PrometheusCollector) Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func (p *PrometheusCollector) SetServerCount(n int)      { p.serversTotal.Set(float64(n)) }
func (p *PrometheusCollector) SetFiringEvents(n int)     { p.alertEventsFiring.Set(float64(n)) }
func (p *PrometheusCollector) RecordAlertEvent()         { p.alertEventsTotal.Inc() }
func (p *PrometheusCollector) RecordMetricSample()       { p.metricSamples.Inc() }
func (p *PrometheusCollector) RecordSignIn(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	p.signinsTotal.WithLabelValues(outcome).Inc()
}
func (p *PrometheusCollector) WSClientConnected()    { p.wsClients.Inc() }
func (p *PrometheusCollector) WSClientDisconnected() { p.wsClients.Dec() }
