package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"leximind-server/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leximind"

// Metrics 持有独立的 Prometheus 注册表。所有方法对 nil 接收者安全，便于测试与关闭监控时复用。
type Metrics struct {
	registry *prometheus.Registry
	path     string

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
	logins   *prometheus.CounterVec
	otps     *prometheus.CounterVec
}

// New 监控未启用时返回 nil。
func New(cfg config.MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	path := cfg.Path
	if path == "" {
		path = "/metrics"
	}

	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		path:     path,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests partitioned by method, route, and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Histogram of HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Successful logins partitioned by method.",
		}, []string{"method"}),
		otps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "otp_issued_total",
			Help:      "One-time codes issued partitioned by purpose.",
		}, []string{"purpose"}),
	}

	for _, c := range []prometheus.Collector{
		m.requests, m.duration, m.inFlight, m.logins, m.otps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return m, nil
}

// Path 指标暴露路径。
func (m *Metrics) Path() string {
	if m == nil {
		return ""
	}
	return m.path
}

// Handler 返回 /metrics 处理器。
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware 记录请求计数、耗时与并发数。
func (m *Metrics) Middleware() gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			// 未匹配路由统一归类，避免任意路径撑爆标签基数
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		m.requests.With(labels).Inc()
		m.duration.With(labels).Observe(time.Since(start).Seconds())
	}
}

// ObserveLogin 记录一次成功登录，method 为 password / otp / google。
func (m *Metrics) ObserveLogin(method string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(method).Inc()
}

// ObserveOTP 记录一次验证码签发。
func (m *Metrics) ObserveOTP(purpose string) {
	if m == nil {
		return
	}
	m.otps.WithLabelValues(purpose).Inc()
}
