// Package metrics exposes a running session as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rustyeddy/supertrader/journal"
	"github.com/rustyeddy/supertrader/sim"
)

const namespace = "supertrader"

// Metrics holds the session collectors on a private registry. It implements
// sim.Listener so it can be attached to an engine.
type Metrics struct {
	registry *prometheus.Registry

	TicksTotal  prometheus.Counter
	TradesTotal *prometheus.CounterVec
	Price       prometheus.Gauge
	Cash        prometheus.Gauge
	Shares      prometheus.Gauge
	NetWorth    prometheus.Gauge
	GameOver    prometheus.Gauge

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Prices generated in this session",
		}),
		TradesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_total",
			Help:      "Executed trades by side",
		}, []string{"side"}),
		Price: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "price",
			Help:      "Latest price",
		}),
		Cash: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cash",
			Help:      "Cash held",
		}),
		Shares: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shares",
			Help:      "Shares held",
		}),
		NetWorth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "net_worth",
			Help:      "Cash plus shares valued at the sell quote",
		}),
		GameOver: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "game_over",
			Help:      "1 once the stock has collapsed",
		}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.TicksTotal,
		m.TradesTotal,
		m.Price,
		m.Cash,
		m.Shares,
		m.NetWorth,
		m.GameOver,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OnTick(s sim.Snapshot) {
	m.TicksTotal.Inc()
	m.observe(s)
}

// OnTrade only counts. Gauges follow snapshots, which are always
// consistent, so an out-of-order trade event cannot roll them back.
func (m *Metrics) OnTrade(t journal.TradeRecord) {
	m.TradesTotal.WithLabelValues(t.Side).Inc()
}

func (m *Metrics) OnGameOver(s sim.Snapshot) {
	m.observe(s)
}

func (m *Metrics) observe(s sim.Snapshot) {
	if s.HasPrice {
		m.Price.Set(s.Price)
	}
	m.Cash.Set(s.Cash)
	m.Shares.Set(float64(s.Shares))
	m.NetWorth.Set(s.NetWorth)
	if s.Over {
		m.GameOver.Set(1)
	} else {
		m.GameOver.Set(0)
	}
}

// RecordHTTPRequest counts one served request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
