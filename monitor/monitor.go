// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	OnlinePlayers         prometheus.Gauge
	ActiveRooms           prometheus.Gauge
	PacketsReceived       prometheus.Counter
	PacketLatency         prometheus.Histogram
	DeckPoolSize          prometheus.Gauge
	DeckReplenishments    prometheus.Counter
	DeckReplenishFailures prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		OnlinePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_players",
			Help:      "Number of online players",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of live rooms",
		}),
		PacketsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packets_received_total",
			Help:      "Total number of packets received",
		}),
		PacketLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "packet_latency_seconds",
			Help:      "Packet processing latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		DeckPoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "deck_pool_size",
			Help:      "Number of cards in the global pool",
		}),
		DeckReplenishments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deck_replenish_total",
			Help:      "Total number of completed deck replenishments",
		}),
		DeckReplenishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deck_replenish_failures_total",
			Help:      "Total number of failed deck replenishments",
		}),
	}

	prometheus.MustRegister(
		m.OnlinePlayers,
		m.ActiveRooms,
		m.PacketsReceived,
		m.PacketLatency,
		m.DeckPoolSize,
		m.DeckReplenishments,
		m.DeckReplenishFailures,
	)

	return m
}

type Monitor struct {
	metrics      *Metrics
	startTime    time.Time
	requestCount int64
	mutex        sync.Mutex
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	// 添加expvar指标
	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))

	expvar.Publish("requests", expvar.Func(func() interface{} {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		return m.requestCount
	}))
	mux.Handle("/debug/vars", expvar.Handler())

	go http.ListenAndServe(addr, mux)
}

func (m *Monitor) IncOnlinePlayers() {
	m.metrics.OnlinePlayers.Inc()
}

func (m *Monitor) DecOnlinePlayers() {
	m.metrics.OnlinePlayers.Dec()
}

func (m *Monitor) SetActiveRooms(count int) {
	m.metrics.ActiveRooms.Set(float64(count))
}

func (m *Monitor) IncPacketsReceived() {
	m.metrics.PacketsReceived.Inc()
	m.mutex.Lock()
	m.requestCount++
	m.mutex.Unlock()
}

func (m *Monitor) ObservePacketLatency(duration time.Duration) {
	m.metrics.PacketLatency.Observe(duration.Seconds())
}

func (m *Monitor) SetDeckPoolSize(size int) {
	m.metrics.DeckPoolSize.Set(float64(size))
}

func (m *Monitor) IncDeckReplenish() {
	m.metrics.DeckReplenishments.Inc()
}

func (m *Monitor) IncDeckReplenishFailure() {
	m.metrics.DeckReplenishFailures.Inc()
}
