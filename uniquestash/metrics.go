package uniquestash

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uniquePuts = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "unique_stash_puts_total",
		Help: "The total number of values put into the unique stash",
	}, []string{"stash"})

	uniqueTakes = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "unique_stash_takes_total",
		Help: "The total number of values taken out of the unique stash",
	}, []string{"stash"})

	uniqueStale = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "unique_stash_stale_total",
		Help: "The total number of lookups or takes with a stale or unknown tag",
	}, []string{"stash"})

	uniqueEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "unique_stash_entries",
		Help: "The number of values currently in the unique stash",
	}, []string{"stash"})

	uniqueSlots = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "unique_stash_slots",
		Help: "The number of slots currently allocated by the unique stash",
	}, []string{"stash"})

	uniqueRetired = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "unique_stash_retired_slots",
		Help: "The number of slots retired because their generation is exhausted",
	}, []string{"stash"})
)

type tableMetrics struct {
	puts    prometheus.Counter
	takes   prometheus.Counter
	stale   prometheus.Counter
	entries prometheus.Gauge
	slots   prometheus.Gauge
	retired prometheus.Gauge
}

func newTableMetrics(name string) *tableMetrics {
	if name == "" {
		return nil
	}

	return &tableMetrics{
		puts:    uniquePuts.WithLabelValues(name),
		takes:   uniqueTakes.WithLabelValues(name),
		stale:   uniqueStale.WithLabelValues(name),
		entries: uniqueEntries.WithLabelValues(name),
		slots:   uniqueSlots.WithLabelValues(name),
		retired: uniqueRetired.WithLabelValues(name),
	}
}

func (m *tableMetrics) observePut(size, slots int) {
	if m == nil {
		return
	}

	m.puts.Inc()
	m.entries.Set(float64(size))
	m.slots.Set(float64(slots))
}

func (m *tableMetrics) observeTake(size, retired int) {
	if m == nil {
		return
	}

	m.takes.Inc()
	m.entries.Set(float64(size))
	m.retired.Set(float64(retired))
}

func (m *tableMetrics) observeStale() {
	if m == nil {
		return
	}

	m.stale.Inc()
}

func (m *tableMetrics) observeReset(size, slots, retired int) {
	if m == nil {
		return
	}

	m.entries.Set(float64(size))
	m.slots.Set(float64(slots))
	m.retired.Set(float64(retired))
}
