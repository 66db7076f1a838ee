package stash

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stashPuts = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "stash_puts_total",
		Help: "The total number of values put into the stash",
	}, []string{"stash"})

	stashTakes = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "stash_takes_total",
		Help: "The total number of values taken out of the stash",
	}, []string{"stash"})

	stashMisses = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "stash_misses_total",
		Help: "The total number of lookups or takes with a key that holds no value",
	}, []string{"stash"})

	stashEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "stash_entries",
		Help: "The number of values currently in the stash",
	}, []string{"stash"})

	stashSlots = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "stash_slots",
		Help: "The number of slots (live or free) currently allocated by the stash",
	}, []string{"stash"})
)

// tableMetrics holds the children of the metric vectors for one named table. A nil
// *tableMetrics records nothing.
type tableMetrics struct {
	puts    prometheus.Counter
	takes   prometheus.Counter
	misses  prometheus.Counter
	entries prometheus.Gauge
	slots   prometheus.Gauge
}

func newTableMetrics(name string) *tableMetrics {
	if name == "" {
		return nil
	}

	return &tableMetrics{
		puts:    stashPuts.WithLabelValues(name),
		takes:   stashTakes.WithLabelValues(name),
		misses:  stashMisses.WithLabelValues(name),
		entries: stashEntries.WithLabelValues(name),
		slots:   stashSlots.WithLabelValues(name),
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

func (m *tableMetrics) observeTake(size int) {
	if m == nil {
		return
	}

	m.takes.Inc()
	m.entries.Set(float64(size))
}

func (m *tableMetrics) observeMiss() {
	if m == nil {
		return
	}

	m.misses.Inc()
}

func (m *tableMetrics) observeReset(size, slots int) {
	if m == nil {
		return
	}

	m.entries.Set(float64(size))
	m.slots.Set(float64(slots))
}
