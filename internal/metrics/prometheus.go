package metrics

import (
	"context"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"arrangio/internal/partition"
)

// Prometheus implements Recorder with client_golang collectors. Collectors
// are registered on first use.
type Prometheus struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once
	regErr    error

	solves      *prometheus.CounterVec
	states      prometheus.Counter
	leaves      prometheus.Counter
	cacheHits   prometheus.Counter
	cacheStores prometheus.Counter
	duration    prometheus.Histogram
	lastItems   prometheus.Gauge
	lastGroups  prometheus.Gauge
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus returns a Prometheus recorder. A nil reg means
// prometheus.DefaultRegisterer, an empty namespace means "arrangio".
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "arrangio"
	}
	return &Prometheus{reg: reg, namespace: namespace}
}

func (p *Prometheus) ensureRegistered() error {
	p.once.Do(func() {
		p.solves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solves_total",
			Help:      "Partition searches by outcome.",
		}, []string{"outcome"})
		p.states = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "states_total",
			Help:      "Inner search states visited.",
		})
		p.leaves = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "leaves_total",
			Help:      "Complete partitions evaluated.",
		})
		p.cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Search states answered from the memo cache.",
		})
		p.cacheStores = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "stores_total",
			Help:      "Search results written to the memo cache.",
		})
		p.duration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Wall time of partition searches.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		})
		p.lastItems = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "last_items",
			Help:      "Item count of the most recent search.",
		})
		p.lastGroups = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "last_groups",
			Help:      "Group count of the most recent search.",
		})

		for _, c := range []prometheus.Collector{
			p.solves, p.states, p.leaves, p.cacheHits, p.cacheStores,
			p.duration, p.lastItems, p.lastGroups,
		} {
			if err := p.reg.Register(c); err != nil {
				p.regErr = errors.Join(p.regErr, err)
			}
		}
	})
	return p.regErr
}

// Err reports collector registration failures, if any.
func (p *Prometheus) Err() error {
	return p.ensureRegistered()
}

func (p *Prometheus) RecordSolve(groups, items int, stats partition.Stats, err error) {
	_ = p.ensureRegistered()

	p.solves.WithLabelValues(outcome(err)).Inc()
	p.states.Add(float64(stats.States))
	p.leaves.Add(float64(stats.Leaves))
	p.cacheHits.Add(float64(stats.CacheHits))
	p.cacheStores.Add(float64(stats.CacheStores))
	p.duration.Observe(stats.Elapsed.Seconds())
	p.lastItems.Set(float64(items))
	p.lastGroups.Set(float64(groups))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, partition.ErrInvalidConfiguration):
		return "invalid"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "aborted"
	}
	return "error"
}
