package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks person record mutations and searches.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	PersonsCreated prometheus.Counter
	PersonsUpdated prometheus.Counter
	PersonsDeleted prometheus.Counter
	Searches       prometheus.Counter
	PersonsStored  prometheus.Gauge
	EventsDropped  prometheus.Counter
}

// New registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PersonsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "persons_created_total",
			Help: "Total number of person records created",
		}),
		PersonsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "persons_updated_total",
			Help: "Total number of person records updated",
		}),
		PersonsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "persons_deleted_total",
			Help: "Total number of person records deleted",
		}),
		Searches: factory.NewCounter(prometheus.CounterOpts{
			Name: "person_searches_total",
			Help: "Total number of non-empty person searches",
		}),
		PersonsStored: factory.NewGauge(prometheus.GaugeOpts{
			Name: "persons_stored",
			Help: "Number of person records currently held in memory",
		}),
		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "person_events_dropped_total",
			Help: "Change events dropped because a subscriber was too slow",
		}),
	}
}

// IncrementCreated records a successful create and the new record total.
func (m *Metrics) IncrementCreated(stored int) {
	if m == nil {
		return
	}
	m.PersonsCreated.Inc()
	m.PersonsStored.Set(float64(stored))
}

// SetStored reports the current number of records.
func (m *Metrics) SetStored(stored int) {
	if m == nil {
		return
	}
	m.PersonsStored.Set(float64(stored))
}

// IncrementUpdated records a successful update.
func (m *Metrics) IncrementUpdated() {
	if m == nil {
		return
	}
	m.PersonsUpdated.Inc()
}

// IncrementDeleted records a successful delete and the new record total.
func (m *Metrics) IncrementDeleted(stored int) {
	if m == nil {
		return
	}
	m.PersonsDeleted.Inc()
	m.PersonsStored.Set(float64(stored))
}

// IncrementSearches records a search with a non-empty query.
func (m *Metrics) IncrementSearches() {
	if m == nil {
		return
	}
	m.Searches.Inc()
}

// IncrementEventsDropped records a change event a subscriber never received.
func (m *Metrics) IncrementEventsDropped() {
	if m == nil {
		return
	}
	m.EventsDropped.Inc()
}
