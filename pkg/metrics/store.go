package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records dispatch and persistence activity for the state store.
type StoreMetrics struct {
	actions       *prometheus.CounterVec
	noops         *prometheus.CounterVec
	searches      prometheus.Counter
	stale         prometheus.Counter
	writeFailures *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_actions_dispatched",
		Help: "Actions applied by the state store.",
	}, []string{"action"})
	noops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_actions_noop",
		Help: "Actions that resolved to silent no-ops.",
	}, []string{"action"})
	searches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_invocations",
		Help: "Search lookups started.",
	})
	stale := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_results_discarded",
		Help: "Search completions discarded because a newer lookup superseded them.",
	})
	writeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "persistence_write_failures",
		Help: "Failed slot writes to the persistence backend.",
	}, []string{"slot"})
	reg.MustRegister(actions, noops, searches, stale, writeFailures)
	return &StoreMetrics{
		actions:       actions,
		noops:         noops,
		searches:      searches,
		stale:         stale,
		writeFailures: writeFailures,
	}
}

// IncAction increments the dispatch counter for the named action.
func (m *StoreMetrics) IncAction(action string) {
	if m == nil || m.actions == nil {
		return
	}
	m.actions.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncNoOp increments the silent no-op counter for the named action.
func (m *StoreMetrics) IncNoOp(action string) {
	if m == nil || m.noops == nil {
		return
	}
	m.noops.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncSearch increments the search invocation counter.
func (m *StoreMetrics) IncSearch() {
	if m == nil || m.searches == nil {
		return
	}
	m.searches.Inc()
}

// IncStaleResult increments the discarded-completion counter.
func (m *StoreMetrics) IncStaleResult() {
	if m == nil || m.stale == nil {
		return
	}
	m.stale.Inc()
}

// IncWriteFailure increments the persistence failure counter for the slot.
func (m *StoreMetrics) IncWriteFailure(slot string) {
	if m == nil || m.writeFailures == nil {
		return
	}
	m.writeFailures.WithLabelValues(normalizeLabel(slot)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
