package registry

import (
	"sync"

	"github.com/sbilibin2017/coinwatch/internal/models"
)

// Registry holds the latest value of every metric series the exporter has
// ever produced. Series are never deleted: an asset that disappears from an
// upstream response keeps exposing its last known values.
//
// One writer (the collection cycle) applies whole batches under the write
// lock, so concurrent readers observe either the full pre-cycle or the full
// post-cycle state, never a mix.
type Registry struct {
	mu   sync.RWMutex
	data map[models.SeriesKey]float64
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{data: make(map[models.SeriesKey]float64)}
}

// Apply stores all samples of one cycle as a single atomic batch.
func (r *Registry) Apply(samples []models.Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range samples {
		r.data[s.Key] = s.Value
	}
}

// Get returns the current value of a series and whether it was ever set.
func (r *Registry) Get(key models.SeriesKey) (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	return v, ok
}

// Snapshot returns a copy of the full series table. The copy is private to
// the caller and stays consistent while the writer keeps applying cycles.
func (r *Registry) Snapshot() map[models.SeriesKey]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[models.SeriesKey]float64, len(r.data))
	for k, v := range r.data {
		out[k] = v
	}
	return out
}
