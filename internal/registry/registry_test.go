package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/coinwatch/internal/models"
)

func TestRegistry_ApplyAndGet(t *testing.T) {
	r := New()

	key := models.SeriesKey{Name: models.SeriesPriceUSD, Coin: "bitcoin", Symbol: "btc"}

	_, ok := r.Get(key)
	assert.False(t, ok)

	r.Apply([]models.Sample{{Key: key, Value: 100}})

	got, ok := r.Get(key)
	require.True(t, ok)
	assert.Equal(t, 100.0, got)

	// A later batch refreshes the value.
	r.Apply([]models.Sample{{Key: key, Value: 200}})
	got, _ = r.Get(key)
	assert.Equal(t, 200.0, got)
}

func TestRegistry_SeriesPersistAcrossBatches(t *testing.T) {
	r := New()

	btc := models.SeriesKey{Name: models.SeriesPriceUSD, Coin: "bitcoin", Symbol: "btc"}
	eth := models.SeriesKey{Name: models.SeriesPriceUSD, Coin: "ethereum", Symbol: "eth"}

	r.Apply([]models.Sample{{Key: btc, Value: 100}, {Key: eth, Value: 10}})

	// Next batch omits ethereum entirely; its series must stay untouched.
	r.Apply([]models.Sample{{Key: btc, Value: 110}})

	got, ok := r.Get(eth)
	require.True(t, ok)
	assert.Equal(t, 10.0, got)
}

func TestRegistry_SnapshotIsACopy(t *testing.T) {
	r := New()
	key := models.SeriesKey{Name: models.SeriesUp}
	r.Apply([]models.Sample{{Key: key, Value: 1}})

	snap := r.Snapshot()
	snap[key] = 0

	got, _ := r.Get(key)
	assert.Equal(t, 1.0, got)
}

// A reader must never observe a mixture of two cycles: every batch writes the
// same value to all keys, so any snapshot with differing values is a torn read.
func TestRegistry_ConcurrentReadersSeeWholeBatches(t *testing.T) {
	r := New()

	keys := make([]models.SeriesKey, 20)
	for i := range keys {
		keys[i] = models.SeriesKey{Name: models.SeriesPriceUSD, Coin: string(rune('a' + i)), Symbol: "s"}
	}

	batch := func(v float64) []models.Sample {
		samples := make([]models.Sample, len(keys))
		for i, k := range keys {
			samples[i] = models.Sample{Key: k, Value: v}
		}
		return samples
	}

	r.Apply(batch(0))

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for cycle := 1; cycle <= 500; cycle++ {
			r.Apply(batch(float64(cycle)))
		}
		close(done)
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := r.Snapshot()
				first := snap[keys[0]]
				for _, k := range keys {
					if snap[k] != first {
						t.Errorf("torn read: key %v has %v, expected %v", k, snap[k], first)
						return
					}
				}
			}
		}()
	}

	wg.Wait()
}
