package recorder

import (
	"context"
	"sort"
	"sync"

	"PriceChart/internal/model"
)

// MemoryRecorder keeps observations in process memory. It is used when
// SQLite is not configured.
type MemoryRecorder struct {
	mu   sync.RWMutex
	data map[string]map[model.Date]float64
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{data: make(map[string]map[model.Date]float64)}
}

func (m *MemoryRecorder) SaveObservations(_ context.Context, symbol string, obs []model.Observation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.data[symbol]
	if !ok {
		bucket = make(map[model.Date]float64, len(obs))
		m.data[symbol] = bucket
	}
	for _, o := range obs {
		bucket[o.Date] = o.Price
	}
	return nil
}

func (m *MemoryRecorder) LoadObservations(_ context.Context, symbol string) ([]model.Observation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bucket, ok := m.data[symbol]
	if !ok || len(bucket) == 0 {
		return nil, ErrUnknownSymbol
	}
	out := make([]model.Observation, 0, len(bucket))
	for d, p := range bucket {
		out = append(out, model.Observation{Date: d, Price: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *MemoryRecorder) Symbols(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.data))
	for sym := range m.data {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryRecorder) Close() error { return nil }
