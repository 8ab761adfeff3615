package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryKV is an in-process KV. A positive MaxValueBytes rejects oversized
// writes the way a full browser store would.
type MemoryKV struct {
	mu     sync.Mutex
	data   map[string]string
	opts   Options
	failOn map[string]error
}

var _ KV = (*MemoryKV)(nil)

func NewMemoryKV(opts Options) *MemoryKV {
	return &MemoryKV{
		data:   make(map[string]string),
		opts:   opts,
		failOn: make(map[string]error),
	}
}

// FailWrites makes every Set of key return err; a nil err clears it.
func (m *MemoryKV) FailWrites(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failOn, key)
		return
	}
	m.failOn[key] = err
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failOn[key]; ok {
		return err
	}
	if m.opts.MaxValueBytes > 0 && len(value) > m.opts.MaxValueBytes {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrQuotaExceeded, key, len(value), m.opts.MaxValueBytes)
	}
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; !ok {
		return ErrNotFound
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryKV) Close() error { return nil }
