package persistence

import (
	"context"
	"sync"
)

// Slot names mirror the browser storage keys the state was originally
// persisted under.
const (
	SlotCart        = "ecommerce-cart"
	SlotWishlist    = "ecommerce-wishlist"
	SlotPreferences = "ecommerce-preferences"
)

// KV is the storage surface the adapter writes state slots through. Get
// reports found=false for a missing slot without an error.
type KV interface {
	Get(ctx context.Context, slot string) (value string, found bool, err error)
	Set(ctx context.Context, slot, value string) error
	Delete(ctx context.Context, slot string) error
	Ping(ctx context.Context) error
	Close() error
}

// MemoryKV is an in-process KV used for tests and the memory driver.
type MemoryKV struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemoryKV builds an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{slots: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, slot string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[slot]
	return value, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, slot, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}

func (m *MemoryKV) Ping(context.Context) error { return nil }

func (m *MemoryKV) Close() error { return nil }
