package cache

import (
	"context"
	"sync"
	"time"

	"github.com/drewshoe/top40-api/internal/application/dto"
)

// Memory cache en memoria del proceso con expiración por TTL. Suficiente para
// una instancia única; con varias réplicas conviene el driver Redis para que
// todas compartan las corridas.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     *dto.ReportTableDTO
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, key string) (*dto.ReportTableDTO, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value *dto.ReportTableDTO, ttl time.Duration) error {
	if value == nil || ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Len cantidad de entradas vivas o vencidas aún no recolectadas.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
