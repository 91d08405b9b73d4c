package testutil

import (
	"context"
	"sync"
)

// MockPropertyStore: in-memory хранилище server properties для unit тестов.
// Не требует реального PostgreSQL.
type MockPropertyStore struct {
	mu    sync.RWMutex
	props map[string]string
	err   error
	reads int
}

// NewMockPropertyStore создаёт новый MockPropertyStore экземпляр.
func NewMockPropertyStore() *MockPropertyStore {
	return &MockPropertyStore{
		props: make(map[string]string),
	}
}

// GetString возвращает значение свойства или def, если свойство не задано.
func (m *MockPropertyStore) GetString(_ context.Context, key, def string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if m.err != nil {
		return def, m.err
	}
	if v, ok := m.props[key]; ok {
		return v, nil
	}
	return def, nil
}

// Set записывает свойство.
func (m *MockPropertyStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[key] = value
}

// Delete удаляет свойство.
func (m *MockPropertyStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.props, key)
}

// FailWith заставляет все последующие GetString возвращать err (nil снимает ошибку).
func (m *MockPropertyStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Reads возвращает количество вызовов GetString.
func (m *MockPropertyStore) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}
