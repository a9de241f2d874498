package store

import "sync"

// durable key -> string store, scoped to one user/origin
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// key of the persisted track index for a resource
func TrackKey(resource string) string {
	return "track-" + resource
}

// key of the persisted playback position for a resource
func PositionKey(resource string) string {
	return "currentTime-" + resource
}

// Memory is a process-local Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}
