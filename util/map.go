package util

import "sync"

// Map is a map guarded by a RWMutex. The zero value is ready to use.
type Map[K comparable, V any] struct {
	sync.RWMutex
	Map map[K]V
}

func (m *Map[K, V]) Init() {
	m.Map = make(map[K]V)
}

// Add stores v under k unless k is present, and reports whether it did.
func (m *Map[K, V]) Add(k K, v V) bool {
	m.Lock()
	defer m.Unlock()
	if m.Map == nil {
		m.Init()
	}
	if _, ok := m.Map[k]; ok {
		return false
	}
	m.Map[k] = v
	return true
}

func (m *Map[K, V]) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.Map)
}

func (m *Map[K, V]) Delete(k K) (ok bool) {
	m.Lock()
	defer m.Unlock()
	if _, ok = m.Map[k]; ok {
		delete(m.Map, k)
	}
	return
}

// Range visits every entry under the read lock; f must not modify m.
func (m *Map[K, V]) Range(f func(K, V)) {
	m.RLock()
	defer m.RUnlock()
	for k, v := range m.Map {
		f(k, v)
	}
}
