package keyedmutex

// Tail exposes the current tail ticket so tests can wait for a goroutine to queue.
func (m *Mutex) Tail(key string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tails[key]
}
