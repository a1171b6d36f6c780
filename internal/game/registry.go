package game

import "sync"

// Registry is the id → session map shared by every connection handler.
// All mutation goes through its mutex; individual sessions carry their
// own locks, so the registry lock is never held while touching one.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, building and storing one with
// build when absent. Two racing callers get the same instance.
func (r *Registry) GetOrCreate(id string, build func() *Session) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := build()
	r.sessions[id] = s
	return s
}

// Get looks up a session by id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete removes a session entry. No-op for unknown ids.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Snapshot copies the current mapping so callers can iterate without
// holding the registry lock across per-session work.
func (r *Registry) Snapshot() map[string]*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*Session, len(r.sessions))
	for id, s := range r.sessions {
		out[id] = s
	}
	return out
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
