package session

import "sync"

// Manager keeps the live machines keyed by session id. Machines are
// created at login and dropped at logout; nothing here survives a restart.
type Manager struct {
	mu       sync.RWMutex
	machines map[string]*Machine
}

func NewManager() *Manager {
	return &Manager{machines: map[string]*Machine{}}
}

func (mgr *Manager) Put(sessionID string, m *Machine) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.machines[sessionID] = m
}

func (mgr *Manager) Get(sessionID string) *Machine {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	return mgr.machines[sessionID]
}

func (mgr *Manager) Drop(sessionID string) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	delete(mgr.machines, sessionID)
}
