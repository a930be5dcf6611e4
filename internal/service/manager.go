package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/openshelf/gateway/internal/ports"
)

const defaultIdleTTL = 30 * time.Minute

// SessionManager is the process-wide registry of session stores, one per
// browser principal, keyed by credential fingerprint. A principal's store
// is created lazily on first sight and lives until the credential stops
// showing up; within one principal the store behaves exactly like a
// process-wide singleton would in a single-user runtime.
type SessionManager struct {
	api     ports.AuthAPI
	logger  *slog.Logger
	idleTTL time.Duration
	now     func() time.Time

	mu     sync.Mutex
	stores map[string]*managedStore
}

type managedStore struct {
	store    *SessionStore
	lastSeen time.Time
}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	API ports.AuthAPI

	// IdleTTL is how long an unseen principal's store is retained.
	// Zero means 30 minutes.
	IdleTTL time.Duration

	Logger *slog.Logger
}

// NewSessionManager constructs an empty SessionManager.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	idleTTL := opts.IdleTTL
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		api:     opts.API,
		logger:  logger,
		idleTTL: idleTTL,
		now:     time.Now,
		stores:  make(map[string]*managedStore),
	}
}

// For returns the store for the given credential, creating it on first
// sight. Anonymous principals share no state, so an absent credential gets
// a fresh store every time.
func (m *SessionManager) For(cred ports.Credential) *SessionStore {
	if !cred.Present() {
		return NewSessionStore(SessionStoreOptions{API: m.api, Logger: m.logger})
	}

	key := cred.Fingerprint()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()

	if ms, ok := m.stores[key]; ok {
		ms.lastSeen = m.now()
		return ms.store
	}

	store := NewSessionStore(SessionStoreOptions{API: m.api, Credential: cred, Logger: m.logger})
	m.stores[key] = &managedStore{store: store, lastSeen: m.now()}
	return store
}

// Drop forgets the principal's store, typically after logout so a reused
// credential value cannot resurrect stale state.
func (m *SessionManager) Drop(cred ports.Credential) {
	if !cred.Present() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, cred.Fingerprint())
}

func (m *SessionManager) pruneLocked() {
	cutoff := m.now().Add(-m.idleTTL)
	for key, ms := range m.stores {
		if ms.lastSeen.Before(cutoff) {
			delete(m.stores, key)
		}
	}
}
