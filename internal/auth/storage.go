package auth

import (
	"context" // Context for restore calls
	"sync"    // Mutex for the in-memory storage
	"time"    // Resolve timeout
)

// StorageKey is the single key the current session token is stored under
const StorageKey = "auth_token"

// TokenStorage is the client-side storage the session token lives in between
// application runs. Absent or invalid content means "not signed in".
type TokenStorage interface {
	// Get returns the value under key, or "" when absent.
	Get(key string) (string, error)
	// Set stores value under key.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// MemoryTokenStorage is an in-process TokenStorage
type MemoryTokenStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryTokenStorage creates an empty in-process token storage
func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{values: make(map[string]string)}
}

// Get returns the value under key, or "" when absent
func (s *MemoryTokenStorage) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

// Set stores value under key
func (s *MemoryTokenStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes key
func (s *MemoryTokenStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// SessionManager owns the current session of one application instance and its
// persisted token. Lifecycle: NewSessionManager -> Resolve on start ->
// SignIn/SignUp -> SignOut. Restore failures collapse silently to anonymous;
// only store failures during sign-in/sign-up are surfaced.
type SessionManager struct {
	svc            *Service      // Session manager service
	storage        TokenStorage  // Persisted token storage
	resolveTimeout time.Duration // Upper bound on the restore store call

	mu      sync.Mutex
	current *Session // Current session, nil when anonymous
}

// NewSessionManager creates a session manager over the given service and storage
func NewSessionManager(svc *Service, storage TokenStorage, resolveTimeout time.Duration) *SessionManager {
	if resolveTimeout <= 0 {
		resolveTimeout = 10 * time.Second
	}
	return &SessionManager{svc: svc, storage: storage, resolveTimeout: resolveTimeout}
}

// Resolve restores the session from storage on application start. An absent,
// expired or invalid token resolves to anonymous and the stale key is deleted
// from storage. Nothing is surfaced as an error except storage access itself.
func (m *SessionManager) Resolve(ctx context.Context) (*Session, error) {
	token, err := m.storage.Get(StorageKey)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil // Not signed in
	}
	ctx, cancel := context.WithTimeout(ctx, m.resolveTimeout)
	defer cancel()
	sess, err := m.svc.Restore(ctx, token)
	if err != nil {
		// Invalid, expired or orphaned token, or an unreachable store:
		// forget the token and start anonymous
		if derr := m.storage.Delete(StorageKey); derr != nil {
			return nil, derr
		}
		return nil, nil
	}
	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
	return sess, nil
}

// SignIn authenticates and persists the minted token
func (m *SessionManager) SignIn(ctx context.Context, mobile, password string) (*Session, error) {
	user, token, err := m.svc.SignIn(ctx, mobile, password)
	if err != nil {
		return nil, err
	}
	claims, err := ParseToken(token, m.svc.jwtSecret)
	if err != nil {
		return nil, err
	}
	sess := &Session{User: user, Claims: claims, Token: token}
	if err := m.storage.Set(StorageKey, token); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
	return sess, nil
}

// SignUp registers and immediately signs the new user in
func (m *SessionManager) SignUp(ctx context.Context, in RegisterInput) (*Session, error) {
	if _, err := m.svc.SignUp(ctx, in); err != nil {
		return nil, err
	}
	return m.SignIn(ctx, in.Mobile, in.Password)
}

// Current returns the active session, or nil when anonymous
func (m *SessionManager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// SignOut clears the local session state and the stored token. Tokens are not
// revoked server-side; they lapse at their natural expiry.
func (m *SessionManager) SignOut() error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	return m.storage.Delete(StorageKey)
}
