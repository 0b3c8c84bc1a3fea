package store

import (
	"context" // Context on the store contract
	"sync"    // Mutex guarding the maps
	"time"    // Timestamps on inserted rows

	"github.com/google/uuid" // UUID generation

	"localmart/internal/auth"   // Credential store contract
	"localmart/internal/domain" // Domain models
)

// MemoryStore is an in-process credential store with the same contract as the
// MySQL one: unique mobile numbers and atomic vendor account creation. It
// backs tests and local development without a database.
type MemoryStore struct {
	mu       sync.Mutex
	byID     map[string]*domain.User   // Users keyed by id
	byMobile map[string]*domain.User   // Users keyed by mobile
	vendors  map[string]*domain.Vendor // Vendor profiles keyed by user id
}

// NewMemoryStore creates an empty in-process credential store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:     make(map[string]*domain.User),
		byMobile: make(map[string]*domain.User),
		vendors:  make(map[string]*domain.Vendor),
	}
}

// FindUserByMobile returns the user with the given mobile, or nil when absent
func (s *MemoryStore) FindUserByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byMobile[mobile]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// FindUserByID returns the user with the given id, or nil when absent
func (s *MemoryStore) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// InsertUser creates a plain user row
func (s *MemoryStore) InsertUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(user)
}

// InsertVendorAccount creates a user row and its vendor profile atomically
func (s *MemoryStore) InsertVendorAccount(ctx context.Context, user *domain.User, vendor *domain.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.insertLocked(user); err != nil {
		return err
	}
	vendor.ID = user.ID // Shared primary key with the owning user
	copied := *vendor
	s.vendors[user.ID] = &copied
	return nil
}

// VendorByID returns the vendor profile for a user id, or nil when absent
func (s *MemoryStore) VendorByID(id string) *domain.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()
	vendor, ok := s.vendors[id]
	if !ok {
		return nil
	}
	copied := *vendor
	return &copied
}

// UserCount returns the number of stored users
func (s *MemoryStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// VendorCount returns the number of stored vendor profiles
func (s *MemoryStore) VendorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.vendors)
}

// SetActive flips a user's active flag
func (s *MemoryStore) SetActive(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.byID[id]; ok {
		user.IsActive = active
	}
}

// insertLocked stores a user; the caller holds the mutex
func (s *MemoryStore) insertLocked(user *domain.User) error {
	if _, exists := s.byMobile[user.Mobile]; exists {
		return auth.ErrDuplicateMobile // Unique mobile constraint
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	s.byID[user.ID] = &copied
	s.byMobile[user.Mobile] = &copied
	return nil
}
