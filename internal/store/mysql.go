package store

import (
	"context" // Context for query cancellation
	"errors"  // Error kind checks

	"gorm.io/gorm" // GORM ORM library

	"localmart/internal/auth"   // Credential store contract
	"localmart/internal/domain" // Domain models
)

// GormStore is the MySQL-backed credential store. The DB handle must be opened
// with TranslateError so uniqueness violations surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a credential store over a gorm DB handle
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindUserByMobile returns the user with the given mobile, or nil when absent
func (s *GormStore) FindUserByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("mobile = ?", mobile).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No such user
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID returns the user with the given id, or nil when absent
func (s *GormStore) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No such user
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// InsertUser creates a plain user row
func (s *GormStore) InsertUser(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return auth.ErrDuplicateMobile // Unique index on mobile
		}
		return err
	}
	return nil
}

// InsertVendorAccount creates a user row and its vendor profile atomically.
// The vendor row shares the user's primary key.
func (s *GormStore) InsertVendorAccount(ctx context.Context, user *domain.User, vendor *domain.Vendor) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Create user first to obtain the shared primary key
		if err := tx.Create(user).Error; err != nil {
			return err // Return error to rollback
		}
		vendor.ID = user.ID // Shared primary key with the owning user
		if err := tx.Create(vendor).Error; err != nil {
			return err // Return error to rollback
		}
		return nil // Commit transaction
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return auth.ErrDuplicateMobile // Unique index on mobile
		}
		return err
	}
	return nil
}
