package auth

import (
	"context"

	"localmart/internal/domain"
)

// Store is the credential store consumed by the session manager. Implementations
// must enforce uniqueness on the mobile number and surface violations as
// ErrDuplicateMobile. InsertVendorAccount must write the user and vendor rows
// atomically: a vendor row can never exist without its user, nor the reverse.
type Store interface {
	// FindUserByMobile returns the user with the given mobile, or nil when absent.
	FindUserByMobile(ctx context.Context, mobile string) (*domain.User, error)
	// FindUserByID returns the user with the given id, or nil when absent.
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	// InsertUser creates a plain user row.
	InsertUser(ctx context.Context, user *domain.User) error
	// InsertVendorAccount creates a user row and its vendor profile in one transaction.
	InsertVendorAccount(ctx context.Context, user *domain.User, vendor *domain.Vendor) error
}
