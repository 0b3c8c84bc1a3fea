package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localmart/internal/auth"
	"localmart/internal/domain"
	"localmart/internal/store"
)

func TestMemoryStoreUniqueMobile(t *testing.T) {
	mem := store.NewMemoryStore()
	ctx := context.Background()

	first := &domain.User{Mobile: "9876543210", PasswordHash: "h", Name: "Asha", Role: domain.RoleCustomer}
	require.NoError(t, mem.InsertUser(ctx, first))
	assert.NotEmpty(t, first.ID)

	dup := &domain.User{Mobile: "9876543210", PasswordHash: "h", Name: "Other", Role: domain.RoleCustomer}
	assert.ErrorIs(t, mem.InsertUser(ctx, dup), auth.ErrDuplicateMobile)
	assert.Equal(t, 1, mem.UserCount())
}

func TestMemoryStoreVendorAccountAtomic(t *testing.T) {
	mem := store.NewMemoryStore()
	ctx := context.Background()

	taken := &domain.User{Mobile: "9123456780", PasswordHash: "h", Name: "First", Role: domain.RoleCustomer}
	require.NoError(t, mem.InsertUser(ctx, taken))

	// A vendor registration on a taken mobile writes neither row
	user := &domain.User{Mobile: "9123456780", PasswordHash: "h", Name: "Ravi", Role: domain.RoleVendor}
	vendor := &domain.Vendor{ShopName: "Test Shop", Category: "Grocery"}
	assert.ErrorIs(t, mem.InsertVendorAccount(ctx, user, vendor), auth.ErrDuplicateMobile)
	assert.Equal(t, 1, mem.UserCount())
	assert.Equal(t, 0, mem.VendorCount())

	// A fresh mobile writes both rows under the shared primary key
	user.Mobile = "9123456781"
	require.NoError(t, mem.InsertVendorAccount(ctx, user, vendor))
	assert.Equal(t, 2, mem.UserCount())
	assert.Equal(t, 1, mem.VendorCount())
	assert.Equal(t, user.ID, vendor.ID)

	stored := mem.VendorByID(user.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "Test Shop", stored.ShopName)
}

func TestMemoryStoreLookupsReturnNilWhenAbsent(t *testing.T) {
	mem := store.NewMemoryStore()
	ctx := context.Background()

	user, err := mem.FindUserByMobile(ctx, "0000000000")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = mem.FindUserByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, user)
}
