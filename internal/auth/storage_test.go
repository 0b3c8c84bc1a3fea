package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localmart/internal/auth"
)

func TestSessionManagerResolveEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	mgr := auth.NewSessionManager(svc, auth.NewMemoryTokenStorage(), 0)

	sess, err := mgr.Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Nil(t, mgr.Current())
}

func TestSessionManagerSignInPersistsToken(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.SignUp(context.Background(), customerInput())
	require.NoError(t, err)

	storage := auth.NewMemoryTokenStorage()
	mgr := auth.NewSessionManager(svc, storage, 0)

	sess, err := mgr.SignIn(context.Background(), "9876543210", "hunter2hunter2")
	require.NoError(t, err)
	require.NotNil(t, sess)

	stored, err := storage.Get(auth.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, stored)

	// A fresh manager over the same storage resolves the session
	again := auth.NewSessionManager(svc, storage, 0)
	resolved, err := again.Resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, sess.User.ID, resolved.User.ID)
}

func TestSessionManagerResolveExpiredTokenClearsStorage(t *testing.T) {
	svc, _ := newTestService(t)
	registered, err := svc.SignUp(context.Background(), customerInput())
	require.NoError(t, err)

	// Seed storage with an already expired token
	storage := auth.NewMemoryTokenStorage()
	require.NoError(t, storage.Set(auth.StorageKey, mintExpiredToken(t, registered)))

	mgr := auth.NewSessionManager(svc, storage, 0)
	sess, err := mgr.Resolve(context.Background())
	require.NoError(t, err) // Expiry is a silent transition to anonymous
	assert.Nil(t, sess)
	assert.Nil(t, mgr.Current())

	// The stale key was removed from storage
	stored, err := storage.Get(auth.StorageKey)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSessionManagerResolveGarbageTokenClearsStorage(t *testing.T) {
	svc, _ := newTestService(t)
	storage := auth.NewMemoryTokenStorage()
	require.NoError(t, storage.Set(auth.StorageKey, "not a token at all"))

	mgr := auth.NewSessionManager(svc, storage, 0)
	sess, err := mgr.Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)

	stored, err := storage.Get(auth.StorageKey)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSessionManagerSignUpSignsIn(t *testing.T) {
	svc, _ := newTestService(t)
	storage := auth.NewMemoryTokenStorage()
	mgr := auth.NewSessionManager(svc, storage, 0)

	sess, err := mgr.SignUp(context.Background(), vendorInput())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, sess, mgr.Current())

	stored, err := storage.Get(auth.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, stored)
}

func TestSessionManagerSignOut(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.SignUp(context.Background(), customerInput())
	require.NoError(t, err)

	storage := auth.NewMemoryTokenStorage()
	mgr := auth.NewSessionManager(svc, storage, 0)
	sess, err := mgr.SignIn(context.Background(), "9876543210", "hunter2hunter2")
	require.NoError(t, err)

	require.NoError(t, mgr.SignOut())
	assert.Nil(t, mgr.Current())

	// Sign-out clears local state only; the token itself stays valid until
	// its natural expiry.
	stored, err := storage.Get(auth.StorageKey)
	require.NoError(t, err)
	assert.Empty(t, stored)
	restored, err := svc.Restore(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, restored.User.ID)
}
