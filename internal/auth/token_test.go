package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localmart/internal/auth"
	"localmart/internal/domain"
)

const testSecret = "test-secret"

func testUser() *domain.User {
	return &domain.User{
		ID:     "user-1",
		Mobile: "9876543210",
		Role:   domain.RoleCustomer,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.MintToken(testUser(), testSecret, 0)
	require.NoError(t, err)

	claims, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "9876543210", claims.Mobile)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestTokenExpirySevenDays(t *testing.T) {
	before := time.Now()
	token, err := auth.MintToken(testUser(), testSecret, 0)
	require.NoError(t, err)
	after := time.Now()

	claims, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)

	// Expiry lands exactly seven days after mint time
	exp := claims.ExpiresAt.Time
	assert.False(t, exp.Before(before.Add(auth.TokenTTL).Truncate(time.Second)))
	assert.False(t, exp.After(after.Add(auth.TokenTTL).Add(time.Second)))
}

func TestParseTokenMalformed(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not a token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
		{"wrong segments", "a.b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := auth.ParseToken(tc.token, testSecret)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestParseTokenTampered(t *testing.T) {
	token, err := auth.MintToken(testUser(), testSecret, 0)
	require.NoError(t, err)

	other, err := auth.MintToken(&domain.User{
		ID:     "user-2",
		Mobile: "9123456780",
		Role:   domain.RoleVendor,
	}, testSecret, 0)
	require.NoError(t, err)

	// Splice a different payload under the original signature
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	claims, err := auth.ParseToken(tampered, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// A token signed with a different secret is equally invalid
	claims, err = auth.ParseToken(token, "other-secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	expired := mintExpiredToken(t, testUser())
	claims, err := auth.ParseToken(expired, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

// mintExpiredToken signs a token whose expiry already passed
func mintExpiredToken(t *testing.T, user *domain.User) string {
	t.Helper()
	claims := auth.Claims{
		UserID: user.ID,
		Mobile: user.Mobile,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}
