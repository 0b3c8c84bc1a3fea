package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localmart/internal/auth"
	"localmart/internal/domain"
	"localmart/internal/middleware"
	"localmart/internal/store"
)

// newGuardedRouter wires a vendor-only probe route behind the JWT and role middleware
func newGuardedRouter(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := auth.NewService(store.NewMemoryStore(), "test-secret", 0, 4)

	r := gin.New()
	vendorOnly := r.Group("/vendor")
	vendorOnly.Use(middleware.JWTAuthMiddleware(svc), middleware.RequireRole(domain.RoleVendor))
	vendorOnly.GET("/probe", func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": sess.User.ID})
	})
	return r, svc
}

func signUpAndSignIn(t *testing.T, svc *auth.Service, in auth.RegisterInput) string {
	t.Helper()
	_, err := svc.SignUp(context.Background(), in)
	require.NoError(t, err)
	_, token, err := svc.SignIn(context.Background(), in.Mobile, in.Password)
	require.NoError(t, err)
	return token
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	r, svc := newGuardedRouter(t)
	token := signUpAndSignIn(t, svc, auth.RegisterInput{
		Mobile: "9123456780", Password: "hunter2hunter2", Name: "Ravi",
		Role: domain.RoleVendor, ShopName: "Test Shop", Category: "Grocery",
	})

	w := get(r, "/vendor/probe", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	r, svc := newGuardedRouter(t)
	token := signUpAndSignIn(t, svc, auth.RegisterInput{
		Mobile: "9876543210", Password: "hunter2hunter2", Name: "Asha",
		Role: domain.RoleCustomer,
	})

	w := get(r, "/vendor/probe", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	r, _ := newGuardedRouter(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/vendor/probe", "").Code)

	// Non-bearer scheme
	req := httptest.NewRequest(http.MethodGet, "/vendor/probe", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
