package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localmart/internal/api"
	"localmart/internal/auth"
	"localmart/internal/middleware"
	"localmart/internal/store"
)

const testSecret = "test-secret"

// newAuthRouter wires the auth routes over an in-memory credential store
func newAuthRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mem := store.NewMemoryStore()
	svc := auth.NewService(mem, testSecret, 0, 4)

	r := gin.New()
	r.POST("/auth/signup", api.SignUpHandler(svc))
	r.POST("/auth/signin", api.SignInHandler(svc))
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(svc))
	authed.GET("/auth/session", api.SessionHandler())
	return r, mem
}

// doJSON performs a JSON request against the router and decodes the response body
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	decoded := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func customerSignUpBody() gin.H {
	return gin.H{
		"mobile":   "9876543210",
		"password": "hunter2hunter2",
		"name":     "Asha",
		"role":     "customer",
	}
}

func TestSignUpHandlerCustomer(t *testing.T) {
	r, mem := newAuthRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/auth/signup", "", customerSignUpBody())
	require.Equal(t, http.StatusCreated, w.Code)

	// Response carries the user and a usable session token
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "9876543210", user["mobile"])
	assert.Equal(t, "customer", user["role"])
	// The password hash never leaves the store layer
	_, leaked := user["password_hash"]
	assert.False(t, leaked)

	assert.Equal(t, 1, mem.UserCount())
	assert.Equal(t, 0, mem.VendorCount())
}

func TestSignUpHandlerVendor(t *testing.T) {
	r, mem := newAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/auth/signup", "", gin.H{
		"mobile":    "9123456780",
		"password":  "hunter2hunter2",
		"name":      "Ravi",
		"role":      "vendor",
		"shop_name": "Test Shop",
		"category":  "Grocery",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, mem.UserCount())
	assert.Equal(t, 1, mem.VendorCount())
}

func TestSignUpHandlerVendorMissingShopFields(t *testing.T) {
	r, mem := newAuthRouter(t)

	payload := customerSignUpBody()
	payload["role"] = "vendor"
	w, body := doJSON(t, r, http.MethodPost, "/auth/signup", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "shop_name")
	assert.Equal(t, 0, mem.UserCount())
}

func TestSignUpHandlerDuplicateMobile(t *testing.T) {
	r, mem := newAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/auth/signup", "", customerSignUpBody())
	require.Equal(t, http.StatusCreated, w.Code)

	// The duplicate is reported as a conflict, not a generic failure
	w, body := doJSON(t, r, http.MethodPost, "/auth/signup", "", customerSignUpBody())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Mobile number already registered", body["error"])
	assert.Equal(t, 1, mem.UserCount())
}

func TestSignInHandlerIndistinguishableFailures(t *testing.T) {
	r, _ := newAuthRouter(t)
	w, _ := doJSON(t, r, http.MethodPost, "/auth/signup", "", customerSignUpBody())
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown mobile produce identical responses
	w1, body1 := doJSON(t, r, http.MethodPost, "/auth/signin", "", gin.H{
		"mobile": "9876543210", "password": "not-the-password",
	})
	w2, body2 := doJSON(t, r, http.MethodPost, "/auth/signin", "", gin.H{
		"mobile": "0000000000", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, body1, body2)
}

func TestSessionHandlerRestoresUser(t *testing.T) {
	r, _ := newAuthRouter(t)
	w, body := doJSON(t, r, http.MethodPost, "/auth/signup", "", customerSignUpBody())
	require.Equal(t, http.StatusCreated, w.Code)
	token := body["token"].(string)

	w, body = doJSON(t, r, http.MethodGet, "/auth/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "9876543210", user["mobile"])
}

func TestSessionHandlerRejectsBadTokens(t *testing.T) {
	r, _ := newAuthRouter(t)

	cases := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "garbage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := doJSON(t, r, http.MethodGet, "/auth/session", tc.token, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
