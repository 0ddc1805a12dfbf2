package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-register/internal/infrastructure/client"
	"github.com/sangkips/pos-register/internal/infrastructure/repository"
	"github.com/sangkips/pos-register/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func bearer(t *testing.T, m *utils.JWTManager, companyID, userID int64, roles, perms []string) string {
	t.Helper()
	token, err := m.GenerateAccessToken(companyID, userID, "caja@tienda.co", roles, perms)
	require.NoError(t, err)
	return "Bearer " + token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	m := utils.NewJWTManager("secret", time.Hour)
	r := gin.New()
	r.Use(AuthMiddleware(m))
	r.GET("/me", func(c *gin.Context) {
		token, _ := client.AuthToken(c.Request.Context())
		c.JSON(200, gin.H{"company": GetCompanyID(c), "user": GetUserID(c), "forwarded": token != ""})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", bearer(t, m, 3, 9, nil, nil), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				body := decode(t, w)
				assert.Equal(t, float64(3), body["company"])
				assert.Equal(t, float64(9), body["user"])
				assert.Equal(t, true, body["forwarded"])
			}
		})
	}
}

func TestRequirePermissionAndRole(t *testing.T) {
	m := utils.NewJWTManager("secret", time.Hour)
	r := gin.New()
	r.Use(AuthMiddleware(m))
	r.GET("/sell", RequirePermission("pos-sell"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/cancel", RequireRole("admin", "supervisor"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	cashier := bearer(t, m, 1, 1, []string{"cashier"}, []string{"pos-sell"})
	supervisor := bearer(t, m, 1, 2, []string{"supervisor"}, nil)

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"cashier sells", http.MethodGet, "/sell", cashier, http.StatusNoContent},
		{"supervisor lacks permission", http.MethodGet, "/sell", supervisor, http.StatusForbidden},
		{"cashier can not cancel", http.MethodPost, "/cancel", cashier, http.StatusForbidden},
		{"supervisor cancels", http.MethodPost, "/cancel", supervisor, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", tt.auth)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func idempotentRouter(t *testing.T, status int, calls *int32) (*gin.Engine, string) {
	t.Helper()
	m := utils.NewJWTManager("secret", time.Hour)
	r := gin.New()
	r.Use(AuthMiddleware(m))
	r.POST("/checkout", Idempotency(IdempotencyConfig{
		Repo:   repository.NewMemoryIdempotencyRepository(),
		Logger: zap.NewNop(),
	}), func(c *gin.Context) {
		n := atomic.AddInt32(calls, 1)
		c.JSON(status, gin.H{"call": n})
	})
	return r, bearer(t, m, 4, 8, nil, nil)
}

func post(r *gin.Engine, auth, key, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Authorization", auth)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	var calls int32
	r, auth := idempotentRouter(t, http.StatusCreated, &calls)

	first := post(r, auth, "k-1", `{}`)
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get(ReplayedHeader))

	second := post(r, auth, "k-1", `{}`)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(ReplayedHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	post(r, auth, "", `{}`)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "requests without a key always run")
}

func TestIdempotencyRejectsDifferentBody(t *testing.T) {
	var calls int32
	r, auth := idempotentRouter(t, http.StatusCreated, &calls)

	post(r, auth, "k-2", `{"a":1}`)
	w := post(r, auth, "k-2", `{"a":2}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	var calls int32
	r, auth := idempotentRouter(t, http.StatusBadGateway, &calls)

	post(r, auth, "k-3", `{}`)
	w := post(r, auth, "k-3", `{}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, w.Header().Get(ReplayedHeader))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRateLimiterPerCompany(t *testing.T) {
	m := utils.NewJWTManager("secret", time.Hour)
	rl := NewCompanyRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	defer rl.Stop()

	r := gin.New()
	r.Use(AuthMiddleware(m), rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	get := func(auth string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", auth)
		r.ServeHTTP(w, req)
		return w.Code
	}

	storeA := bearer(t, m, 1, 1, nil, nil)
	storeB := bearer(t, m, 2, 1, nil, nil)

	assert.Equal(t, http.StatusNoContent, get(storeA))
	assert.Equal(t, http.StatusNoContent, get(storeA))
	assert.Equal(t, http.StatusTooManyRequests, get(storeA))
	assert.Equal(t, http.StatusNoContent, get(storeB))

	assert.Equal(t, 2, rl.Stats()["active_companies"])
}

func TestLoggerMiddlewareEchoesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())
}
