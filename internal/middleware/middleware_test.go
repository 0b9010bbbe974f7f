package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(discardLogger()))
	r.Use(mw...)
	r.GET("/whoami", func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})
	return r
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_AdminTokenAccepted(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(testSecret, middleware.RoleAdmin))
	token, err := middleware.IssueAccessToken(testSecret, "admin-7", middleware.RoleAdmin, "test", time.Hour)
	require.NoError(t, err)

	w := serve(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-7", w.Body.String())
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	admin, err := middleware.IssueAccessToken(testSecret, "admin-7", middleware.RoleAdmin, "test", time.Hour)
	require.NoError(t, err)
	customer, err := middleware.IssueAccessToken(testSecret, "user-1", "customer", "test", time.Hour)
	require.NoError(t, err)
	otherSecret, err := middleware.IssueAccessToken("another-secret", "admin-7", middleware.RoleAdmin, "test", time.Hour)
	require.NoError(t, err)

	expiredClaims := middleware.AccessClaims{
		Role: middleware.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.AccessClaims{
		Role:             middleware.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		header string
		status int
	}{
		{name: "missing header", secret: testSecret, header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", secret: testSecret, header: "Basic abc", status: http.StatusUnauthorized},
		{name: "garbage token", secret: testSecret, header: "Bearer not-a-jwt", status: http.StatusUnauthorized},
		{name: "wrong signature", secret: testSecret, header: "Bearer " + otherSecret, status: http.StatusUnauthorized},
		{name: "expired", secret: testSecret, header: "Bearer " + expired, status: http.StatusUnauthorized},
		{name: "no subject", secret: testSecret, header: "Bearer " + noSubject, status: http.StatusUnauthorized},
		{name: "wrong role", secret: testSecret, header: "Bearer " + customer, status: http.StatusForbidden},
		{name: "secret not configured", secret: "", header: "Bearer " + admin, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(middleware.AuthMiddleware(tt.secret, middleware.RoleAdmin))
			req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthMiddleware_AnyRoleWhenNoneRequired(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(testSecret, ""))
	token, err := middleware.IssueAccessToken(testSecret, "user-1", "", "test", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(r, token).Code)
}

func TestIssueAccessToken_Validation(t *testing.T) {
	_, err := middleware.IssueAccessToken("", "admin", middleware.RoleAdmin, "test", time.Hour)
	assert.Error(t, err)

	_, err = middleware.IssueAccessToken(testSecret, "", middleware.RoleAdmin, "test", time.Hour)
	assert.Error(t, err)

	_, err = middleware.IssueAccessToken(testSecret, "admin", middleware.RoleAdmin, "test", 0)
	assert.Error(t, err)
}

func TestIssueAccessToken_UniqueTokenIDs(t *testing.T) {
	parse := func(s string) *middleware.AccessClaims {
		claims := &middleware.AccessClaims{}
		_, err := jwt.ParseWithClaims(s, claims, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
		require.NoError(t, err)
		return claims
	}

	a, err := middleware.IssueAccessToken(testSecret, "admin", middleware.RoleAdmin, "test", time.Hour)
	require.NoError(t, err)
	b, err := middleware.IssueAccessToken(testSecret, "admin", middleware.RoleAdmin, "test", time.Hour)
	require.NoError(t, err)

	ca, cb := parse(a), parse(b)
	assert.Len(t, ca.ID, 32)
	assert.NotEqual(t, ca.ID, cb.ID)
	assert.Equal(t, "test", ca.Issuer)
	assert.Equal(t, middleware.RoleAdmin, ca.Role)
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	r := newRouter()

	w := serve(r, "")
	generated := w.Header().Get(middleware.HeaderRequestID)
	assert.Len(t, generated, 36)

	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(middleware.HeaderRequestID))
}

func TestRateLimit(t *testing.T) {
	limiter, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)
	r := newRouter(middleware.RateLimit(limiter))

	assert.Equal(t, http.StatusOK, serve(r, "").Code)
	w := serve(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "").Code)
}

func TestNewMemoryLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewMemoryLimiter("lots")
	assert.Error(t, err)
}

type mockTracker struct {
	mock.Mock
}

func (m *mockTracker) IsInitialized() bool { return true }

func (m *mockTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}

func TestPosthogMiddleware_TracksSuccessfulRequests(t *testing.T) {
	tracker := new(mockTracker)
	tracker.On("Enqueue", "req-42", "whoami", mock.MatchedBy(func(p map[string]any) bool {
		return p["status_code"] == http.StatusOK && p["method"] == http.MethodGet
	})).Once()
	r := newRouter(middleware.PosthogMiddleware(tracker))

	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	tracker.AssertExpectations(t)
}

func TestPosthogMiddleware_SkipsFailures(t *testing.T) {
	tracker := new(mockTracker)
	r := newRouter(middleware.PosthogMiddleware(tracker), middleware.AuthMiddleware(testSecret, middleware.RoleAdmin))

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	tracker.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}
