package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/almasbek/auth-gateway/internal/domain"
	"github.com/almasbek/auth-gateway/internal/token"
	"github.com/almasbek/auth-gateway/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

func newIssuer(ttl time.Duration) *token.Issuer {
	return token.NewIssuer([]byte(testKey), ttl)
}

// newEngine protects GET /protected with Auth, and GET /admin with
// Auth + RequireRole(admin). Handlers echo the identity from context.
func newEngine(tokens *token.Issuer) *gin.Engine {
	r := gin.New()
	authMW := middleware.Auth(tokens)
	r.GET("/protected", authMW, func(c *gin.Context) {
		c.String(http.StatusOK, "%s:%s", c.GetString(middleware.CtxUserID), c.GetString(middleware.CtxRole))
	})
	r.GET("/admin", authMW, middleware.RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "admin ok")
	})
	return r
}

func doGet(t *testing.T, r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	w := doGet(t, newEngine(newIssuer(time.Hour)), "/protected", "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	w := doGet(t, newEngine(newIssuer(time.Hour)), "/protected", "Basic dXNlcjpwYXNz")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_BlankBearerToken_Returns401(t *testing.T) {
	w := doGet(t, newEngine(newIssuer(time.Hour)), "/protected", "Bearer ")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_MalformedToken_Returns403(t *testing.T) {
	w := doGet(t, newEngine(newIssuer(time.Hour)), "/protected", "Bearer not.a.jwt")

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns403(t *testing.T) {
	expired := newIssuer(-time.Minute)
	tok, err := expired.Issue("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := doGet(t, newEngine(newIssuer(time.Hour)), "/protected", "Bearer "+tok)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_WrongSigningKey_Returns403(t *testing.T) {
	other := token.NewIssuer([]byte("different-key-that-is-32-chars!!"), time.Hour)
	tok, err := other.Issue("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := doGet(t, newEngine(newIssuer(time.Hour)), "/protected", "Bearer "+tok)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_ValidToken_PassesAndSetsClaims(t *testing.T) {
	iss := newIssuer(time.Hour)
	tok, err := iss.Issue("user-abc", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := doGet(t, newEngine(iss), "/protected", "Bearer "+tok)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got, want := w.Body.String(), "user-abc:user"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestRequireRole_NonAdmin_Returns403(t *testing.T) {
	iss := newIssuer(time.Hour)
	tok, err := iss.Issue("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := doGet(t, newEngine(iss), "/admin", "Bearer "+tok)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireRole_Admin_Returns200(t *testing.T) {
	iss := newIssuer(time.Hour)
	tok, err := iss.Issue("admin-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := doGet(t, newEngine(iss), "/admin", "Bearer "+tok)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireRole_NoAuthFirst_Returns403(t *testing.T) {
	// RequireRole without a preceding Auth sees an empty role claim.
	r := gin.New()
	r.GET("/orphan", middleware.RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := doGet(t, r, "/orphan", "")

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}
