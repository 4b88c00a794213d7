package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RentalDrive/RentalDrive/internal/common/auth"
	"github.com/RentalDrive/RentalDrive/internal/common/config"
	"github.com/gin-gonic/gin"
)

func authTestCfg() config.AuthConfig {
	return config.AuthConfig{
		Enabled:     true,
		JWTSecret:   "test-secret",
		Issuer:      "rentaldrive",
		Audience:    "rentaldrive",
		TokenTTLMin: 60,
		CookieName:  "token",
	}
}

func newAuthTestRouter(cfg config.AuthConfig, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(cfg, nil, nil)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		ai, _ := AuthFromContext(c)
		c.String(http.StatusOK, ai.Subject)
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := newAuthTestRouter(authTestCfg())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareCookieToken(t *testing.T) {
	cfg := authTestCfg()
	r := newAuthTestRouter(cfg)

	token, _, err := auth.GenerateAccessToken(cfg, "u-1", "a@b.c", "client")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != "u-1" {
		t.Fatalf("expected subject in context, got %q", w.Body.String())
	}
}

func TestAuthMiddlewareBearerToken(t *testing.T) {
	cfg := authTestCfg()
	r := newAuthTestRouter(cfg)

	token, _, err := auth.GenerateAccessToken(cfg, "u-2", "b@c.d", "client")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := newAuthTestRouter(authTestCfg())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "not-a-jwt"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	cfg := authTestCfg()
	r := newAuthTestRouter(cfg, "admin", "secretary")

	clientToken, _, err := auth.GenerateAccessToken(cfg, "u-3", "c@d.e", "client")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	adminToken, _, err := auth.GenerateAccessToken(cfg, "u-4", "d@e.f", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: clientToken})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client role, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: adminToken})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", w.Code)
	}
}

type staticRevoker struct{ revoked string }

func (s staticRevoker) IsRevoked(_ context.Context, token string) bool { return token == s.revoked }

func TestAuthMiddlewareRevokedToken(t *testing.T) {
	cfg := authTestCfg()
	token, _, err := auth.GenerateAccessToken(cfg, "u-5", "e@f.g", "client")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg, staticRevoker{revoked: token}, nil), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", w.Code)
	}
}
