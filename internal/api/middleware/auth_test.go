package middleware

import (
	"Quill/internal/pkg/security"
	"Quill/internal/service"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type authResult struct {
	Code int `json:"code"`
	Data struct {
		UserID  uint64 `json:"user_id"`
		IsAdmin bool   `json:"is_admin"`
	} `json:"data"`
}

func newAuthRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		actor := CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"user_id": actor.UserID, "is_admin": actor.IsAdmin()}})
	})
	r.GET("/me", handlers...)
	return r
}

func doAuth(t *testing.T, r *gin.Engine, token string) authResult {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res authResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res
}

func notRevoked(context.Context, string) (bool, error) { return false, nil }

func TestAuthMiddleware(t *testing.T) {
	token, err := security.GenerateToken(8, []string{service.AdminRoleName})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	r := newAuthRouter(AuthMiddleware(notRevoked))
	res := doAuth(t, r, token)
	if res.Code != 200 || res.Data.UserID != 8 || !res.Data.IsAdmin {
		t.Fatalf("unexpected result: %+v", res)
	}

	if res = doAuth(t, r, ""); res.Code != 401 {
		t.Fatalf("missing token should be 401, got %d", res.Code)
	}
	if res = doAuth(t, r, "a.b.c"); res.Code != 401 {
		t.Fatalf("invalid token should be 401, got %d", res.Code)
	}
}

func TestAuthMiddleware_Revoked(t *testing.T) {
	token, _ := security.GenerateToken(8, nil)

	revoked := newAuthRouter(AuthMiddleware(func(context.Context, string) (bool, error) { return true, nil }))
	if res := doAuth(t, revoked, token); res.Code != 401 {
		t.Fatalf("revoked token should be 401, got %d", res.Code)
	}

	broken := newAuthRouter(AuthMiddleware(func(context.Context, string) (bool, error) { return false, errors.New("redis down") }))
	if res := doAuth(t, broken, token); res.Code != 500 {
		t.Fatalf("revocation failure should be 500, got %d", res.Code)
	}
}

func TestAuthOptionalMiddleware(t *testing.T) {
	token, _ := security.GenerateToken(5, nil)
	r := newAuthRouter(AuthOptionalMiddleware(notRevoked))

	if res := doAuth(t, r, token); res.Data.UserID != 5 || res.Data.IsAdmin {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res := doAuth(t, r, ""); res.Code != 200 || res.Data.UserID != 0 {
		t.Fatalf("anonymous should pass through, got %+v", res)
	}
	if res := doAuth(t, r, "garbage"); res.Code != 200 || res.Data.UserID != 0 {
		t.Fatalf("bad token should degrade to anonymous, got %+v", res)
	}
}

func TestAuthOptionalMiddleware_RevokedIsAnonymous(t *testing.T) {
	token, _ := security.GenerateToken(5, nil)

	revoked := newAuthRouter(AuthOptionalMiddleware(func(context.Context, string) (bool, error) { return true, nil }))
	if res := doAuth(t, revoked, token); res.Code != 200 || res.Data.UserID != 0 {
		t.Fatalf("revoked token should read as anonymous, got %+v", res)
	}

	broken := newAuthRouter(AuthOptionalMiddleware(func(context.Context, string) (bool, error) { return false, errors.New("redis down") }))
	if res := doAuth(t, broken, token); res.Code != 200 || res.Data.UserID != 0 {
		t.Fatalf("revocation failure should read as anonymous, got %+v", res)
	}
}

func TestCheckRoles(t *testing.T) {
	adminToken, _ := security.GenerateToken(1, []string{service.AdminRoleName})
	userToken, _ := security.GenerateToken(2, []string{"USER"})
	r := newAuthRouter(AuthMiddleware(notRevoked), CheckRoles(service.AdminRoleName))

	if res := doAuth(t, r, adminToken); res.Code != 200 {
		t.Fatalf("admin should pass, got %d", res.Code)
	}
	if res := doAuth(t, r, userToken); res.Code != 403 {
		t.Fatalf("member should be forbidden, got %d", res.Code)
	}
}
