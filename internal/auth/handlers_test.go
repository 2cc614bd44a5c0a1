package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pratofit/server/internal/config"
)

func testConfig(required bool) *config.Config {
	return &config.Config{
		AuthMode:      "dev",
		AuthRequired:  required,
		JWTSecret:     "test-secret",
		JWTIssuer:     "pratofit",
		JWTTTLMinutes: 60,
	}
}

func TestHandleDevAuth_IssuesVerifiableToken(t *testing.T) {
	service := NewService(testConfig(true))
	handlers := NewHandlers(service)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/dev", nil)
	w := httptest.NewRecorder()

	handlers.HandleDevAuth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp DevAuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.TokenType != "Bearer" {
		t.Errorf("expected token type Bearer, got %s", resp.TokenType)
	}

	sub, err := service.VerifyJWT(resp.AccessToken)
	if err != nil {
		t.Fatalf("expected issued token to verify: %v", err)
	}
	if sub != "dev-user" {
		t.Errorf("expected subject dev-user, got %s", sub)
	}
}

func TestVerifyJWT_RejectsWrongSecret(t *testing.T) {
	issuer := NewService(testConfig(true))
	resp, err := issuer.SignInDev()
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	other := testConfig(true)
	other.JWTSecret = "different-secret"
	verifier := NewService(other)

	if _, err := verifier.VerifyJWT(resp.AccessToken); err == nil {
		t.Error("expected verification to fail with wrong secret")
	}
}

func TestRequireAuth_BlocksMissingToken(t *testing.T) {
	cfg := testConfig(true)
	mw := NewMiddleware(cfg, NewService(cfg))

	called := false
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/profiles", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
	if called {
		t.Error("expected next handler not to be called")
	}
}

func TestRequireAuth_AllowsValidToken(t *testing.T) {
	cfg := testConfig(true)
	service := NewService(cfg)
	mw := NewMiddleware(cfg, service)

	resp, err := service.SignInDev()
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	called := false
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/profiles", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if !called {
		t.Errorf("expected next handler to be called, got status %d", w.Code)
	}
}

func TestRequireAuth_PublicPathsAlwaysPass(t *testing.T) {
	cfg := testConfig(true)
	mw := NewMiddleware(cfg, NewService(cfg))

	for _, path := range []string{"/healthz", "/v1/auth/dev"} {
		called := false
		handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if !called {
			t.Errorf("expected %s to bypass auth", path)
		}
	}
}

func TestRequireAuth_OptionalModePassesWithoutToken(t *testing.T) {
	cfg := testConfig(false)
	mw := NewMiddleware(cfg, NewService(cfg))

	called := false
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/profiles", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if !called {
		t.Error("expected request without token to pass in optional mode")
	}
}

func TestRequireAuth_OptionalModeStillRejectsBadToken(t *testing.T) {
	cfg := testConfig(false)
	mw := NewMiddleware(cfg, NewService(cfg))

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/v1/profiles", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for invalid token, got %d", w.Code)
	}
}
