package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"account-service/internal/security"
	"account-service/internal/server/respond"
)

func newAuthHandler(t *testing.T) (http.Handler, *security.TokenProvider) {
	t.Helper()
	tokens, err := security.NewTestTokenProvider(10 * time.Minute)
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := GetPrincipal(r.Context())
		if !ok {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(p.Username))
	})
	return Authenticator(tokens, zap.NewNop())(inner), tokens
}

func TestAuthenticator_ValidToken(t *testing.T) {
	h, tokens := newAuthHandler(t)
	token, err := tokens.Issue("alice", "/api/v1/login", []string{"ROLE_USER"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/my", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "alice" {
		t.Errorf("got (%d, %q), want (200, alice)", rec.Code, rec.Body.String())
	}
}

func TestAuthenticator_PassThrough(t *testing.T) {
	h, tokens := newAuthHandler(t)
	token, _ := tokens.Issue("alice", "/api/v1/login", nil)

	headers := map[string]string{
		"no header":        "",
		"uppercase Bearer": "Bearer " + token,
		"basic scheme":     "Basic dXNlcjpwYXNz",
		"bare token":       token,
	}
	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/my", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK || rec.Body.String() != "anonymous" {
				t.Errorf("got (%d, %q), want anonymous pass-through", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthenticator_InvalidToken(t *testing.T) {
	h, tokens := newAuthHandler(t)
	token, _ := tokens.Issue("alice", "/api/v1/login", nil)

	for name, bad := range map[string]string{
		"garbage":  "bearer not-a-token",
		"tampered": "bearer " + token + "x",
		"empty":    "bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/my", nil)
			req.Header.Set("Authorization", bad)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", rec.Code)
			}
			var body respond.CommonResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Result != respond.ResultFail || body.ErrorCode != "COMMON_INVALID_TOKEN" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	expired, err := security.NewTestTokenProvider(-time.Minute)
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	token, _ := expired.Issue("alice", "/api/v1/login", nil)

	h, _ := newAuthHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/my", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireAuthenticated(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := RequireAuthenticated(zap.NewNop())(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/my", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("anonymous status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/my", nil)
	req = req.WithContext(WithPrincipal(req.Context(), security.Principal{Username: "alice"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", rec.Code)
	}
}
