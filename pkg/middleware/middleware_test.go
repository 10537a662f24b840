package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/calyxlabs/calyx/pkg/middleware"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSystemAppliesInOrder(t *testing.T) {
	var order []string

	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	system := middleware.New()
	system.Use(tag("first"))
	system.Use(tag("second"))

	handler := system.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"first", "second", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

type stubAuthenticator struct {
	principal *middleware.Principal
	err       error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, username, password string) (*middleware.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

func TestBasicAuthMissingCredentials(t *testing.T) {
	auth := &stubAuthenticator{principal: &middleware.Principal{Username: "linnea", Role: "botanist"}}
	handler := middleware.BasicAuth(auth, "calyx", discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without credentials")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datasets", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	challenge := rec.Header().Get("WWW-Authenticate")
	if !strings.Contains(challenge, `Basic realm="calyx"`) {
		t.Errorf("WWW-Authenticate = %q, want basic challenge with realm", challenge)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding challenge body: %v", err)
	}
	if body["message"] != "unknown user" {
		t.Errorf("body[message] = %q, want %q", body["message"], "unknown user")
	}
}

func TestBasicAuthRejectedCredentials(t *testing.T) {
	auth := &stubAuthenticator{err: errors.New("invalid credentials")}
	handler := middleware.BasicAuth(auth, "calyx", discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run with rejected credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/datasets", nil)
	req.SetBasicAuth("linnea", "wrong")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("missing WWW-Authenticate challenge")
	}
}

func TestBasicAuthValidCredentials(t *testing.T) {
	auth := &stubAuthenticator{principal: &middleware.Principal{Username: "linnea", Role: "botanist"}}

	var got *middleware.Principal
	handler := middleware.BasicAuth(auth, "calyx", discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = middleware.PrincipalFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/datasets", nil)
	req.SetBasicAuth("linnea", "secret")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got == nil {
		t.Fatal("principal missing from request context")
	}
	if got.Username != "linnea" || got.Role != "botanist" {
		t.Errorf("principal = %+v, want linnea/botanist", got)
	}
}

func TestPrincipalFromEmptyContext(t *testing.T) {
	if p := middleware.PrincipalFrom(context.Background()); p != nil {
		t.Errorf("PrincipalFrom = %+v, want nil", p)
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"https://app.example.com"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           3600,
	}

	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/datasets", nil)
	req.Header.Set("Origin", "https://app.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Allow-Origin = %q, want the request origin", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Errorf("Allow-Methods = %q, want %q", got, "GET, POST")
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "3600" {
		t.Errorf("Max-Age = %q, want 3600", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled: true,
		Origins: []string{"https://app.example.com"},
	}

	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/datasets", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty", got)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:        true,
		Origins:        []string{"https://app.example.com"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
	}

	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/datasets", nil)
	req.Header.Set("Origin", "https://app.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCORSDisabledPassesThrough(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: false}

	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/datasets", nil)
	req.Header.Set("Origin", "https://app.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty when disabled", got)
	}
}

func TestCORSConfigFinalizeDefaults(t *testing.T) {
	var cfg middleware.CORSConfig
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}
	if len(cfg.AllowedMethods) == 0 {
		t.Error("AllowedMethods not defaulted")
	}
	if len(cfg.AllowedHeaders) == 0 {
		t.Error("AllowedHeaders not defaulted")
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", cfg.MaxAge)
	}
}
