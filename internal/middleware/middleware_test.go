package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const secret = "test-secret"

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func signed(t *testing.T, key, subject string, method jwt.SigningMethod) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte(key))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAuthMiddleware(t *testing.T) {
	var gotID int64
	handler := AuthMiddleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
	}))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + signed(t, secret, "42", jwt.SigningMethodHS256), http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, "other", "42", jwt.SigningMethodHS256), http.StatusUnauthorized},
		{"wrong method", "Bearer " + signed(t, secret, "42", jwt.SigningMethodHS512), http.StatusUnauthorized},
		{"non numeric subject", "Bearer " + signed(t, secret, "ana", jwt.SigningMethodHS256), http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotID = 0
			req := httptest.NewRequest(http.MethodGet, "/cashflow", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if tc.status == http.StatusOK && gotID != 42 {
				t.Errorf("expected user 42 in context, got %d", gotID)
			}
		})
	}
}

func TestMemoryStore(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	steps := []struct {
		advance time.Duration
		key     string
		want    bool
	}{
		{0, "alerts-generate:1", true},
		{2 * time.Second, "alerts-generate:1", false},
		{0, "alerts-generate:2", true},
		{8 * time.Second, "alerts-generate:1", true},
	}
	for i, s := range steps {
		now = now.Add(s.advance)
		got, err := store.Acquire(ctx, s.key, 10*time.Second)
		if err != nil {
			t.Fatal(err)
		}
		if got != s.want {
			t.Errorf("step %d: Acquire(%s) = %v, want %v", i, s.key, got, s.want)
		}
	}
}

type failingStore struct{}

func (failingStore) Acquire(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}

func TestDebounce(t *testing.T) {
	var served, skipped int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { served++ })
	skip := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { skipped++ })
	key := func(r *http.Request) string { return "alerts-generate:" + r.URL.Query().Get("u") }

	handler := Debounce(NewMemoryStore(), time.Minute, key, skip, quietLogger())(next)
	for _, u := range []string{"1", "1", "2", "1"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/alerts/generate?u="+u, nil))
	}
	if served != 2 || skipped != 2 {
		t.Errorf("expected 2 served and 2 skipped, got %d and %d", served, skipped)
	}

	t.Run("store failure lets requests through", func(t *testing.T) {
		served = 0
		handler := Debounce(failingStore{}, time.Minute, key, skip, quietLogger())(next)
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/alerts/generate", nil))
		if served != 1 {
			t.Errorf("expected request to be served, got %d", served)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	handler := RequestLogger(quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) != "abc" {
		t.Errorf("expected incoming request id to be kept, got %q", rec.Header().Get(requestIDHeader))
	}
}
