package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudh/expense-tracker/backend/internal/auth"
	"github.com/anirudh/expense-tracker/backend/internal/web"
)

// fakeResolver maps tokens to user ids.
type fakeResolver map[string]int64

func (f fakeResolver) Resolve(_ context.Context, token string) (int64, error) {
	return f[token], nil
}

func guardedEcho(t *testing.T, resolver SessionResolver) (http.Handler, *int64) {
	t.Helper()
	var seen int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserID(r.Context())
		require.True(t, ok, "user id must be set for downstream handlers")
		seen = userID
		w.WriteHeader(http.StatusOK)
	})
	return RequireAuth(resolver)(next), &seen
}

func TestRequireAuthMissingCookie(t *testing.T) {
	handler, seen := guardedEcho(t, fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body web.ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, web.KindUnauthorized, body.Kind)
	assert.Zero(t, *seen, "downstream handler must not run")
}

func TestRequireAuthInvalidToken(t *testing.T) {
	handler, seen := guardedEcho(t, fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "stale-token"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, *seen)
}

// failingResolver simulates an unreachable session store.
type failingResolver struct{}

func (failingResolver) Resolve(context.Context, string) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestRequireAuthSessionStoreFailure(t *testing.T) {
	handler, seen := guardedEcho(t, failingResolver{})

	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "good-token"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	// A store outage is a server fault, not an expired session.
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body web.ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, web.KindInternal, body.Kind)
	assert.Zero(t, *seen, "downstream handler must not run")
}

func TestRequireAuthInjectsUserID(t *testing.T) {
	handler, seen := guardedEcho(t, fakeResolver{"good-token": 42})

	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "good-token"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), *seen)
}
