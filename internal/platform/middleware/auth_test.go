package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrisk/internal/auth"
	"attrisk/internal/auth/lockout"
	"attrisk/pkg/requestcontext"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func protectedEcho(t *testing.T, verifier auth.Verifier, locks *lockout.Service) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Authenticated-As", requestcontext.Username(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
	return RequireCredentials(verifier, locks, nil, nil, discardLogger())(next)
}

func doBasicAuth(h http.Handler, username, password string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("POST", "/predict", bytes.NewReader(nil))
	r.SetBasicAuth(username, password)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRequireCredentialsSuccess(t *testing.T) {
	verifier, err := auth.NewFixedVerifier("ops", "s3cret")
	require.NoError(t, err)

	w := doBasicAuth(protectedEcho(t, verifier, nil), "ops", "s3cret")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ops", w.Header().Get("X-Authenticated-As"))
}

func TestRequireCredentialsMissingHeader(t *testing.T) {
	verifier, err := auth.NewFixedVerifier("ops", "s3cret")
	require.NoError(t, err)

	h := protectedEcho(t, verifier, nil)
	r := httptest.NewRequest("POST", "/predict", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
}

// An unknown username and a wrong password must be indistinguishable from
// the caller's side: same status, same body.
func TestRequireCredentialsSymmetricFailure(t *testing.T) {
	verifier, err := auth.NewFixedVerifier("ops", "s3cret")
	require.NoError(t, err)
	h := protectedEcho(t, verifier, nil)

	unknownUser := doBasicAuth(h, "nobody", "s3cret")
	wrongPassword := doBasicAuth(h, "ops", "wrong")

	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownUser.Body.String(), wrongPassword.Body.String())
}

func TestRequireCredentialsLockout(t *testing.T) {
	verifier, err := auth.NewFixedVerifier("ops", "s3cret")
	require.NoError(t, err)
	locks, err := lockout.New(lockout.NewMemoryStore(),
		lockout.WithConfig(lockout.Config{MaxAttempts: 3, Window: lockout.DefaultConfig().Window}))
	require.NoError(t, err)
	h := protectedEcho(t, verifier, locks)

	for range 3 {
		w := doBasicAuth(h, "ops", "wrong")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// Even the correct password is refused while the identifier is locked,
	// and the response is identical to a plain credential failure.
	locked := doBasicAuth(h, "ops", "s3cret")
	rejected := doBasicAuth(h, "ops", "wrong")
	assert.Equal(t, http.StatusUnauthorized, locked.Code)
	assert.Equal(t, rejected.Body.String(), locked.Body.String())
}

func TestRequireCredentialsResetsLockoutOnSuccess(t *testing.T) {
	verifier, err := auth.NewFixedVerifier("ops", "s3cret")
	require.NoError(t, err)
	locks, err := lockout.New(lockout.NewMemoryStore())
	require.NoError(t, err)
	h := protectedEcho(t, verifier, locks)

	for range 4 {
		doBasicAuth(h, "ops", "wrong")
	}
	assert.Equal(t, http.StatusOK, doBasicAuth(h, "ops", "s3cret").Code)

	// The counter restarted, so a single new failure does not lock.
	doBasicAuth(h, "ops", "wrong")
	assert.Equal(t, http.StatusOK, doBasicAuth(h, "ops", "s3cret").Code)
}
