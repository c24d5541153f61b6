package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flathive/flathive/internal/model"
	"github.com/flathive/flathive/internal/store/memstore"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	a := NewPasswordAuthenticator(s.Flatmates())

	mate, err := a.Register(ctx, "alex@flat.test", "Alex", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, mate.ID)
	assert.NotEqual(t, "correct horse battery", mate.PasswordHash)

	got, err := a.Authenticate(ctx, "alex@flat.test", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, mate.ID, got.ID)

	_, err = a.Authenticate(ctx, "alex@flat.test", "wrong password!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody@flat.test", "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsWeakPasswordAndDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(memstore.New().Flatmates())

	_, err := a.Register(ctx, "b@flat.test", "Ben", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = a.Register(ctx, "b@flat.test", "Ben", "long enough password")
	require.NoError(t, err)
	_, err = a.Register(ctx, "b@flat.test", "Ben II", "another long password")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	tok, err := m.Generate(&model.Flatmate{ID: "user-1", Email: "alex@flat.test"})
	require.NoError(t, err)

	claims, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.FlatmateID)
	assert.Equal(t, "alex@flat.test", claims.Email)

	_, err = NewJWTManager("other-secret", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTExpiry(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)
	tok, err := m.Generate(&model.Flatmate{ID: "user-1"})
	require.NoError(t, err)
	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireSession(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	tok, err := m.Generate(&model.Flatmate{ID: "user-1", Email: "alex@flat.test"})
	require.NoError(t, err)

	var seen *Session
	handler := RequireSession(m, func(w http.ResponseWriter, r *http.Request, err error) {
		w.WriteHeader(http.StatusUnauthorized)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFrom(r.Context())
	}))

	// no token
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/expenses", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)

	// bearer token
	req := httptest.NewRequest(http.MethodGet, "/v0/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.FlatmateID)

	// query token, as sent by EventSource watch clients
	seen = nil
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v0/watch/expenses?token="+tok, nil))
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.FlatmateID)
}

func TestAuthorize(t *testing.T) {
	assert.ErrorIs(t, Authorize(context.Background()), model.ErrDenied)
	ctx := WithSession(context.Background(), &Session{FlatmateID: "user-1"})
	assert.NoError(t, Authorize(ctx))
}
