package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-parcels/internal/auth"
	"ms-parcels/internal/models"
	"ms-parcels/internal/utils"
)

type stubVerifier struct {
	principal *models.Principal
	err       error
	calls     int
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*models.Principal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

func newGuardedHandler(verifier auth.TokenVerifier, handlerCalled *bool, seen **models.Principal) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*handlerCalled = true
		if p, ok := auth.PrincipalFromContext(r.Context()); ok {
			*seen = p
		}
		w.WriteHeader(http.StatusOK)
	})
	return auth.RequireOwner(verifier, nil)(next)
}

func TestRequireOwnerMissingHeader(t *testing.T) {
	verifier := &stubVerifier{principal: &models.Principal{Email: "a@x.com"}}
	handlerCalled := false
	var seen *models.Principal
	guarded := newGuardedHandler(verifier, &handlerCalled, &seen)

	req := httptest.NewRequest(http.MethodGet, "/parcels?email=a@x.com", nil)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, handlerCalled)
	assert.Equal(t, 0, verifier.calls)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestRequireOwnerMalformedHeader(t *testing.T) {
	verifier := &stubVerifier{principal: &models.Principal{Email: "a@x.com"}}
	handlerCalled := false
	var seen *models.Principal
	guarded := newGuardedHandler(verifier, &handlerCalled, &seen)

	for _, header := range []string{"Bearer", "Basic abc123", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/parcels?email=a@x.com", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
	assert.False(t, handlerCalled)
	assert.Equal(t, 0, verifier.calls)
}

func TestRequireOwnerInvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: auth.ErrInvalidToken}
	handlerCalled := false
	var seen *models.Principal
	guarded := newGuardedHandler(verifier, &handlerCalled, &seen)

	req := httptest.NewRequest(http.MethodGet, "/parcels?email=a@x.com", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	// Invalid credential is Forbidden, unlike the missing-credential
	// case above.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, handlerCalled)
	assert.Equal(t, 1, verifier.calls)
}

func TestRequireOwnerIdentityMismatch(t *testing.T) {
	verifier := &stubVerifier{principal: &models.Principal{Email: "b@x.com"}}
	handlerCalled := false
	var seen *models.Principal
	guarded := newGuardedHandler(verifier, &handlerCalled, &seen)

	req := httptest.NewRequest(http.MethodGet, "/parcels?email=a@x.com", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, handlerCalled)
}

func TestRequireOwnerMatchAttachesPrincipal(t *testing.T) {
	verifier := &stubVerifier{principal: &models.Principal{Email: "a@x.com", Sub: "u1"}}
	handlerCalled := false
	var seen *models.Principal
	guarded := newGuardedHandler(verifier, &handlerCalled, &seen)

	req := httptest.NewRequest(http.MethodGet, "/parcels?email=a@x.com", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, handlerCalled)
	require.NotNil(t, seen)
	assert.Equal(t, "a@x.com", seen.Email)
	assert.Equal(t, "u1", seen.Sub)
}

func TestExtractTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := auth.ExtractTokenFromRequest(req)
	assert.ErrorIs(t, err, auth.ErrMissingAuthHeader)

	req.Header.Set("Authorization", "Bearer token123")
	token, err := auth.ExtractTokenFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "token123", token)
}

func TestInsecureVerifierParsesClaims(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@x.com",
		"sub":   "u1",
	})
	signed, err := token.SignedString([]byte("any-key"))
	require.NoError(t, err)

	principal, err := auth.InsecureVerifier{}.Verify(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", principal.Email)
	assert.Equal(t, "u1", principal.Sub)

	_, err = auth.InsecureVerifier{}.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
