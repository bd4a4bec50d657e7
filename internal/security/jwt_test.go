package security

import (
	"access-request-server/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	service, err := NewJWTService(&config.JWTConfig{SecretKey: "jwt-secret", AccessTokenTTL: "15m"})
	require.NoError(t, err)
	return service
}

func claimsEcho(t *testing.T, wantUser int64, wantAuthenticated bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetClaimsFromContext(r.Context())
		if wantAuthenticated {
			require.NoError(t, err)
			assert.Equal(t, wantUser, claims.UserID)
		} else {
			assert.Error(t, err)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestJWTService(t)

	token, err := service.GenerateAccessToken(17)
	require.NoError(t, err)

	claims, err := service.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, int64(17), claims.UserID)

	other, err := NewJWTService(&config.JWTConfig{SecretKey: "other", AccessTokenTTL: "15m"})
	require.NoError(t, err)
	_, err = other.ValidateJWT(token)
	assert.Error(t, err)
}

func TestNewJWTService_InvalidConfig(t *testing.T) {
	_, err := NewJWTService(&config.JWTConfig{AccessTokenTTL: "15m"})
	assert.Error(t, err)

	_, err = NewJWTService(&config.JWTConfig{SecretKey: "x", AccessTokenTTL: "soon"})
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	service := newTestJWTService(t)
	token, err := service.GenerateAccessToken(3)
	require.NoError(t, err)

	handler := JWTMiddleware(service)(claimsEcho(t, 3, true))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer broken")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestOptionalJWTMiddleware(t *testing.T) {
	service := newTestJWTService(t)
	token, err := service.GenerateAccessToken(4)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	OptionalJWTMiddleware(service)(claimsEcho(t, 4, true)).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer broken")
	recorder = httptest.NewRecorder()
	OptionalJWTMiddleware(service)(claimsEcho(t, 0, false)).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
