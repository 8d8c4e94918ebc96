package middleware

import (
	"net/http"
	"net/http/httptest"
	"partnersync/models"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		caller, _ := CallerFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": caller.UserID.String(), "role": caller.Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	userID := uuid.New()
	valid := signToken(t, testSecret, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    models.RolePartner,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other", jwt.MapClaims{"user_id": userID.String(), "role": "admin"}), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"user_id": userID.String(),
			"role":    "admin",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}), http.StatusUnauthorized},
		{"non uuid user", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"user_id": 42, "role": "admin"}), http.StatusUnauthorized},
		{"unknown role", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"user_id": userID.String(), "role": "root"}), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(newTestRouter(AuthRequired(testSecret)), tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthRequired_StoresCaller(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{"user_id": userID.String(), "role": models.RoleGovernment})

	w := doRequest(newTestRouter(AuthRequired(testSecret)), "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), models.RoleGovernment)
}

func TestAuthRequired_RejectsOtherAlgorithms(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    "admin",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := doRequest(newTestRouter(AuthRequired(testSecret)), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		role       string
		wantStatus int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RolePartner, http.StatusOK},
		{models.RoleGovernment, http.StatusForbidden},
		{models.RolePublic, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			token := signToken(t, testSecret, jwt.MapClaims{"user_id": uuid.NewString(), "role": tt.role})
			r := newTestRouter(AuthRequired(testSecret), Authorize(models.RoleAdmin, models.RolePartner))

			w := doRequest(r, "Bearer "+token)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthorize_WithoutAuthentication(t *testing.T) {
	w := doRequest(newTestRouter(Authorize(models.RoleAdmin)), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", extractToken("Bearer abc"))
	assert.Equal(t, "", extractToken("Bearer"))
	assert.Equal(t, "", extractToken("Bearer a b"))
	assert.Equal(t, "", extractToken(""))
}
