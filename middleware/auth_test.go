package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/abderrahm4ne/ix-project/models"
)

const testSecret = "test-secret"

func setupGuardedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded", AdminRequired(secret), func(c *gin.Context) {
		claims, err := GetClaims(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "email": claims.Email})
	})
	return router
}

func mintToken(t *testing.T, role string, secret string) string {
	t.Helper()

	user := models.User{ID: 1, Email: "admin@example.com", Role: role}
	token, err := GenerateToken(&user, secret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

func TestAdminRequired(t *testing.T) {
	router := setupGuardedRouter(testSecret)

	tests := []struct {
		name           string
		cookie         string
		expectedStatus int
	}{
		{
			name:           "No cookie",
			cookie:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbage token",
			cookie:         "not.a.token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Token signed with a different secret",
			cookie:         mintToken(t, models.RoleAdmin, "other-secret"),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid token with non-admin role",
			cookie:         mintToken(t, models.RoleUser, testSecret),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Valid admin token",
			cookie:         mintToken(t, models.RoleAdmin, testSecret),
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: tt.cookie})
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAdminRequiredRejectsExpiredToken(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		Email:  "admin@example.com",
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)

	router := setupGuardedRouter(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: signed})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateAndParseToken(t *testing.T) {
	user := models.User{ID: 7, Email: "admin@example.com", Role: models.RoleAdmin}

	token, err := GenerateToken(&user, testSecret)
	assert.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// Expiry is one hour out
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejectsWrongSigningMethod(t *testing.T) {
	// An unsigned token must never be accepted
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"role": models.RoleAdmin})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = ParseToken(unsigned, testSecret)
	assert.Error(t, err)
}
