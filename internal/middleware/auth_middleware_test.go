package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "skuldata.test",
	})
}

func authTestRouter(jwtService *auth.JWTService, requiredRole models.RoleType) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	group := router.Group("/", m.JWTAuth())
	handler := func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetRole(c)
		schoolID, _ := GetSchoolID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role, "schoolId": schoolID})
	}
	if requiredRole != "" {
		group.GET("/protected", m.RoleRequired(requiredRole), handler)
	} else {
		group.GET("/protected", handler)
	}
	return router
}

func TestJWTAuthSetsPrincipalContext(t *testing.T) {
	jwtService := newTestJWTService()
	user := &models.User{ID: 9, Email: "head@riverside.ac.ke", Role: models.RoleSuperuser, SchoolID: 4}
	token, _, _, _, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)

	router := authTestRouter(jwtService, "")
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"userId":9,"role":"SUPERUSER","schoolId":4}`, recorder.Body.String())
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := authTestRouter(newTestJWTService(), "")
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expiredIssuer := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: -time.Minute,
	})
	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleTeacher, SchoolID: 1}
	token, _, _, _, err := expiredIssuer.GenerateTokenPair(user)
	require.NoError(t, err)

	router := authTestRouter(newTestJWTService(), "")
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "expired")
}

func TestRoleRequired(t *testing.T) {
	jwtService := newTestJWTService()
	user := &models.User{ID: 2, Email: "t@riverside.ac.ke", Role: models.RoleTeacher, SchoolID: 4}
	token, _, _, _, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)

	router := authTestRouter(jwtService, models.RoleSuperuser)
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
