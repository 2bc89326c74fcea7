package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skuldata/skuldata/internal/app/models"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "skuldata.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := testJWTService(time.Hour)

	user := &models.User{
		ID:       7,
		Email:    "head@riverside.ac.ke",
		Role:     models.RoleSuperuser,
		SchoolID: 3,
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := service.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := service.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "head@riverside.ac.ke", claims.Email)
	assert.Equal(t, string(models.RoleSuperuser), claims.Role)
	assert.Equal(t, int64(3), claims.SchoolID)
}

func TestValidateExpiredToken(t *testing.T) {
	service := testJWTService(-time.Minute)

	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleTeacher, SchoolID: 1}
	accessToken, _, _, _, err := service.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = service.ValidateAndExtractClaims(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := testJWTService(time.Hour)
	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleTeacher, SchoolID: 1}
	accessToken, _, _, _, err := issuer.GenerateTokenPair(user)
	require.NoError(t, err)

	verifier := NewJWTService(JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour})
	_, err = verifier.ValidateAndExtractClaims(accessToken)
	assert.Error(t, err)
}

func TestValidateEmptyToken(t *testing.T) {
	service := testJWTService(time.Hour)
	_, err := service.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// Bare tokens are accepted as-is
	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
