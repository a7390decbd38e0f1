package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", RoleDirector)
	require.NoError(t, err)

	sess, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, RoleDirector, sess.Role)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = VerifyToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": "PARTNER",
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = VerifyToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenMissingRoleDefaultsToManager(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-2"})
	signed, err := token.SignedString(SigningSecret)
	require.NoError(t, err)

	sess, err := VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, sess.Role)
}

func TestVerifyTokenMissingSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "PARTNER"})
	signed, err := token.SignedString(SigningSecret)
	require.NoError(t, err)

	_, err = VerifyToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
