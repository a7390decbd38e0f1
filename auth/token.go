package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// SigningSecret verifies bearer tokens issued by the identity provider.
// Overridden from the JWT_SECRET environment variable at startup.
var SigningSecret = []byte("dev-only-secret")

// ErrInvalidToken is returned for missing, malformed or badly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Session is the identity and role extracted from a verified token. It is
// threaded explicitly through request context rather than held as process
// state, so every policy check sees the caller it is deciding for.
type Session struct {
	UserID string
	Role   Role
}

// GenerateToken signs a session token. The server itself never issues tokens
// in production (the auth provider does); this mirrors the provider's claim
// layout for local use and tests.
func GenerateToken(userID string, role Role) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
	})
	return token.SignedString(SigningSecret)
}

// VerifyToken parses and validates a bearer token. A missing role claim
// yields MANAGER, the least-privileged role.
func VerifyToken(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return SigningSecret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Session{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return Session{UserID: sub, Role: ParseRole(role)}, nil
}
