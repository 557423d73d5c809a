package auth

import (
	"fmt"
	"time"

	"github.com/giftr-dev/giftr/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

const SessionDuration = time.Hour * 168

// Manager signs and verifies session tokens.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Generate returns a signed session token for the given user. providerToken
// is kept in the session so logout can revoke it with the provider.
func (m *Manager) Generate(user models.User, providerToken string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":        user.ID,
		"name":           user.Name,
		"email":          user.Email,
		"picture":        user.Picture,
		"provider":       user.Provider,
		"provider_token": providerToken,
		"exp":            time.Now().Add(SessionDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a session token and returns its claims.
func (m *Manager) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
