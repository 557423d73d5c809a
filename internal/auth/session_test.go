package auth

import (
	"testing"

	"github.com/giftr-dev/giftr/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret")

	user := models.User{
		Model:    gorm.Model{ID: 42},
		Name:     "Alice",
		Email:    "alice@example.com",
		Picture:  "https://example.com/alice.png",
		Provider: "google",
	}

	token, err := m.Generate(user, "provider-token")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)

	assert.EqualValues(t, 42, claims["user_id"])
	assert.Equal(t, "Alice", claims["name"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, "google", claims["provider"])
	assert.Equal(t, "provider-token", claims["provider_token"])
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-one").Generate(models.User{Model: gorm.Model{ID: 1}}, "")
	require.NoError(t, err)

	_, err = NewManager("secret-two").Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewManager("test-secret").Verify("not.a.token")
	assert.Error(t, err)
}
