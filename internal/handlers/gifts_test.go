package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListGifts(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")
	toys := env.createCategory("Toys")
	books := env.createCategory("Books")

	base := time.Now().Add(-time.Hour)
	env.createGiftAt(alice, "Teddy Bear", &toys.ID, base)
	env.createGiftAt(alice, "Novel", &books.ID, base.Add(time.Minute))
	env.createGiftAt(alice, "Mystery Box", nil, base.Add(2*time.Minute))

	w := env.request(http.MethodGet, "/gifts", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	gifts := body["gifts"].([]any)
	require.Len(t, gifts, 3)

	// Newest first.
	assert.Equal(t, "Mystery Box", gifts[0].(map[string]any)["name"])
	assert.Equal(t, "Novel", gifts[1].(map[string]any)["name"])
	assert.Equal(t, "Teddy Bear", gifts[2].(map[string]any)["name"])

	assert.Len(t, body["categories"].([]any), 2)
	assert.NotContains(t, body, "category")
}

func TestListGiftsFilteredByCategory(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")
	toys := env.createCategory("Toys")
	books := env.createCategory("Books")

	env.createGift(alice, "Teddy Bear", &toys.ID)
	env.createGift(alice, "Novel", &books.ID)

	w := env.request(http.MethodGet, "/gifts?cat="+itoa(toys.ID), nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	gifts := body["gifts"].([]any)
	require.Len(t, gifts, 1)
	assert.Equal(t, "Teddy Bear", gifts[0].(map[string]any)["name"])

	category := body["category"].(map[string]any)
	assert.Equal(t, "Toys", category["name"])
}

func TestListGiftsInvalidFilterFallsBack(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")
	toys := env.createCategory("Toys")
	env.createGift(alice, "Teddy Bear", &toys.ID)
	env.createGift(alice, "Mystery Box", nil)

	for _, cat := range []string{"99", "0", "-3", "abc"} {
		w := env.request(http.MethodGet, "/gifts?cat="+cat, nil, nil)

		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Len(t, body["gifts"].([]any), 2, "cat=%s should be ignored", cat)
		assert.NotContains(t, body, "category")
	}
}

func TestGetGift(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")
	gift := env.createGift(alice, "Teddy Bear", nil)

	w := env.request(http.MethodGet, "/gifts/"+itoa(gift.ID), nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Teddy Bear", body["gift"].(map[string]any)["name"])
	assert.Contains(t, body, "categories")
}

func TestGetGiftNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodGet, "/gifts/999", nil, nil)

	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "There's no gift here.", body["error"])
	assert.Equal(t, "/gifts", body["redirect"])
}

func TestListUserGifts(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")
	bob := env.createUser("Bob", "bob@example.com")

	env.createGift(alice, "Teddy Bear", nil)
	env.createGift(alice, "Novel", nil)
	env.createGift(bob, "Skates", nil)

	w := env.request(http.MethodGet, "/gifts/user/"+itoa(alice.ID), nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["gifts"].([]any), 2)
	assert.Equal(t, "Alice", body["user"].(map[string]any)["name"])
}

func TestListUserGiftsUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodGet, "/gifts/user/42", nil, nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "There's no user here.", decodeBody(t, w)["error"])
}

func TestCreateGift(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")
	toys := env.createCategory("Toys")

	w := env.request(http.MethodPost, "/gifts/add", gin.H{
		"name":        "Teddy Bear",
		"description": "Slightly used",
		"category_id": toys.ID,
	}, &alice)

	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Thanks for your generosity! Teddy Bear was successfully added.", body["message"])

	var gift models.Gift
	require.NoError(t, env.db.First(&gift, "name = ?", "Teddy Bear").Error)
	assert.Equal(t, alice.ID, gift.CreatorID)
	assert.True(t, gift.Open)
	require.NotNil(t, gift.CategoryID)
	assert.Equal(t, toys.ID, *gift.CategoryID)
}

func TestCreateGiftRequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodPost, "/gifts/add", gin.H{"name": "Teddy Bear"}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "You need to be logged in to see that page.", body["error"])
	assert.Equal(t, "/login", body["redirect"])

	var count int64
	require.NoError(t, env.db.Model(&models.Gift{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateGiftRequiresName(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")

	w := env.request(http.MethodPost, "/gifts/add", gin.H{"description": "nameless"}, &alice)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request", decodeBody(t, w)["error"])
}

func TestUpdateGift(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")
	gift := env.createGift(alice, "Teddy Bear", nil)

	w := env.request(http.MethodPost, "/gifts/"+itoa(gift.ID)+"/edit", gin.H{
		"name":        "Huge Teddy Bear",
		"description": "Bigger than you think",
	}, &alice)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Huge Teddy Bear was successfully edited.", decodeBody(t, w)["message"])

	updated := env.reloadGift(gift.ID)
	assert.Equal(t, "Huge Teddy Bear", updated.Name)
	assert.Equal(t, "Bigger than you think", updated.Description)
}

func TestUpdateGiftByNonOwner(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")
	bob := env.createUser("Bob", "bob@example.com")
	gift := env.createGift(alice, "Teddy Bear", nil)

	w := env.request(http.MethodPost, "/gifts/"+itoa(gift.ID)+"/edit", gin.H{"name": "Stolen Bear"}, &bob)

	require.Equal(t, http.StatusForbidden, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "You have to be the creator of that gift to see that page.", body["error"])
	assert.Equal(t, "/gifts/"+itoa(gift.ID), body["redirect"])

	assert.Equal(t, "Teddy Bear", env.reloadGift(gift.ID).Name)
}

func TestDeleteGiftRemovesClaims(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")
	bob := env.createUser("Bob", "bob@example.com")
	gift := env.createGift(alice, "Teddy Bear", nil)
	env.createClaim(bob, gift, "My kid would love this")

	w := env.request(http.MethodPost, "/gifts/"+itoa(gift.ID)+"/delete", nil, &alice)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Teddy Bear was successfully deleted.", body["message"])
	assert.Equal(t, "/gifts", body["redirect"])

	var count int64
	require.NoError(t, env.db.Model(&models.Gift{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Zero(t, env.countClaims(gift.ID))
}

func TestDeleteGiftByNonOwner(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")
	bob := env.createUser("Bob", "bob@example.com")
	gift := env.createGift(alice, "Teddy Bear", nil)

	w := env.request(http.MethodPost, "/gifts/"+itoa(gift.ID)+"/delete", nil, &bob)

	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Gift{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
