package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/oauth"
	"github.com/giftr-dev/giftr/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connect posts a provider token to the given connect route, optionally
// echoing the state value back through the anti-forgery cookie.
func (e *testEnv) connect(path, queryState, cookieState string) *httptest.ResponseRecorder {
	e.t.Helper()

	payload, err := json.Marshal(gin.H{"token": "provider-token"})
	require.NoError(e.t, err)

	req := httptest.NewRequest(http.MethodPost, path+"?state="+queryState, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	if cookieState != "" {
		req.AddCookie(&http.Cookie{Name: types.StateCookie, Value: cookieState})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestShowLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodGet, "/login", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	state := decodeBody(t, w)["state"].(string)
	assert.NotEmpty(t, state)

	cookie := responseCookie(w, types.StateCookie)
	require.NotNil(t, cookie)
	assert.Equal(t, state, cookie.Value)
}

func TestShowLoginAlreadyLoggedIn(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")

	w := env.request(http.MethodGet, "/login", nil, &alice)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "You're already logged in. Disconnect first.", body["message"])
	assert.Nil(t, responseCookie(w, types.StateCookie))
}

func TestConnectRejectsMissingStateCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.connect("/gconnect", "somestate", "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid state parameter", decodeBody(t, w)["error"])
}

func TestConnectRejectsMismatchedState(t *testing.T) {
	env := newTestEnv(t)

	w := env.connect("/gconnect", "somestate", "otherstate")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid state parameter", decodeBody(t, w)["error"])

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConnectRejectsInvalidToken(t *testing.T) {
	env := newTestEnv(t)

	env.google.verifyErr = errors.New("token expired")

	w := env.connect("/gconnect", "somestate", "somestate")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Failed to verify the authorization token", decodeBody(t, w)["error"])
	assert.Nil(t, responseCookie(w, types.SessionCookie))
}

func TestConnectProviderOutage(t *testing.T) {
	env := newTestEnv(t)

	env.google.verifyErr = fmt.Errorf("%w: status 503", oauth.ErrProvider)

	w := env.connect("/gconnect", "somestate", "somestate")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Identity provider error", decodeBody(t, w)["error"])
}

func TestConnectSignsUpNewUser(t *testing.T) {
	env := newTestEnv(t)

	env.google.profile = oauth.Profile{
		ExternalID: "g-123",
		Name:       "Alice",
		Email:      "Alice@Example.com",
		Picture:    "https://example.com/alice.png",
		Provider:   "google",
	}

	w := env.connect("/gconnect", "somestate", "somestate")

	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Welcome Alice! You successfully signed up!", body["message"])
	assert.NotEmpty(t, body["csrf_token"])

	var user models.User
	require.NoError(t, env.db.First(&user, "email = ?", "alice@example.com").Error)
	assert.Equal(t, "g-123", user.OAuthID)
	assert.Equal(t, "google", user.Provider)

	session := responseCookie(w, types.SessionCookie)
	require.NotNil(t, session)

	claims, err := env.sessions.Verify(session.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, "provider-token", claims["provider_token"])

	csrf := responseCookie(w, types.CSRFCookie)
	require.NotNil(t, csrf)
	assert.Equal(t, body["csrf_token"], csrf.Value)
	assert.False(t, csrf.HttpOnly)

	state := responseCookie(w, types.StateCookie)
	require.NotNil(t, state)
	assert.Empty(t, state.Value)
}

func TestConnectLogsInExistingUser(t *testing.T) {
	env := newTestEnv(t)

	env.createUser("Alice", "alice@example.com")

	env.facebook.profile = oauth.Profile{
		ExternalID: "fb-456",
		Name:       "Alice",
		Email:      "alice@example.com",
		Provider:   "facebook",
	}

	w := env.connect("/fbconnect", "somestate", "somestate")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome Alice! You were successfully logged in!", decodeBody(t, w)["message"])

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDisconnect(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser("Alice", "alice@example.com")

	w := env.request(http.MethodGet, "/disconnect", nil, &alice)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "You have successfully logged out.", decodeBody(t, w)["message"])

	// The provider token stashed in the session was revoked with Google.
	assert.Equal(t, []string{"provider-token"}, env.google.revoked)

	session := responseCookie(w, types.SessionCookie)
	require.NotNil(t, session)
	assert.Empty(t, session.Value)
}

func TestDisconnectWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodGet, "/disconnect", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "You were not logged in to begin with...", decodeBody(t, w)["message"])
	assert.Empty(t, env.google.revoked)
	assert.Empty(t, env.facebook.revoked)
}
