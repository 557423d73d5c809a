package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/giftr-dev/giftr/internal/auth"
	"github.com/giftr-dev/giftr/internal/handlers"
	"github.com/giftr-dev/giftr/internal/logger"
	"github.com/giftr-dev/giftr/internal/middleware"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/oauth"
	"github.com/giftr-dev/giftr/internal/router"
	"github.com/giftr-dev/giftr/internal/types"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testCSRFToken = "test-csrf-token"

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type acceptedMail struct {
	giftName     string
	giverName    string
	giverEmail   string
	claimerName  string
	claimerEmail string
}

type stubMailer struct {
	sent []acceptedMail
}

func (s *stubMailer) SendClaimAccepted(_ context.Context, giftName, giverName, giverEmail, claimerName, claimerEmail string) error {
	s.sent = append(s.sent, acceptedMail{
		giftName:     giftName,
		giverName:    giverName,
		giverEmail:   giverEmail,
		claimerName:  claimerName,
		claimerEmail: claimerEmail,
	})
	return nil
}

type stubVerifier struct {
	profile   oauth.Profile
	verifyErr error
	revoked   []string
}

func (s *stubVerifier) Verify(_ context.Context, token string) (oauth.Profile, error) {
	if s.verifyErr != nil {
		return oauth.Profile{}, s.verifyErr
	}
	return s.profile, nil
}

func (s *stubVerifier) Revoke(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

type testEnv struct {
	t        *testing.T
	db       *gorm.DB
	router   *gin.Engine
	sessions *auth.Manager
	mailer   *stubMailer
	google   *stubVerifier
	facebook *stubVerifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Gift{},
		&models.Claim{},
	))

	l := logger.New(8) // errors only
	sessions := auth.NewManager("test-secret")
	mail := &stubMailer{}
	google := &stubVerifier{}
	facebook := &stubVerifier{}

	h := handlers.New(gdb, l, mail, sessions, google, facebook, "", false)
	mw := middleware.New(gdb, sessions, l)

	return &testEnv{
		t:        t,
		db:       gdb,
		router:   router.NewRouter(h, mw),
		sessions: sessions,
		mailer:   mail,
		google:   google,
		facebook: facebook,
	}
}

func (e *testEnv) createUser(name, email string) models.User {
	e.t.Helper()

	user := models.User{
		Name:     name,
		Email:    email,
		Provider: "google",
		OAuthID:  uuid.NewString(),
	}
	require.NoError(e.t, e.db.Create(&user).Error)
	return user
}

func (e *testEnv) createCategory(name string) models.Category {
	e.t.Helper()

	category := models.Category{Name: name}
	require.NoError(e.t, e.db.Create(&category).Error)
	return category
}

func (e *testEnv) createGift(creator models.User, name string, categoryID *uint) models.Gift {
	e.t.Helper()

	gift := models.Gift{
		Name:      name,
		Open:      true,
		CreatorID: creator.ID,
		CategoryID: categoryID,
	}
	require.NoError(e.t, e.db.Create(&gift).Error)
	return gift
}

func (e *testEnv) createGiftAt(creator models.User, name string, categoryID *uint, createdAt time.Time) models.Gift {
	e.t.Helper()

	gift := e.createGift(creator, name, categoryID)
	require.NoError(e.t, e.db.Model(&gift).Update("created_at", createdAt).Error)
	gift.CreatedAt = createdAt
	return gift
}

func (e *testEnv) createClaim(claimant models.User, gift models.Gift, message string) models.Claim {
	e.t.Helper()

	claim := models.Claim{
		Message:   message,
		GiftID:    gift.ID,
		CreatorID: claimant.ID,
	}
	require.NoError(e.t, e.db.Create(&claim).Error)
	return claim
}

// request performs an HTTP request through the full router. A non-nil user is
// logged in via a fresh session cookie plus the CSRF token pair.
func (e *testEnv) request(method, path string, body any, user *models.User) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if user != nil {
		token, err := e.sessions.Generate(*user, "provider-token")
		require.NoError(e.t, err)
		req.AddCookie(&http.Cookie{Name: types.SessionCookie, Value: token})
		req.AddCookie(&http.Cookie{Name: types.CSRFCookie, Value: testCSRFToken})
		req.Header.Set(types.CSRFHeader, testCSRFToken)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// requestWithoutCSRF sends an authenticated request that carries the session
// cookie but no CSRF token pair.
func (e *testEnv) requestWithoutCSRF(method, path string, body any, user models.User) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	token, err := e.sessions.Generate(user, "provider-token")
	require.NoError(e.t, err)
	req.AddCookie(&http.Cookie{Name: types.SessionCookie, Value: token})

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (e *testEnv) countClaims(giftID uint) int64 {
	e.t.Helper()

	var count int64
	require.NoError(e.t, e.db.Model(&models.Claim{}).Where("gift_id = ?", giftID).Count(&count).Error)
	return count
}

func (e *testEnv) reloadGift(id uint) models.Gift {
	e.t.Helper()

	var gift models.Gift
	require.NoError(e.t, e.db.First(&gift, "id = ?", id).Error)
	return gift
}

func (e *testEnv) reloadClaim(id uint) models.Claim {
	e.t.Helper()

	var claim models.Claim
	require.NoError(e.t, e.db.First(&claim, "id = ?", id).Error)
	return claim
}
