package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/auth"
	"github.com/giftr-dev/giftr/internal/logger"
	"github.com/giftr-dev/giftr/internal/mailer"
	"github.com/giftr-dev/giftr/internal/oauth"
	"github.com/giftr-dev/giftr/internal/types"
	"gorm.io/gorm"
)

// Handlers holds the request-scoped dependencies of every route handler.
type Handlers struct {
	db       *gorm.DB
	log      *logger.Logger
	mail     mailer.Mailer
	sessions *auth.Manager
	google   oauth.Verifier
	facebook oauth.Verifier

	cookieDomain string
	cookieSecure bool
}

func New(
	db *gorm.DB,
	log *logger.Logger,
	mail mailer.Mailer,
	sessions *auth.Manager,
	google oauth.Verifier,
	facebook oauth.Verifier,
	cookieDomain string,
	cookieSecure bool,
) *Handlers {
	return &Handlers{
		db:           db,
		log:          log,
		mail:         mail,
		sessions:     sessions,
		google:       google,
		facebook:     facebook,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (h *Handlers) setCookie(ctx *gin.Context, name, value string, maxAge int, httpOnly bool) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   maxAge,
		Secure:   h.cookieSecure,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) setSessionCookie(ctx *gin.Context, token string) {
	h.setCookie(ctx, types.SessionCookie, token, 60*60*24*7, true)
}

func (h *Handlers) clearSessionCookie(ctx *gin.Context) {
	h.setCookie(ctx, types.SessionCookie, "", -1, true)
}

// The CSRF cookie is readable by the client so it can echo the token back in
// the X-CSRF-Token header.
func (h *Handlers) setCSRFCookie(ctx *gin.Context, token string) {
	h.setCookie(ctx, types.CSRFCookie, token, 60*60*24*7, false)
}

func (h *Handlers) clearCSRFCookie(ctx *gin.Context) {
	h.setCookie(ctx, types.CSRFCookie, "", -1, false)
}

func (h *Handlers) setStateCookie(ctx *gin.Context, state string) {
	h.setCookie(ctx, types.StateCookie, state, 60*10, true)
}

func (h *Handlers) clearStateCookie(ctx *gin.Context) {
	h.setCookie(ctx, types.StateCookie, "", -1, true)
}
