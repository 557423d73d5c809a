package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/types"
)

// CSRF enforces the double-submit token on state-changing requests. The token
// cookie is minted at login; the same value must come back in the X-CSRF-Token
// header or the _csrf_token form field. Mismatch yields a bare 403.
func (m *Middleware) CSRF() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		switch ctx.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			ctx.Next()
			return
		}

		cookie, err := ctx.Cookie(types.CSRFCookie)

		if err != nil || cookie == "" {
			m.log.Warn("CSRF protection blocked a request: no token cookie",
				"path", ctx.Request.URL.Path)
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}

		submitted := ctx.GetHeader(types.CSRFHeader)

		if submitted == "" {
			submitted = ctx.PostForm(types.CSRFField)
		}

		if subtle.ConstantTimeCompare([]byte(cookie), []byte(submitted)) != 1 {
			m.log.Warn("CSRF protection blocked a request: token mismatch",
				"path", ctx.Request.URL.Path)
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}

		ctx.Next()
	}
}
