package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/auth"
	"github.com/giftr-dev/giftr/internal/logger"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/types"
	"gorm.io/gorm"
)

// AuthenticatedUser is the session identity attached to the request context.
type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Picture  string `json:"picture"`
	Provider string `json:"provider"`
}

// Middleware bundles the request-scoped dependencies shared by the
// authentication, anti-forgery and entity-resolution layers.
type Middleware struct {
	db       *gorm.DB
	sessions *auth.Manager
	log      *logger.Logger
}

func New(db *gorm.DB, sessions *auth.Manager, log *logger.Logger) *Middleware {
	return &Middleware{
		db:       db,
		sessions: sessions,
		log:      log,
	}
}

// Authenticate verifies the session token from the cookie or Authorization
// header and loads the matching user into the request context.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := sessionToken(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "You need to be logged in to see that page.",
				"redirect": "/login",
			})
			return
		}

		claims, err := m.sessions.Verify(tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Invalid or expired session.",
				"redirect": "/login",
			})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Invalid session claims.",
				"redirect": "/login",
			})
			return
		}

		userID := uint(userIDFloat)

		var user models.User

		if err := m.db.Where("id = ?", userID).First(&user).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "User not found.",
				"redirect": "/login",
			})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Picture:  user.Picture,
			Provider: user.Provider,
		})
		ctx.Next()
	}
}

func sessionToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(types.SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func currentUser(ctx *gin.Context) (AuthenticatedUser, bool) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return AuthenticatedUser{}, false
	}

	user, ok := value.(AuthenticatedUser)

	return user, ok
}
