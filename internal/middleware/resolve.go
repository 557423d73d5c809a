package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/types"
	"gorm.io/gorm"
)

// Entity resolution: each middleware reads a path parameter, loads the record,
// and stores it in the request context for the guards and handler that follow.
// A missing record short-circuits with a notice and a safe fallback view.

func (m *Middleware) ResolveGift() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var gift models.Gift

		if err := m.db.First(&gift, "id = ?", ctx.Param("gift_id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"error":    "There's no gift here.",
					"redirect": "/gifts",
				})
			} else {
				m.log.Error("failed to load gift", "error", err.Error())
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		ctx.Set(types.ContextGiftKey, gift)
		ctx.Next()
	}
}

func (m *Middleware) ResolveClaim() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var claim models.Claim

		err := m.db.Preload("Gift").Preload("Creator").
			First(&claim, "id = ?", ctx.Param("claim_id")).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"error":    "There's no claim here.",
					"redirect": "/gifts/claims",
				})
			} else {
				m.log.Error("failed to load claim", "error", err.Error())
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		ctx.Set(types.ContextClaimKey, claim)
		ctx.Next()
	}
}

func (m *Middleware) ResolveCategory() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var category models.Category

		if err := m.db.First(&category, "id = ?", ctx.Param("category_id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"error":    "There's no category here.",
					"redirect": "/categories",
				})
			} else {
				m.log.Error("failed to load category", "error", err.Error())
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		ctx.Set(types.ContextCategoryKey, category)
		ctx.Next()
	}
}

func (m *Middleware) ResolveProfileUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var user models.User

		if err := m.db.First(&user, "id = ?", ctx.Param("user_id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"error":    "There's no user here.",
					"redirect": "/gifts",
				})
			} else {
				m.log.Error("failed to load user", "error", err.Error())
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		ctx.Set(types.ContextProfileUserKey, user)
		ctx.Next()
	}
}
