package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/types"
	"github.com/giftr-dev/giftr/internal/utils"
	"gorm.io/gorm"
)

type UpdateUserRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address"`
	Picture string `json:"picture"`
}

func (h *Handlers) GetProfile(ctx *gin.Context) {
	user, err := utils.GetProfileUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

func (h *Handlers) EditUserForm(ctx *gin.Context) {
	user, err := utils.GetProfileUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// UpdateUser edits the caller's own profile and reissues the session cookie
// so its identity claims stay in sync.
func (h *Handlers) UpdateUser(ctx *gin.Context) {
	user, err := utils.GetProfileUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var body UpdateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user.Name = body.Name
	user.Email = strings.ToLower(strings.TrimSpace(body.Email))
	user.Address = body.Address
	user.Picture = body.Picture

	if err := h.db.Save(&user).Error; err != nil {
		h.log.Error("failed to update user", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	token, err := h.sessions.Generate(user, h.providerToken(ctx))

	if err != nil {
		h.log.Error("failed to generate session token", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.setSessionCookie(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Your account was successfully edited.",
		"user":    newUserResponse(user),
	})
}

func (h *Handlers) DeleteUserForm(ctx *gin.Context) {
	user, err := utils.GetProfileUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// DeleteUser removes the account along with the user's gifts, the claims on
// those gifts, and the claims the user made elsewhere, in one transaction.
func (h *Handlers) DeleteUser(ctx *gin.Context) {
	user, err := utils.GetProfileUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		giftIDs := tx.Model(&models.Gift{}).Select("id").Where("creator_id = ?", user.ID)

		if err := tx.Where("gift_id IN (?)", giftIDs).Delete(&models.Claim{}).Error; err != nil {
			return err
		}

		if err := tx.Where("creator_id = ?", user.ID).Delete(&models.Claim{}).Error; err != nil {
			return err
		}

		if err := tx.Where("creator_id = ?", user.ID).Delete(&models.Gift{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})

	if err != nil {
		h.log.Error("failed to delete user", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	h.clearSessionCookie(ctx)
	h.clearCSRFCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Your account was successfully deleted.",
		"redirect": "/gifts",
	})
}

// providerToken digs the stored provider token out of the current session so
// a reissued cookie keeps its revocation handle.
func (h *Handlers) providerToken(ctx *gin.Context) string {
	cookie, err := ctx.Cookie(types.SessionCookie)

	if err != nil || cookie == "" {
		return ""
	}

	claims, err := h.sessions.Verify(cookie)

	if err != nil {
		return ""
	}

	token, _ := claims["provider_token"].(string)
	return token
}
