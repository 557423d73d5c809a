package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/utils"
)

// Read-only JSON API mirroring the public field sets of the client routes.

type APIGiftResponse struct {
	GiftResponse

	Claims []ClaimResponse `json:"claims"`
}

func (h *Handlers) APIListGifts(ctx *gin.Context) {
	gifts, _, err := h.filteredGifts(ctx)

	if err != nil {
		h.log.Error("failed to retrieve gifts", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gifts"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"gifts": newGiftResponses(gifts)})
}

func (h *Handlers) APIGetGift(ctx *gin.Context) {
	gift, err := utils.GetGift(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var claims []models.Claim

	if err := h.db.Where("gift_id = ?", gift.ID).Find(&claims).Error; err != nil {
		h.log.Error("failed to retrieve claims", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve claims"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"gift": APIGiftResponse{
		GiftResponse: newGiftResponse(gift),
		Claims:       newClaimResponses(claims),
	}})
}

func (h *Handlers) APIListCategories(ctx *gin.Context) {
	var categories []models.Category

	if err := h.db.Find(&categories).Error; err != nil {
		h.log.Error("failed to retrieve categories", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": newCategoryResponses(categories)})
}

func (h *Handlers) APIGetCategory(ctx *gin.Context) {
	category, err := utils.GetCategory(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"category": newCategoryResponse(category)})
}
