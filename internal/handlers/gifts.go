package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/utils"
	"gorm.io/gorm"
)

type CreateGiftRequest struct {
	Name        string `json:"name" binding:"required"`
	Picture     string `json:"picture"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id"`
}

type UpdateGiftRequest struct {
	Name        string `json:"name" binding:"required"`
	Picture     string `json:"picture"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id"`
}

// filteredGifts returns gifts newest first, narrowed by the cat query
// parameter when it names an existing category. A non-numeric or
// out-of-range value silently falls back to the unfiltered list.
func (h *Handlers) filteredGifts(ctx *gin.Context) ([]models.Gift, *models.Category, error) {
	var categoryCount int64

	if err := h.db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return nil, nil, err
	}

	var gifts []models.Gift

	if reqCat, err := strconv.Atoi(ctx.Query("cat")); err == nil && reqCat > 0 && int64(reqCat) <= categoryCount {
		var category models.Category

		if err := h.db.First(&category, "id = ?", reqCat).Error; err == nil {
			if err := h.db.Where("category_id = ?", reqCat).Order("created_at DESC").Find(&gifts).Error; err != nil {
				return nil, nil, err
			}
			return gifts, &category, nil
		}
	}

	if err := h.db.Order("created_at DESC").Find(&gifts).Error; err != nil {
		return nil, nil, err
	}

	return gifts, nil, nil
}

func (h *Handlers) ListGifts(ctx *gin.Context) {
	gifts, reqCat, err := h.filteredGifts(ctx)

	if err != nil {
		h.log.Error("failed to retrieve gifts", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gifts"})
		return
	}

	var categories []models.Category

	if err := h.db.Find(&categories).Error; err != nil {
		h.log.Error("failed to retrieve categories", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	response := gin.H{
		"gifts":      newGiftResponses(gifts),
		"categories": newCategoryResponses(categories),
	}

	if reqCat != nil {
		response["category"] = newCategoryResponse(*reqCat)
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handlers) GetGift(ctx *gin.Context) {
	gift, err := utils.GetGift(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var categories []models.Category

	if err := h.db.Find(&categories).Error; err != nil {
		h.log.Error("failed to retrieve categories", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"gift":       newGiftResponse(gift),
		"categories": newCategoryResponses(categories),
	})
}

func (h *Handlers) ListUserGifts(ctx *gin.Context) {
	user, err := utils.GetProfileUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var gifts []models.Gift

	if err := h.db.Where("creator_id = ?", user.ID).Order("created_at DESC").Find(&gifts).Error; err != nil {
		h.log.Error("failed to retrieve gifts", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gifts"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"gifts": newGiftResponses(gifts),
		"user":  newUserResponse(user),
	})
}

// NewGiftForm returns the data the add-gift form needs.
func (h *Handlers) NewGiftForm(ctx *gin.Context) {
	var categories []models.Category

	if err := h.db.Find(&categories).Error; err != nil {
		h.log.Error("failed to retrieve categories", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": newCategoryResponses(categories)})
}

func (h *Handlers) CreateGift(ctx *gin.Context) {
	var body CreateGiftRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	gift := models.Gift{
		Name:        body.Name,
		Picture:     body.Picture,
		Description: body.Description,
		CategoryID:  body.CategoryID,
		CreatorID:   userID,
		Open:        true,
	}

	if err := h.db.Create(&gift).Error; err != nil {
		h.log.Error("failed to create gift", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gift"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Thanks for your generosity! " + gift.Name + " was successfully added.",
		"gift":    newGiftResponse(gift),
	})
}

// EditGiftForm returns the gift plus the category list for the edit form.
// The ownership guard runs before this.
func (h *Handlers) EditGiftForm(ctx *gin.Context) {
	gift, err := utils.GetGift(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var categories []models.Category

	if err := h.db.Find(&categories).Error; err != nil {
		h.log.Error("failed to retrieve categories", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"gift":       newGiftResponse(gift),
		"categories": newCategoryResponses(categories),
	})
}

func (h *Handlers) UpdateGift(ctx *gin.Context) {
	gift, err := utils.GetGift(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var body UpdateGiftRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	gift.Name = body.Name
	gift.Picture = body.Picture
	gift.Description = body.Description
	gift.CategoryID = body.CategoryID

	if err := h.db.Save(&gift).Error; err != nil {
		h.log.Error("failed to update gift", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gift"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": gift.Name + " was successfully edited.",
		"gift":    newGiftResponse(gift),
	})
}

func (h *Handlers) DeleteGiftForm(ctx *gin.Context) {
	gift, err := utils.GetGift(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"gift": newGiftResponse(gift)})
}

// DeleteGift removes the gift and every claim referencing it in one
// transaction, so no orphaned claims survive.
func (h *Handlers) DeleteGift(ctx *gin.Context) {
	gift, err := utils.GetGift(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gift_id = ?", gift.ID).Delete(&models.Claim{}).Error; err != nil {
			return err
		}

		return tx.Delete(&gift).Error
	})

	if err != nil {
		h.log.Error("failed to delete gift", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete gift"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  gift.Name + " was successfully deleted.",
		"redirect": "/gifts",
	})
}
