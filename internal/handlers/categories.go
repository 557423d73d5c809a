package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/utils"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
}

func (h *Handlers) ListCategories(ctx *gin.Context) {
	var categories []models.Category

	if err := h.db.Find(&categories).Error; err != nil {
		h.log.Error("failed to retrieve categories", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": newCategoryResponses(categories)})
}

func (h *Handlers) GetCategory(ctx *gin.Context) {
	category, err := utils.GetCategory(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var gifts []models.Gift

	if err := h.db.Where("category_id = ?", category.ID).Order("created_at DESC").Find(&gifts).Error; err != nil {
		h.log.Error("failed to retrieve gifts", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gifts"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"category": newCategoryResponse(category),
		"gifts":    newGiftResponses(gifts),
	})
}

func (h *Handlers) NewCategoryForm(ctx *gin.Context) {
	var categories []models.Category

	if err := h.db.Find(&categories).Error; err != nil {
		h.log.Error("failed to retrieve categories", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": newCategoryResponses(categories)})
}

func (h *Handlers) CreateCategory(ctx *gin.Context) {
	var body CreateCategoryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	category := models.Category{
		Name:        body.Name,
		Description: body.Description,
		Picture:     body.Picture,
	}

	if err := h.db.Create(&category).Error; err != nil {
		h.log.Error("failed to create category", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  category.Name + " was successfully added.",
		"category": newCategoryResponse(category),
	})
}

func (h *Handlers) EditCategoryForm(ctx *gin.Context) {
	category, err := utils.GetCategory(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"category": newCategoryResponse(category)})
}

func (h *Handlers) UpdateCategory(ctx *gin.Context) {
	category, err := utils.GetCategory(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var body UpdateCategoryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	category.Name = body.Name
	category.Description = body.Description
	category.Picture = body.Picture

	if err := h.db.Save(&category).Error; err != nil {
		h.log.Error("failed to update category", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  category.Name + " was successfully edited.",
		"category": newCategoryResponse(category),
	})
}

func (h *Handlers) DeleteCategoryForm(ctx *gin.Context) {
	category, err := utils.GetCategory(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"category": newCategoryResponse(category)})
}

// DeleteCategory detaches the category from its gifts before removing it, so
// gifts outlive their category.
func (h *Handlers) DeleteCategory(ctx *gin.Context) {
	category, err := utils.GetCategory(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Gift{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})

	if err != nil {
		h.log.Error("failed to delete category", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  category.Name + " was successfully deleted.",
		"redirect": "/categories",
	})
}
