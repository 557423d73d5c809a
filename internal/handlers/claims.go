package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/utils"
	"gorm.io/gorm"
)

type CreateClaimRequest struct {
	Message string `json:"message" binding:"required"`
}

type UpdateClaimRequest struct {
	Message string `json:"message" binding:"required"`
}

var errGiftClosed = errors.New("gift is no longer open")

func (h *Handlers) ListAllClaims(ctx *gin.Context) {
	var claims []models.Claim

	if err := h.db.Order("created_at DESC").Find(&claims).Error; err != nil {
		h.log.Error("failed to retrieve claims", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve claims"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"claims": newClaimResponses(claims)})
}

func (h *Handlers) ListGiftClaims(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, gin.H{
		"gift":   newGiftResponse(gift),
		"claims": newClaimResponses(claims),
	})
}

func (h *Handlers) GetClaim(ctx *gin.Context) {
	claim, err := utils.GetClaim(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"claim": newClaimResponse(claim)})
}

// NewClaimForm returns the gift the claim form is about. The open and
// not-owner guards run before this.
func (h *Handlers) NewClaimForm(ctx *gin.Context) {
	gift, err := utils.GetGift(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"gift": newGiftResponse(gift)})
}

// CreateClaim inserts a claim for the current user. The gift's open flag is
// re-checked inside the insert transaction so a claim cannot land on a gift
// that was promised concurrently.
func (h *Handlers) CreateClaim(ctx *gin.Context) {
	gift, err := utils.GetGift(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateClaimRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	claim := models.Claim{
		Message:   body.Message,
		GiftID:    gift.ID,
		CreatorID: userID,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var current models.Gift

		if err := tx.Where("id = ? AND open = ?", gift.ID, true).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errGiftClosed
			}
			return err
		}

		return tx.Create(&claim).Error
	})

	if errors.Is(err, errGiftClosed) {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error":    "You cannot do this anymore. The gift has been promised.",
			"redirect": "/gifts",
		})
		return
	}

	if err != nil {
		h.log.Error("failed to create claim", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create claim"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Congratulations! You successfully claimed " + gift.Name + ".",
		"claim":   newClaimResponse(claim),
	})
}

func (h *Handlers) EditClaimForm(ctx *gin.Context) {
	claim, err := utils.GetClaim(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"claim": newClaimResponse(claim)})
}

func (h *Handlers) UpdateClaim(ctx *gin.Context) {
	claim, err := utils.GetClaim(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var body UpdateClaimRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	claim.Message = body.Message

	if err := h.db.Save(&claim).Error; err != nil {
		h.log.Error("failed to update claim", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update claim"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Your claim on " + claim.Gift.Name + " was successfully edited.",
		"claim":   newClaimResponse(claim),
	})
}

func (h *Handlers) DeleteClaimForm(ctx *gin.Context) {
	claim, err := utils.GetClaim(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"claim": newClaimResponse(claim)})
}

func (h *Handlers) DeleteClaim(ctx *gin.Context) {
	claim, err := utils.GetClaim(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.db.Delete(&claim).Error; err != nil {
		h.log.Error("failed to delete claim", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete claim"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Your claim on " + claim.Gift.Name + " was successfully deleted.",
		"redirect": "/gifts/" + itoa(claim.GiftID) + "/claims",
	})
}

// AcceptClaim finalizes a claim: it flips the claim to accepted and the gift
// to closed in one transaction, then mails both parties. The open flag is
// compare-and-set so concurrent accepts cannot both win.
func (h *Handlers) AcceptClaim(ctx *gin.Context) {
	claim, err := utils.GetClaim(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Gift{}).
			Where("id = ? AND open = ?", claim.GiftID, true).
			Update("open", false)

		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return errGiftClosed
		}

		return tx.Model(&models.Claim{}).
			Where("id = ?", claim.ID).
			Update("accepted", true).Error
	})

	if errors.Is(err, errGiftClosed) {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error":    "You cannot do this anymore. The gift has been promised.",
			"redirect": "/gifts",
		})
		return
	}

	if err != nil {
		h.log.Error("failed to accept claim", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept claim"})
		return
	}

	// Mail failure never rolls back an accepted claim.
	if err := h.mail.SendClaimAccepted(ctx.Request.Context(), claim.Gift.Name,
		currentUser.Name, currentUser.Email,
		claim.Creator.Name, claim.Creator.Email); err != nil {
		h.log.Error("failed to send claim accepted email", "error", err.Error())
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "You accepted " + claim.Creator.Name + "'s claim on your gift.",
		"redirect": "/gifts/" + itoa(claim.GiftID) + "/claims",
	})
}
