package handlers

import (
	"time"

	"github.com/giftr-dev/giftr/internal/models"
)

// Public field sets mirrored by both the client routes and the read API.

type GiftResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Picture     string    `json:"picture"`
	Description string    `json:"description"`
	Open        bool      `json:"open"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatorID   uint      `json:"creator_id"`
	CategoryID  *uint     `json:"category_id"`
}

type ClaimResponse struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	Accepted  bool      `json:"accepted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	GiftID    uint      `json:"gift_id"`
	CreatorID uint      `json:"creator_id"`
}

type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Picture     string    `json:"picture"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newGiftResponse(gift models.Gift) GiftResponse {
	return GiftResponse{
		ID:          gift.ID,
		Name:        gift.Name,
		Picture:     gift.Picture,
		Description: gift.Description,
		Open:        gift.Open,
		CreatedAt:   gift.CreatedAt,
		UpdatedAt:   gift.UpdatedAt,
		CreatorID:   gift.CreatorID,
		CategoryID:  gift.CategoryID,
	}
}

func newGiftResponses(gifts []models.Gift) []GiftResponse {
	response := make([]GiftResponse, 0, len(gifts))

	for _, gift := range gifts {
		response = append(response, newGiftResponse(gift))
	}

	return response
}

func newClaimResponse(claim models.Claim) ClaimResponse {
	return ClaimResponse{
		ID:        claim.ID,
		Message:   claim.Message,
		Accepted:  claim.Accepted,
		CreatedAt: claim.CreatedAt,
		UpdatedAt: claim.UpdatedAt,
		GiftID:    claim.GiftID,
		CreatorID: claim.CreatorID,
	}
}

func newClaimResponses(claims []models.Claim) []ClaimResponse {
	response := make([]ClaimResponse, 0, len(claims))

	for _, claim := range claims {
		response = append(response, newClaimResponse(claim))
	}

	return response
}

func newCategoryResponse(category models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Picture:     category.Picture,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func newCategoryResponses(categories []models.Category) []CategoryResponse {
	response := make([]CategoryResponse, 0, len(categories))

	for _, category := range categories {
		response = append(response, newCategoryResponse(category))
	}

	return response
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Picture:   user.Picture,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
