package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/middleware"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("user not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

func GetGift(ctx *gin.Context) (models.Gift, error) {
	value, exists := ctx.Get(types.ContextGiftKey)

	if !exists {
		return models.Gift{}, fmt.Errorf("gift not resolved")
	}

	gift, ok := value.(models.Gift)

	if !ok {
		return models.Gift{}, fmt.Errorf("invalid gift type in context")
	}

	return gift, nil
}

func GetClaim(ctx *gin.Context) (models.Claim, error) {
	value, exists := ctx.Get(types.ContextClaimKey)

	if !exists {
		return models.Claim{}, fmt.Errorf("claim not resolved")
	}

	claim, ok := value.(models.Claim)

	if !ok {
		return models.Claim{}, fmt.Errorf("invalid claim type in context")
	}

	return claim, nil
}

func GetCategory(ctx *gin.Context) (models.Category, error) {
	value, exists := ctx.Get(types.ContextCategoryKey)

	if !exists {
		return models.Category{}, fmt.Errorf("category not resolved")
	}

	category, ok := value.(models.Category)

	if !ok {
		return models.Category{}, fmt.Errorf("invalid category type in context")
	}

	return category, nil
}

func GetProfileUser(ctx *gin.Context) (models.User, error) {
	value, exists := ctx.Get(types.ContextProfileUserKey)

	if !exists {
		return models.User{}, fmt.Errorf("user not resolved")
	}

	user, ok := value.(models.User)

	if !ok {
		return models.User{}, fmt.Errorf("invalid user type in context")
	}

	return user, nil
}
