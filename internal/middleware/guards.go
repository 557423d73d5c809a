package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/guards"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/types"
)

// Guard middleware: thin adapters that feed resolved entities and the session
// identity into the predicates of the guards package, aborting on denial.

func deny(ctx *gin.Context, d *guards.Denial) {
	ctx.AbortWithStatusJSON(d.Status, gin.H{
		"error":    d.Message,
		"redirect": d.Redirect,
	})
}

func abortUnresolved(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// RequireGiftOwner allows only the creator of the resolved gift.
func (m *Middleware) RequireGiftOwner() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := currentUser(ctx)
		gift, exists := ctx.Get(types.ContextGiftKey)

		if !ok || !exists {
			abortUnresolved(ctx)
			return
		}

		g := gift.(models.Gift)

		if d := guards.RequireOwner(g.CreatorID, user.ID, "/gifts/"+itoa(g.ID)); d != nil {
			d.Message = "You have to be the creator of that gift to see that page."
			deny(ctx, d)
			return
		}

		ctx.Next()
	}
}

// RequireClaimOwner allows only the claimant of the resolved claim.
func (m *Middleware) RequireClaimOwner() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := currentUser(ctx)
		claim, exists := ctx.Get(types.ContextClaimKey)

		if !ok || !exists {
			abortUnresolved(ctx)
			return
		}

		cl := claim.(models.Claim)
		redirect := "/gifts/" + itoa(cl.GiftID) + "/claims/" + itoa(cl.ID)

		if d := guards.RequireOwner(cl.CreatorID, user.ID, redirect); d != nil {
			d.Message = "You have to be the creator of that claim to see that page."
			deny(ctx, d)
			return
		}

		ctx.Next()
	}
}

// RequireClaimGiftOwner allows only the creator of the gift the resolved
// claim points at. Used for accepting claims.
func (m *Middleware) RequireClaimGiftOwner() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := currentUser(ctx)
		claim, exists := ctx.Get(types.ContextClaimKey)

		if !ok || !exists {
			abortUnresolved(ctx)
			return
		}

		cl := claim.(models.Claim)
		redirect := "/gifts/" + itoa(cl.GiftID) + "/claims/" + itoa(cl.ID)

		if d := guards.RequireOwner(cl.Gift.CreatorID, user.ID, redirect); d != nil {
			d.Message = "You have to be the creator of that gift to accept a claim on it."
			deny(ctx, d)
			return
		}

		ctx.Next()
	}
}

// RequireOpenGift rejects the request once the gift in play has been closed.
// Works off the resolved claim's gift when a claim is in context, otherwise
// off the resolved gift.
func (m *Middleware) RequireOpenGift() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var gift models.Gift

		if claim, exists := ctx.Get(types.ContextClaimKey); exists {
			gift = claim.(models.Claim).Gift
		} else if g, exists := ctx.Get(types.ContextGiftKey); exists {
			gift = g.(models.Gift)
		} else {
			abortUnresolved(ctx)
			return
		}

		if d := guards.RequireGiftOpen(gift); d != nil {
			deny(ctx, d)
			return
		}

		ctx.Next()
	}
}

// RequireNotGiftOwner rejects claim creation by the gift's own creator.
func (m *Middleware) RequireNotGiftOwner() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := currentUser(ctx)
		gift, exists := ctx.Get(types.ContextGiftKey)

		if !ok || !exists {
			abortUnresolved(ctx)
			return
		}

		g := gift.(models.Gift)

		if d := guards.RequireNotOwner(g, user.ID); d != nil {
			d.Redirect = "/gifts/" + itoa(g.ID)
			deny(ctx, d)
			return
		}

		ctx.Next()
	}
}

// RequireSelf restricts profile mutations to the profile's own user.
func (m *Middleware) RequireSelf() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := currentUser(ctx)
		profile, exists := ctx.Get(types.ContextProfileUserKey)

		if !ok || !exists {
			abortUnresolved(ctx)
			return
		}

		if d := guards.RequireSelf(profile.(models.User).ID, user.ID); d != nil {
			deny(ctx, d)
			return
		}

		ctx.Next()
	}
}
