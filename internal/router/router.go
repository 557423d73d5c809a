package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/giftr-dev/giftr/internal/handlers"
	"github.com/giftr-dev/giftr/internal/middleware"
	"github.com/giftr-dev/giftr/internal/types"
)

func NewRouter(h *handlers.Handlers, mw *middleware.Middleware) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", types.CSRFHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", h.HealthCheck)
	r.GET("/", h.ListGifts)

	// Identity and session
	r.GET("/login", h.ShowLogin)
	r.GET("/gconnect", h.GoogleConnect)
	r.POST("/gconnect", h.GoogleConnect)
	r.GET("/fbconnect", h.FacebookConnect)
	r.POST("/fbconnect", h.FacebookConnect)
	r.GET("/disconnect", h.Disconnect)

	gifts := r.Group("/gifts")
	{
		gifts.GET("", h.ListGifts)
		gifts.GET("/claims", h.ListAllClaims)
		gifts.GET("/user/:user_id", mw.ResolveProfileUser(), h.ListUserGifts)

		gifts.GET("/add", mw.Authenticate(), h.NewGiftForm)
		gifts.POST("/add", mw.Authenticate(), mw.CSRF(), h.CreateGift)

		gifts.GET("/:gift_id", mw.ResolveGift(), h.GetGift)
		gifts.GET("/:gift_id/edit", mw.Authenticate(), mw.ResolveGift(), mw.RequireGiftOwner(), h.EditGiftForm)
		gifts.POST("/:gift_id/edit", mw.Authenticate(), mw.CSRF(), mw.ResolveGift(), mw.RequireGiftOwner(), h.UpdateGift)
		gifts.GET("/:gift_id/delete", mw.Authenticate(), mw.ResolveGift(), mw.RequireGiftOwner(), h.DeleteGiftForm)
		gifts.POST("/:gift_id/delete", mw.Authenticate(), mw.CSRF(), mw.ResolveGift(), mw.RequireGiftOwner(), h.DeleteGift)

		gifts.GET("/:gift_id/claims", mw.ResolveGift(), h.ListGiftClaims)
		gifts.GET("/:gift_id/claims/add", mw.Authenticate(), mw.ResolveGift(), mw.RequireOpenGift(), mw.RequireNotGiftOwner(), h.NewClaimForm)
		gifts.POST("/:gift_id/claims/add", mw.Authenticate(), mw.CSRF(), mw.ResolveGift(), mw.RequireOpenGift(), mw.RequireNotGiftOwner(), h.CreateClaim)

		gifts.GET("/:gift_id/claims/:claim_id", mw.ResolveClaim(), h.GetClaim)
		gifts.GET("/:gift_id/claims/:claim_id/edit", mw.Authenticate(), mw.ResolveClaim(), mw.RequireClaimOwner(), mw.RequireOpenGift(), h.EditClaimForm)
		gifts.POST("/:gift_id/claims/:claim_id/edit", mw.Authenticate(), mw.CSRF(), mw.ResolveClaim(), mw.RequireClaimOwner(), mw.RequireOpenGift(), h.UpdateClaim)
		gifts.GET("/:gift_id/claims/:claim_id/delete", mw.Authenticate(), mw.ResolveClaim(), mw.RequireClaimOwner(), mw.RequireOpenGift(), h.DeleteClaimForm)
		gifts.POST("/:gift_id/claims/:claim_id/delete", mw.Authenticate(), mw.CSRF(), mw.ResolveClaim(), mw.RequireClaimOwner(), mw.RequireOpenGift(), h.DeleteClaim)
		gifts.POST("/:gift_id/claims/:claim_id/accept", mw.Authenticate(), mw.CSRF(), mw.ResolveClaim(), mw.RequireClaimGiftOwner(), mw.RequireOpenGift(), h.AcceptClaim)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", h.ListCategories)

		categories.GET("/add", mw.Authenticate(), h.NewCategoryForm)
		categories.POST("/add", mw.Authenticate(), mw.CSRF(), h.CreateCategory)

		categories.GET("/:category_id", mw.ResolveCategory(), h.GetCategory)
		categories.GET("/:category_id/edit", mw.Authenticate(), mw.ResolveCategory(), h.EditCategoryForm)
		categories.POST("/:category_id/edit", mw.Authenticate(), mw.CSRF(), mw.ResolveCategory(), h.UpdateCategory)
		categories.GET("/:category_id/delete", mw.Authenticate(), mw.ResolveCategory(), h.DeleteCategoryForm)
		categories.POST("/:category_id/delete", mw.Authenticate(), mw.CSRF(), mw.ResolveCategory(), h.DeleteCategory)
	}

	users := r.Group("/users", mw.Authenticate())
	{
		users.GET("/:user_id/profile", mw.ResolveProfileUser(), h.GetProfile)
		users.GET("/:user_id/edit", mw.ResolveProfileUser(), mw.RequireSelf(), h.EditUserForm)
		users.POST("/:user_id/edit", mw.CSRF(), mw.ResolveProfileUser(), mw.RequireSelf(), h.UpdateUser)
		users.GET("/:user_id/delete", mw.ResolveProfileUser(), mw.RequireSelf(), h.DeleteUserForm)
		users.POST("/:user_id/delete", mw.CSRF(), mw.ResolveProfileUser(), mw.RequireSelf(), h.DeleteUser)
	}

	api := r.Group("/api")
	{
		api.GET("/gifts", h.APIListGifts)
		api.GET("/gifts/:gift_id", mw.ResolveGift(), h.APIGetGift)
		api.GET("/categories", h.APIListCategories)
		api.GET("/categories/:category_id", mw.ResolveCategory(), h.APIGetCategory)
	}

	return r
}
