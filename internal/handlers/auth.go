package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/giftr-dev/giftr/internal/models"
	"github.com/giftr-dev/giftr/internal/oauth"
	"github.com/giftr-dev/giftr/internal/types"
	"gorm.io/gorm"
)

type ConnectRequest struct {
	Token string `json:"token" binding:"required"`
}

// ShowLogin mints the anti-forgery state parameter for the OAuth round trip.
// Already-logged-in callers are told to disconnect first.
func (h *Handlers) ShowLogin(ctx *gin.Context) {
	if cookie, err := ctx.Cookie(types.SessionCookie); err == nil && cookie != "" {
		if _, err := h.sessions.Verify(cookie); err == nil {
			ctx.JSON(http.StatusOK, gin.H{
				"message":  "You're already logged in. Disconnect first.",
				"redirect": "/gifts",
			})
			return
		}
	}

	state := strings.ReplaceAll(uuid.NewString(), "-", "")

	h.setStateCookie(ctx, state)

	ctx.JSON(http.StatusOK, gin.H{"state": state})
}

func (h *Handlers) GoogleConnect(ctx *gin.Context) {
	h.connect(ctx, h.google)
}

func (h *Handlers) FacebookConnect(ctx *gin.Context) {
	h.connect(ctx, h.facebook)
}

// connect verifies the provider token, finds or creates the user behind the
// verified profile, and establishes the session. No partial session survives
// a failed verification.
func (h *Handlers) connect(ctx *gin.Context, verifier oauth.Verifier) {
	stateCookie, err := ctx.Cookie(types.StateCookie)

	if err != nil || stateCookie == "" || ctx.Query("state") != stateCookie {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid state parameter"})
		return
	}

	var body ConnectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	profile, err := verifier.Verify(ctx.Request.Context(), body.Token)

	if err != nil {
		if errors.Is(err, oauth.ErrProvider) {
			h.log.Error("identity provider error", "error", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Identity provider error"})
			return
		}

		h.log.Info("token verification failed", "error", err.Error())
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to verify the authorization token"})
		return
	}

	user, created, err := h.findOrCreateUser(profile)

	if err != nil {
		h.log.Error("failed to find or create user", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := h.sessions.Generate(user, body.Token)

	if err != nil {
		h.log.Error("failed to generate session token", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	csrfToken := uuid.NewString()

	h.setSessionCookie(ctx, token)
	h.setCSRFCookie(ctx, csrfToken)
	h.clearStateCookie(ctx)

	status := http.StatusOK
	message := "Welcome " + user.Name + "! You were successfully logged in!"

	if created {
		status = http.StatusCreated
		message = "Welcome " + user.Name + "! You successfully signed up!"
	}

	ctx.JSON(status, gin.H{
		"message":    message,
		"user":       newUserResponse(user),
		"csrf_token": csrfToken,
	})
}

// findOrCreateUser looks the user up by verified email and registers them on
// first login.
func (h *Handlers) findOrCreateUser(profile oauth.Profile) (models.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))

	var user models.User

	err := h.db.Where("email = ?", email).First(&user).Error

	if err == nil {
		return user, false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, err
	}

	user = models.User{
		Name:     profile.Name,
		Email:    email,
		Picture:  profile.Picture,
		OAuthID:  profile.ExternalID,
		Provider: profile.Provider,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return models.User{}, false, err
	}

	return user, true, nil
}

// Disconnect revokes the provider token best-effort and clears the session.
func (h *Handlers) Disconnect(ctx *gin.Context) {
	cookie, err := ctx.Cookie(types.SessionCookie)

	if err != nil || cookie == "" {
		ctx.JSON(http.StatusOK, gin.H{
			"message":  "You were not logged in to begin with...",
			"redirect": "/gifts",
		})
		return
	}

	claims, err := h.sessions.Verify(cookie)

	if err == nil {
		provider, _ := claims["provider"].(string)
		providerToken, _ := claims["provider_token"].(string)

		if providerToken != "" {
			var verifier oauth.Verifier

			switch provider {
			case "google":
				verifier = h.google
			case "facebook":
				verifier = h.facebook
			}

			if verifier != nil {
				if err := verifier.Revoke(ctx.Request.Context(), providerToken); err != nil {
					h.log.Warn("could not revoke the provider token", "provider", provider, "error", err.Error())
				}
			}
		}
	}

	h.clearSessionCookie(ctx)
	h.clearCSRFCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "You have successfully logged out.",
		"redirect": "/gifts",
	})
}
