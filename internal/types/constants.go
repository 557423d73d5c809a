package types

import (
	"os"
	"strings"
)

// Keys for request-scoped values resolved before a handler runs.
const (
	ContextUserKey        = "user"
	ContextGiftKey        = "gift"
	ContextClaimKey       = "claim"
	ContextCategoryKey    = "category"
	ContextProfileUserKey = "profile_user"
)

// Cookie and header names for sessions and anti-forgery tokens.
const (
	SessionCookie = "giftr_token"
	StateCookie   = "oauth_state"
	CSRFCookie    = "csrf_token"
	CSRFHeader    = "X-CSRF-Token"
	CSRFField     = "_csrf_token"
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
