// Package guards holds the pure authorization predicates evaluated before
// mutation handlers run. Each predicate returns nil to allow the request, or
// a Denial carrying the user-visible message and a safe fallback view.
package guards

import (
	"net/http"

	"github.com/giftr-dev/giftr/internal/models"
)

// Denial describes a refused request.
type Denial struct {
	Status   int
	Message  string
	Redirect string
}

// RequireOwner allows only the record's creator.
func RequireOwner(creatorID, userID uint, redirect string) *Denial {
	if creatorID == userID {
		return nil
	}

	return &Denial{
		Status:   http.StatusForbidden,
		Message:  "You have to be the creator to do that.",
		Redirect: redirect,
	}
}

// RequireGiftOpen rejects mutations on a gift that has been promised.
func RequireGiftOpen(gift models.Gift) *Denial {
	if gift.Open {
		return nil
	}

	return &Denial{
		Status:   http.StatusForbidden,
		Message:  "You cannot do this anymore. The gift has been promised.",
		Redirect: "/gifts",
	}
}

// RequireNotOwner rejects claims by the gift's own creator.
func RequireNotOwner(gift models.Gift, userID uint) *Denial {
	if gift.CreatorID != userID {
		return nil
	}

	return &Denial{
		Status:   http.StatusForbidden,
		Message:  "You cannot claim your own gift ;-)",
		Redirect: "/gifts",
	}
}

// RequireSelf allows a user to act only on their own profile.
func RequireSelf(targetID, userID uint) *Denial {
	if targetID == userID {
		return nil
	}

	return &Denial{
		Status:   http.StatusForbidden,
		Message:  "You can only do this for your own profile.",
		Redirect: "/gifts",
	}
}
