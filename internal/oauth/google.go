package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/giftr-dev/giftr/internal/logger"
)

const googleRevokeURL = "https://oauth2.googleapis.com/revoke"

// Google verifies Google ID tokens against the issuer's JWKS, fetched through
// the OpenID Connect discovery document.
type Google struct {
	clientID string
	issuer   string
	client   *http.Client
	log      *logger.Logger

	mu   sync.Mutex
	jwks *keyfunc.JWKS
}

type googleIDTokenClaims struct {
	jwt.RegisteredClaims

	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func NewGoogle(clientID, issuer string, log *logger.Logger) *Google {
	return &Google{
		clientID: clientID,
		issuer:   issuer,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

// keyfuncJWKS fetches the JWKS URI from the issuer's discovery document on
// first use and keeps it refreshed afterwards.
func (g *Google) keyfuncJWKS() (*keyfunc.JWKS, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.jwks != nil {
		return g.jwks, nil
	}

	openIDConfigURL := g.issuer + "/.well-known/openid-configuration"

	resp, err := g.client.Get(openIDConfigURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch OpenID configuration: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: invalid HTTP status code: %d", ErrProvider, resp.StatusCode)
	}

	var discoveryResp struct {
		JWKSURI string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&discoveryResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode OpenID configuration: %v", ErrProvider, err)
	}

	if discoveryResp.JWKSURI == "" {
		return nil, fmt.Errorf("%w: jwks_uri not found in OpenID configuration", ErrProvider)
	}

	jwks, err := keyfunc.Get(discoveryResp.JWKSURI, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			g.log.Warn("JWKS refresh error", "error", err.Error())
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialize JWKS from %s: %v", ErrProvider, discoveryResp.JWKSURI, err)
	}

	g.jwks = jwks
	return jwks, nil
}

// Verify checks the ID token's signature, issuer and audience, and extracts
// the profile claims.
func (g *Google) Verify(ctx context.Context, idToken string) (Profile, error) {
	jwks, err := g.keyfuncJWKS()
	if err != nil {
		return Profile{}, err
	}

	token, err := jwt.ParseWithClaims(idToken, &googleIDTokenClaims{}, jwks.Keyfunc)
	if err != nil {
		return Profile{}, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return Profile{}, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(*googleIDTokenClaims)
	if !ok {
		return Profile{}, errors.New("invalid claims")
	}

	if claims.Issuer != g.issuer && claims.Issuer != strings.TrimPrefix(g.issuer, "https://") {
		return Profile{}, fmt.Errorf("token issuer %q does not match %q", claims.Issuer, g.issuer)
	}

	audienceOK := false
	for _, aud := range claims.Audience {
		if aud == g.clientID {
			audienceOK = true
			break
		}
	}
	if !audienceOK {
		return Profile{}, errors.New("token's client ID does not match this app's")
	}

	return Profile{
		ExternalID: claims.Subject,
		Name:       claims.Name,
		Email:      claims.Email,
		Picture:    claims.Picture,
		Provider:   "google",
	}, nil
}

// Revoke invalidates the token with Google. Best-effort.
func (g *Google) Revoke(ctx context.Context, token string) error {
	form := url.Values{"token": {token}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleRevokeURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: could not revoke the token: status %d", ErrProvider, resp.StatusCode)
	}

	return nil
}
