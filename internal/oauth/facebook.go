package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/giftr-dev/giftr/internal/logger"
)

const defaultGraphURL = "https://graph.facebook.com"

// Facebook exchanges the short-lived token the client obtained for a
// long-lived one, then resolves the profile through the Graph API.
type Facebook struct {
	appID     string
	appSecret string
	graphURL  string
	client    *http.Client
	log       *logger.Logger
}

func NewFacebook(appID, appSecret string, log *logger.Logger) *Facebook {
	return &Facebook{
		appID:     appID,
		appSecret: appSecret,
		graphURL:  defaultGraphURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
}

func (f *Facebook) Verify(ctx context.Context, shortToken string) (Profile, error) {
	token, err := f.exchangeToken(ctx, shortToken)
	if err != nil {
		return Profile{}, err
	}

	query := url.Values{
		"access_token": {token},
		"fields":       {"name,id,email,picture"},
	}

	var me struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}

	if err := f.getJSON(ctx, f.graphURL+"/v2.8/me?"+query.Encode(), &me); err != nil {
		return Profile{}, err
	}

	if me.ID == "" || me.Email == "" {
		return Profile{}, errors.New("profile response missing id or email")
	}

	return Profile{
		ExternalID: me.ID,
		Name:       me.Name,
		Email:      me.Email,
		Picture:    me.Picture.Data.URL,
		Provider:   "facebook",
	}, nil
}

// exchangeToken upgrades a short-lived client token to a long-lived
// server-side token.
func (f *Facebook) exchangeToken(ctx context.Context, shortToken string) (string, error) {
	query := url.Values{
		"grant_type":        {"fb_exchange_token"},
		"client_id":         {f.appID},
		"client_secret":     {f.appSecret},
		"fb_exchange_token": {shortToken},
	}

	var exchange struct {
		AccessToken string `json:"access_token"`
	}

	if err := f.getJSON(ctx, f.graphURL+"/oauth/access_token?"+query.Encode(), &exchange); err != nil {
		return "", err
	}

	if exchange.AccessToken == "" {
		return "", errors.New("failed to exchange the authorization token")
	}

	return exchange.AccessToken, nil
}

// Revoke deletes the app permission grant behind the token. Best-effort.
func (f *Facebook) Revoke(ctx context.Context, token string) error {
	query := url.Values{"access_token": {token}}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		f.graphURL+"/me/permissions?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: could not revoke the token: status %d", ErrProvider, resp.StatusCode)
	}

	return nil
}

func (f *Facebook) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: unexpected status %d", ErrProvider, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider rejected the request: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}

	return nil
}
