// Package mailer sends the contact email when a claim is accepted.
package mailer

import (
	"context"
	"fmt"

	"github.com/giftr-dev/giftr/internal/logger"
	"github.com/resend/resend-go/v2"
)

// Mailer notifies both parties after a claim is accepted.
type Mailer interface {
	SendClaimAccepted(ctx context.Context, giftName, giverName, giverEmail, claimerName, claimerEmail string) error
}

// Resend delivers notifications through the Resend API.
type Resend struct {
	client *resend.Client
	sender string
	log    *logger.Logger
}

func NewResend(apiKey, sender string, log *logger.Logger) *Resend {
	return &Resend{
		client: resend.NewClient(apiKey),
		sender: sender,
		log:    log,
	}
}

func (r *Resend) SendClaimAccepted(ctx context.Context, giftName, giverName, giverEmail, claimerName, claimerEmail string) error {
	text := fmt.Sprintf(
		"Hi %s and %s,\n\n"+
			"Here's a mail to put you in contact so you can organize the picking up of %s (%s's gift).\n\n"+
			"Thanks for using Giftr,\n\nGiftr",
		giverName, claimerName, giftName, giverName)

	params := &resend.SendEmailRequest{
		From:    r.sender,
		To:      []string{claimerEmail, giverEmail},
		Subject: fmt.Sprintf("Giftr: %s's claim on %s was accepted", claimerName, giftName),
		Text:    text,
	}

	sent, err := r.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send claim accepted email: %w", err)
	}

	r.log.Info("claim accepted email sent", "id", sent.Id)
	return nil
}
