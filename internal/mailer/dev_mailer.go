package mailer

import (
	"context"

	"github.com/diagnosis/menupage/pkg/logger"
)

// DevMailer logs outgoing mail instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendSitePublished(ctx context.Context, toEmail, toName, restaurantName, siteURL string) error {
	logger.InfoContext(ctx, "[DEV MAIL] site published",
		"to", toEmail,
		"name", toName,
		"restaurant", restaurantName,
		"site_url", siteURL,
	)
	return nil
}
