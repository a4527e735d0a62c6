package mailer

import "context"

type Service interface {
	SendSitePublished(ctx context.Context, toEmail, toName, restaurantName, siteURL string) error
}
