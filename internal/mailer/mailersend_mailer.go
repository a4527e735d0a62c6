package mailer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/mailersend/mailersend-go"
)

var ErrNotConfigured = errors.New("mailersend not configured")

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}
	return m
}

func (m *MailerSendClient) Enabled() bool { return m.enabled }

func (m *MailerSendClient) SendSitePublished(ctx context.Context, toEmail, toName, restaurantName, siteURL string) error {
	if !m.enabled {
		return ErrNotConfigured
	}

	subject := fmt.Sprintf("%s is live", restaurantName)
	body := fmt.Sprintf(`
		<h2>Your site is live!</h2>
		<p>Hi %s,</p>
		<p><strong>%s</strong> now has a public page with its menu and opening hours.</p>
		<p><a href="%s" style="background-color: #000000; color: #ffffff; padding: 10px 20px; text-decoration: none; border-radius: 5px;">View your site</a></p>
	`, html.EscapeString(toName), html.EscapeString(restaurantName), siteURL)
	text := fmt.Sprintf("Hi %s,\n\n%s is live at %s", toName, restaurantName, siteURL)

	return m.send(ctx, toEmail, toName, subject, text, body)
}

func (m *MailerSendClient) send(ctx context.Context, toEmail, toName, subject, text, body string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(body)

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
