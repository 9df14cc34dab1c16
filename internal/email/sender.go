// Package email delivers transactional and campaign mail over SMTP. A nil
// sender is a valid no-op for deployments without SMTP configured.
package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"atlascasa_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

type Sender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

func NewSender(cfg config.EmailConfig) *Sender {
	if cfg.GetSMTPHost() == "" {
		return nil
	}

	return &Sender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

func (s *Sender) send(ctx context.Context, fromName, fromEmail, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(fromName, fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendLeadEmail delivers an automation-rendered message to a lead.
func (s *Sender) SendLeadEmail(ctx context.Context, toEmail, toName, subject, body string) error {
	if s == nil {
		return nil
	}

	content, err := renderLayout(layoutData{
		Title:    subject,
		Greeting: greeting(toName),
		Body:     body,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, s.fromName, s.fromEmail, toEmail, subject, content)
}

// SendCampaign delivers one campaign email with the campaign's own sender
// identity, falling back to the configured default.
func (s *Sender) SendCampaign(ctx context.Context, to, toName, fromName, fromEmail, subject, html string) error {
	if s == nil {
		return nil
	}

	if fromName == "" {
		fromName = s.fromName
	}
	if fromEmail == "" {
		fromEmail = s.fromEmail
	}

	content, err := renderLayout(layoutData{
		Title:    subject,
		Greeting: greeting(toName),
		Body:     html,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, fromName, fromEmail, to, subject, content)
}

func greeting(name string) string {
	if name == "" {
		return "Olá,"
	}
	return "Olá " + name + ","
}
