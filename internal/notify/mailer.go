package notify

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer sends the two notification mails the service produces. Callers
// dispatch fire-and-forget; a delivery failure is logged, never surfaced.
type Mailer interface {
	SendInvite(ctx context.Context, email, role, token string, expiresAt time.Time) error
	SendLeaveDecision(ctx context.Context, email, fullName, status string, startDate, endDate time.Time, reason string) error
}

type smtpMailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewSMTPMailer(host string, port int, user, pass, baseURL string) Mailer {
	return &smtpMailer{
		dialer:  gomail.NewDialer(host, port, user, pass),
		from:    user,
		baseURL: baseURL,
	}
}

func (m *smtpMailer) SendInvite(ctx context.Context, email, role, token string, expiresAt time.Time) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "You have been invited to join the farm team")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>You have been invited as <b>%s</b>.</p>"+
			"<p>Accept your invite: %s/invites/accept?token=%s</p>"+
			"<p>The invite expires at %s.</p>",
		role, m.baseURL, token, expiresAt.Format(time.RFC1123),
	))

	return m.dialer.DialAndSend(msg)
}

func (m *smtpMailer) SendLeaveDecision(ctx context.Context, email, fullName, status string, startDate, endDate time.Time, reason string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your leave request for %s to %s has been <b>%s</b>.</p>",
		fullName,
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"),
		status,
	)
	if reason != "" {
		body += fmt.Sprintf("<p>Note: %s</p>", reason)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your leave request was "+status)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}

// NoopMailer is used when SMTP is not configured and in tests.
type NoopMailer struct{}

func (NoopMailer) SendInvite(context.Context, string, string, string, time.Time) error {
	return nil
}

func (NoopMailer) SendLeaveDecision(context.Context, string, string, string, time.Time, time.Time, string) error {
	return nil
}
