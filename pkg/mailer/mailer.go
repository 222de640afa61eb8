package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends outbound mail over SMTP
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewMailer creates a new SMTP mailer
func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send sends an HTML email to a single recipient
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

// SendVerification sends the email-confirmation message with the confirm link
func (m *Mailer) SendVerification(to, name, confirmURL string) error {
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Please confirm your email address by following the link below:</p>
<p><a href=%q>%s</a></p>
<p>If you did not sign up, you can safely ignore this message.</p>`,
		name, confirmURL, confirmURL,
	)

	return m.Send(to, "Confirm your email", body)
}
