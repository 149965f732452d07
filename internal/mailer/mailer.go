package mailer

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendEnrollmentApproved(to, name, courseTitle string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendEnrollmentApproved notifies a student that an admin approved their
// enrollment request.
func (m *SMTPMailer) SendEnrollmentApproved(to, name, courseTitle string) error {
	body := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #003366;">Enrollment Approved</h2>
		<p>Hi %s,</p>
		<p>Your enrollment request for <strong>%s</strong> has been approved.
		The course is now available on your dashboard.</p>
		<p style="color: #666; font-size: 12px;">&copy; Oddlogy. All rights reserved.</p>
	</div>`, name, courseTitle)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your enrollment has been approved")
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		logrus.WithError(err).WithField("to", to).Warn("failed to send approval email")
		return err
	}
	return nil
}

// NopMailer is used when SMTP is not configured.
type NopMailer struct{}

func (NopMailer) SendEnrollmentApproved(string, string, string) error { return nil }
