package utils

import (
	"strconv"

	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"

	"github.com/clothique/ecommerce-backend/internal/config"
)

// Mail is the payload accepted by the mail relay.
type Mail struct {
	To      string
	Subject string
	HTML    string
}

// MailResult reports the outcome of a send. Callers decide whether a failed
// send should fail their request; most of them only log it.
type MailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Mailer interface {
	Send(mail Mail) MailResult
}

// SMTPMailer delivers through a plain SMTP relay (gmail in the default
// deployment, same as the storefront's transactional account).
type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

func (m *SMTPMailer) Send(mail Mail) MailResult {
	host := config.GetEnv("SMTP_HOST", "smtp.gmail.com")
	port, err := strconv.Atoi(config.GetEnv("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	user := config.GetEnv("SMTP_USER", "")
	pass := config.GetEnv("SMTP_PASS", "")
	from := config.GetEnv("SMTP_FROM", user)

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.HTML)

	dialer := gomail.NewDialer(host, port, user, pass)
	if err := dialer.DialAndSend(msg); err != nil {
		logrus.WithError(err).Error("Failed to send email")
		return MailResult{Success: false, Message: "Error sending email"}
	}

	return MailResult{Success: true, Message: "Email sent successfully"}
}
