package auth

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/aggroplatform/aggro-admin/config"
	"github.com/aggroplatform/aggro-admin/logger"
)

// Mailer delivers transactional mail. The session manager only needs the
// password-reset message.
type Mailer interface {
	Send(toName, toEmail, subject, textContent, htmlContent string) error
}

// SendGridMailer sends mail through the SendGrid API.
type SendGridMailer struct{}

func (SendGridMailer) Send(toName, toEmail, subject, textContent, htmlContent string) error {
	if config.SendGridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}

	from := mail.NewEmail(config.MailFromName, config.MailFromAddress)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(config.SendGridAPIKey)

	response, err := client.Send(message)
	if err != nil {
		logger.Error("Error sending email", zap.String("to", toEmail), zap.Error(err))
		return err
	}

	if response.StatusCode >= 400 {
		logger.Error("SendGrid API error",
			zap.Int("status", response.StatusCode), zap.String("body", response.Body))
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	logger.Info("Email sent", zap.String("to", toEmail), zap.Int("status", response.StatusCode))
	return nil
}
