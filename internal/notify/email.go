package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/iliyamo/user-auth-service/internal/config"
)

// EmailSender delivers reset codes over SMTP.
type EmailSender struct {
	cfg    config.EmailConfig
	logger *slog.Logger
}

func NewEmailSender(cfg config.EmailConfig, logger *slog.Logger) *EmailSender {
	return &EmailSender{cfg: cfg, logger: logger}
}

// SendResetCode mails the code to the user's stored address. The SMTP
// round-trip is raced against ctx so a slow relay cannot hang the request;
// on timeout the send goroutine is abandoned and the error surfaces to the
// caller.
func (s *EmailSender) SendResetCode(ctx context.Context, toEmail, code string) error {
	if s.cfg.SMTPHost == "" || s.cfg.FromEmail == "" {
		return fmt.Errorf("email channel not configured")
	}
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("empty recipient")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Reset Password Code")
	m.SetBody("text/plain", fmt.Sprintf("Your password reset code is: %s", code))

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)

	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("send email: %w", ctx.Err())
	}

	s.logger.Info("reset code email sent", slog.String("to", toEmail))
	return nil
}
