package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/dskendzo/eventplanner/config"
	"github.com/dskendzo/eventplanner/internal/entity"
)

// Mailer sends registration confirmations. Delivery is fire-and-forget:
// callers run it in a goroutine and failures are only logged.
type Mailer struct {
	cfg *config.EmailConfig
}

func NewMailer(cfg *config.EmailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Enabled() bool {
	return m.cfg.Enabled
}

func (m *Mailer) SendRegistrationConfirmation(user *entity.User, event *entity.Event) error {
	if !m.cfg.Enabled {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	body := fmt.Sprintf(
		"To: %s\r\nSubject: Registration confirmed: %s\r\n\r\n"+
			"Hi %s,\r\n\r\nYour registration for %s on %s at %s is confirmed.\r\n",
		user.Email, event.Title, user.Name, event.Title,
		event.Date.Format("2006-01-02 15:04"), event.Location,
	)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{user.Email}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
