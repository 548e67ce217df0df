package infra

import (
	"fmt"
	"net/smtp"

	"github.com/soporte-code/API-PORTALWEB/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends plain-text notifications through the configured SMTP relay.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
	cb       *CircuitBreaker
}

func NewMailer(cfg *config.Config, cb *CircuitBreaker) *Mailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		cb:       cb,
	}
}

// Enviar sends one message. Calls fail fast while the breaker is open.
func (m *Mailer) Enviar(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	send := func() error { return e.Send(m.addr, auth) }
	if m.cb == nil {
		return send()
	}
	return m.cb.Ejecutar(send)
}
