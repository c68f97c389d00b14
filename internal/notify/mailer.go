package notify

import (
	"fmt"
	"net/smtp"
)

// Sender отправляет уведомления по электронной почте.
type Sender interface {
	Send(to, subject, body string) error
}

// Mailer отправляет письма через SMTP. Пустой Host отключает отправку.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
}

// NewMailer создаёт новый экземпляр Mailer.
func NewMailer(host, port, username, password string) *Mailer {
	return &Mailer{Host: host, Port: port, Username: username, Password: password}
}

// Send отправляет письмо получателю. При отключённом SMTP - no-op.
func (m *Mailer) Send(to, subject, body string) error {
	if m.Host == "" {
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.Username, to, subject, body)
	addr := m.Host + ":" + m.Port

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	return smtp.SendMail(addr, auth, m.Username, []string{to}, []byte(msg))
}
