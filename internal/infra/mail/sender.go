package mail

import (
	"context"
	"errors"
	"time"

	"gopkg.in/gomail.v2"
)

const ProviderSMTP = "smtp"

// dialer is the slice of gomail.Dialer the sender needs.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string

	dialer dialer
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

func (s *EmailSender) Send(ctx context.Context, env Envelope) (*DeliveryReceipt, error) {
	if env.To == "" {
		return nil, deliveryErr(ProviderSMTP, errors.New("missing recipient address"))
	}
	if err := ctx.Err(); err != nil {
		return nil, deliveryErr(ProviderSMTP, err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", env.FromAddress, env.FromName)
	m.SetHeader("To", env.To)
	m.SetHeader("Subject", env.Subject)
	m.SetBody("text/plain", env.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return nil, deliveryErr(ProviderSMTP, err)
	}

	return &DeliveryReceipt{Provider: ProviderSMTP, SentAt: time.Now().UTC()}, nil
}
