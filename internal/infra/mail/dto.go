package mail

import (
	"fmt"
	"time"
)

// Envelope is one fully rendered outbound message.
type Envelope struct {
	FromName    string
	FromAddress string
	To          string
	Subject     string
	Body        string
}

// From renders the header value "<name> <address>".
func (e Envelope) From() string {
	if e.FromName == "" {
		return e.FromAddress
	}
	return fmt.Sprintf("%s <%s>", e.FromName, e.FromAddress)
}

type DeliveryReceipt struct {
	Provider  string
	MessageID string
	SentAt    time.Time
}

// DeliveryError is a transport rejection. Message is safe to show operators.
type DeliveryError struct {
	Provider string
	Message  string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

func deliveryErr(provider string, err error) *DeliveryError {
	return &DeliveryError{Provider: provider, Message: err.Error(), Err: err}
}
