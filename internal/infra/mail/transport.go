package mail

import (
	"context"
	"fmt"

	"github.com/xavierca1/lead-outreach/internal/config"
)

// Transport sends one envelope. Rejections come back as *DeliveryError.
type Transport interface {
	Send(ctx context.Context, env Envelope) (*DeliveryReceipt, error)
}

var (
	_ Transport = (*EmailSender)(nil)
	_ Transport = (*SESSender)(nil)
)

// NewTransport picks the provider named by cfg.Provider.
func NewTransport(ctx context.Context, cfg config.MailConfig) (Transport, error) {
	switch cfg.Provider {
	case ProviderSES:
		return NewSESSender(ctx, cfg.AWSRegion, cfg.AWSKeyID, cfg.AWSSecret)
	case ProviderSMTP, "":
		return NewEmailSender(cfg.Host, cfg.Port, cfg.User, cfg.Password), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
