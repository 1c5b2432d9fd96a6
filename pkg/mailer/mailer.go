package mailer

import (
	"context"
	"fmt"

	"github.com/example/bookshop/pkg/config"
	"github.com/example/bookshop/pkg/models"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Kind selects one of the four fixed order-lifecycle emails.
type Kind string

const (
	KindAdminNewOrder  Kind = "admin_new_order"
	KindApproved       Kind = "approved"
	KindOutForDelivery Kind = "out_for_delivery"
	KindDelivered      Kind = "delivered"
)

// Mailer dispatches order-lifecycle notifications. Callers treat dispatch as
// best-effort: an error is logged by the caller, never propagated to the
// customer-facing operation.
type Mailer interface {
	Send(ctx context.Context, kind Kind, order *models.Order) error
}

// Dispatcher renders the fixed HTML templates and submits them through the
// Resend transactional-email API. KindAdminNewOrder goes to the configured
// admin recipients; everything else goes to the order's shipping email.
type Dispatcher struct {
	client *resend.Client
	config *config.EmailConfig
	logger *zap.Logger
}

func NewDispatcher(cfg *config.EmailConfig, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
		logger: logger,
	}
}

func (d *Dispatcher) Send(ctx context.Context, kind Kind, order *models.Order) error {
	subject, html, err := Render(kind, order, d.config.BaseURL)
	if err != nil {
		return fmt.Errorf("render %s email: %w", kind, err)
	}

	to := []string{order.ShippingEmail}
	if kind == KindAdminNewOrder {
		to = d.config.AdminRecipients
	}
	if len(to) == 0 || to[0] == "" {
		return fmt.Errorf("no recipient for %s email", kind)
	}

	sent, err := d.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    d.config.From,
		To:      to,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send %s email: %w", kind, err)
	}

	d.logger.Info("email dispatched",
		zap.String("kind", string(kind)),
		zap.String("order_number", order.OrderNumber),
		zap.String("email_id", sent.Id))
	return nil
}
