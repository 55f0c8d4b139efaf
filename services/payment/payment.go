package payment

import (
	"context"
	"fmt"
	"time"

	"gmpwellness/config"
	"gmpwellness/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// Provider creates checkout sessions and verifies payment outcomes. The
// verification path exists because webhook payloads are never trusted
// directly: the engine queries the provider back for the authoritative
// status.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, appt *models.Appointment) (*models.CheckoutSession, error)
	VerifyPayment(ctx context.Context, sessionID string) (paid bool, appointmentID string, err error)
}

// StripeProvider is the production implementation backed by Stripe Checkout.
type StripeProvider struct {
	logger *zap.Logger
}

// NewStripeProvider constructs a StripeProvider. The global stripe key is set
// once at startup.
func NewStripeProvider(logger *zap.Logger) *StripeProvider {
	return &StripeProvider{logger: logger}
}

// CreateCheckoutSession opens a checkout for the appointment's snapshotted
// price. The appointment id travels as the client reference, and the session
// expires after the configured window so an abandoned checkout frees the slot.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, appt *models.Appointment) (*models.CheckoutSession, error) {
	cfg := config.AppConfig
	expiresAt := time.Now().Add(time.Duration(cfg.PaymentExpiryMinutes) * time.Minute)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(appt.ID),
		ExpiresAt:         stripe.Int64(expiresAt.Unix()),
		CustomerEmail:     stripe.String(appt.Contact.Email),
		SuccessURL:        stripe.String(fmt.Sprintf("%s/payment/success?id=%s", cfg.BaseURL, appt.ID)),
		CancelURL:         stripe.String(fmt.Sprintf("%s/payment/failure?id=%s", cfg.BaseURL, appt.ID)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(cfg.Currency),
					UnitAmount: stripe.Int64(int64(appt.Price * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(appt.ServiceName),
					},
				},
			},
		},
	}
	params.AddMetadata("appointment_id", appt.ID)
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session creation failed: %w", err)
	}

	p.logger.Info("checkout session created",
		zap.String("appointmentID", appt.ID),
		zap.String("sessionID", sess.ID))

	return &models.CheckoutSession{
		SessionID:     sess.ID,
		AppointmentID: appt.ID,
		URL:           sess.URL,
		ExpiresAt:     sess.ExpiresAt,
	}, nil
}

// VerifyPayment queries Stripe for the session's authoritative payment
// status and resolves the appointment id from the client reference.
func (p *StripeProvider) VerifyPayment(ctx context.Context, sessionID string) (bool, string, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return false, "", fmt.Errorf("stripe session lookup failed: %w", err)
	}

	return sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, sess.ClientReferenceID, nil
}
