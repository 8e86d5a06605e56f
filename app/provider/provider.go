package provider

import "context"

type CreateIntentInput struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

type CreateIntentOutput struct {
	ClientSecret    string
	PaymentIntentID string
}

// WebhookEvent is a verified processor notification.
type WebhookEvent struct {
	ID              string
	Type            string
	PaymentIntentID string
	FailureMessage  string
}

type Provider interface {
	CreatePaymentIntent(ctx context.Context, input *CreateIntentInput) (*CreateIntentOutput, error)
	ConstructWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}
