package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/paulohenriquejustino/payment-gateway/app/factory"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	EventPaymentIntentSucceeded = string(stripe.EventTypePaymentIntentSucceeded)
	EventPaymentIntentFailed    = string(stripe.EventTypePaymentIntentPaymentFailed)
)

type StripeConfig struct {
	SecretKey                 string
	WebhookSecret             string
	APIBaseURL                string
	SignatureToleranceSeconds int64
}

type StripeProvider struct {
	cfg     StripeConfig
	intents *paymentintent.Client
}

func NewStripeProvider(cfg StripeConfig) *StripeProvider {
	if cfg.SignatureToleranceSeconds <= 0 {
		cfg.SignatureToleranceSeconds = 300
	}

	backendCfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     factory.NewModuleLogger("stripe"),
	}
	if baseURL := strings.TrimSpace(cfg.APIBaseURL); baseURL != "" {
		backendCfg.URL = stripe.String(baseURL)
	}

	return &StripeProvider{
		cfg: cfg,
		intents: &paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
	}
}

func (p *StripeProvider) CreatePaymentIntent(ctx context.Context, input *CreateIntentInput) (*CreateIntentOutput, error) {
	if strings.TrimSpace(p.cfg.SecretKey) == "" {
		return nil, errors.New("stripe secret key is not configured")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(input.Amount),
		Currency: stripe.String(strings.ToLower(input.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range input.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := p.intents.New(params)
	if err != nil {
		return nil, err
	}

	return &CreateIntentOutput{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

func (p *StripeProvider) ConstructWebhookEvent(payload []byte, signature string) (*WebhookEvent, error) {
	if strings.TrimSpace(p.cfg.WebhookSecret) == "" {
		return nil, errors.New("stripe webhook secret is not configured")
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, p.cfg.WebhookSecret, webhook.ConstructEventOptions{
		Tolerance:                time.Duration(p.cfg.SignatureToleranceSeconds) * time.Second,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}

	result := &WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if event.Data == nil {
		return result, nil
	}
	if id, ok := event.Data.Object["id"].(string); ok {
		result.PaymentIntentID = strings.TrimSpace(id)
	}
	if lastErr, ok := event.Data.Object["last_payment_error"].(map[string]interface{}); ok {
		if msg, ok := lastErr["message"].(string); ok {
			result.FailureMessage = strings.TrimSpace(msg)
		}
	}

	return result, nil
}

// ErrorMessage returns the processor's human-readable message for err,
// falling back to err.Error() for transport failures.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && strings.TrimSpace(stripeErr.Msg) != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
