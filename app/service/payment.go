package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/paulohenriquejustino/payment-gateway/app/factory"
	"github.com/paulohenriquejustino/payment-gateway/app/provider"
	"github.com/paulohenriquejustino/payment-gateway/config"
	"github.com/sirupsen/logrus"
)

const defaultCurrency = "brl"

var validate = validator.New()

const (
	ResultSuccess       = "success"
	ResultInvalidAmount = "invalid_amount"
	ResultUpstreamError = "upstream_error"
)

type WebhookOutcome string

const (
	WebhookOutcomeSucceeded WebhookOutcome = "succeeded"
	WebhookOutcomeFailed    WebhookOutcome = "failed"
	WebhookOutcomeIgnored   WebhookOutcome = "ignored"
	WebhookOutcomeRejected  WebhookOutcome = "rejected"
)

type createPaymentIntentRequest interface {
	GetAmount() int64
	GetCurrency() string
	GetMetadata() map[string]string
}

type webhookRequest interface {
	GetPayload() []byte
	GetSignature() string
}

type paymentProvider interface {
	CreatePaymentIntent(ctx context.Context, input *provider.CreateIntentInput) (*provider.CreateIntentOutput, error)
	ConstructWebhookEvent(payload []byte, signature string) (*provider.WebhookEvent, error)
}

type metricsRecorder interface {
	PaymentIntentCreated(result string)
	WebhookEventHandled(outcome string)
}

type PaymentService struct {
	provider    paymentProvider
	metrics     metricsRecorder
	paymentsCfg config.PaymentsConfig
	logger      logrus.FieldLogger
}

func NewPaymentService(
	paymentProvider paymentProvider,
	metrics metricsRecorder,
	paymentsCfg config.PaymentsConfig,
) *PaymentService {
	paymentsCfg.DefaultCurrency = strings.ToLower(strings.TrimSpace(paymentsCfg.DefaultCurrency))
	if paymentsCfg.DefaultCurrency == "" {
		paymentsCfg.DefaultCurrency = defaultCurrency
	}

	return &PaymentService{
		provider:    paymentProvider,
		metrics:     metrics,
		paymentsCfg: paymentsCfg,
		logger:      factory.NewModuleLogger("payments-service"),
	}
}

// CreatePaymentIntent forwards a validated amount to the processor. Amount,
// currency and metadata are passed through; only the amount sign is checked.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, req createPaymentIntentRequest) (*provider.CreateIntentOutput, error) {
	amount := req.GetAmount()
	if err := validate.Var(amount, "gt=0"); err != nil {
		s.logger.WithField("amount", amount).Warn("Rejected payment intent with invalid amount")
		s.metrics.PaymentIntentCreated(ResultInvalidAmount)
		return nil, ErrInvalidAmount
	}

	currency := strings.ToLower(strings.TrimSpace(req.GetCurrency()))
	if currency == "" {
		currency = s.paymentsCfg.DefaultCurrency
	}

	out, err := s.provider.CreatePaymentIntent(ctx, &provider.CreateIntentInput{
		Amount:   amount,
		Currency: currency,
		Metadata: cloneMetadata(req.GetMetadata()),
	})
	if err != nil {
		upstream := &UpstreamError{Message: provider.ErrorMessage(err), Err: err}
		s.logger.WithError(err).WithFields(logrus.Fields{
			"amount":   amount,
			"currency": currency,
		}).Error("Create payment intent failed")
		s.metrics.PaymentIntentCreated(ResultUpstreamError)
		return nil, upstream
	}

	s.logger.WithFields(logrus.Fields{
		"payment_intent_id": out.PaymentIntentID,
		"amount":            amount,
		"currency":          currency,
	}).Info("Payment intent created")
	s.metrics.PaymentIntentCreated(ResultSuccess)

	return out, nil
}

// HandleWebhook verifies a processor notification and records its outcome.
// Nothing is persisted; once the signature checks out the caller should
// acknowledge regardless of outcome so the processor stops redelivering.
func (s *PaymentService) HandleWebhook(_ context.Context, req webhookRequest) (WebhookOutcome, error) {
	event, err := s.provider.ConstructWebhookEvent(req.GetPayload(), req.GetSignature())
	if err != nil {
		s.logger.WithError(err).Warn("Webhook signature verification failed")
		s.metrics.WebhookEventHandled(string(WebhookOutcomeRejected))
		return WebhookOutcomeRejected, &SignatureError{Reason: err.Error(), Err: err}
	}

	entry := s.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
	})

	var outcome WebhookOutcome
	switch event.Type {
	case provider.EventPaymentIntentSucceeded:
		outcome = WebhookOutcomeSucceeded
		entry.WithField("payment_intent_id", event.PaymentIntentID).Info("Payment succeeded")
	case provider.EventPaymentIntentFailed:
		outcome = WebhookOutcomeFailed
		failed := entry.WithField("payment_intent_id", event.PaymentIntentID)
		if event.FailureMessage != "" {
			failed = failed.WithField("failure_message", event.FailureMessage)
		}
		failed.Warn("Payment failed")
	default:
		outcome = WebhookOutcomeIgnored
		entry.Info("Webhook event ignored")
	}

	s.metrics.WebhookEventHandled(string(outcome))
	return outcome, nil
}

func cloneMetadata(src map[string]string) map[string]string {
	if len(src) == 0 {
		return map[string]string{}
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
