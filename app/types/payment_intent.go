package types

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
)

const StripeSignatureHeader = "Stripe-Signature"

type CreatePaymentIntentRequest struct {
	Amount   *int64            `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

// NewCreatePaymentIntentRequestFromContext binds the JSON body. An amount that
// is not an int64 (string, fraction, exponent, overflow) is left unset so the
// service rejects it like any other invalid amount; every other bind failure
// is returned.
func NewCreatePaymentIntentRequestFromContext(ctx echo.Context) (*CreatePaymentIntentRequest, error) {
	var body CreatePaymentIntentRequest
	if err := ctx.Bind(&body); err != nil {
		if !isAmountTypeError(err) {
			return nil, err
		}
		body.Amount = nil
	}

	body.Currency = strings.ToLower(strings.TrimSpace(body.Currency))
	if body.Metadata == nil {
		body.Metadata = map[string]string{}
	}

	return &body, nil
}

func isAmountTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr) && typeErr.Field == "amount"
}

func (r *CreatePaymentIntentRequest) GetAmount() int64 {
	if r == nil || r.Amount == nil {
		return 0
	}
	return *r.Amount
}

func (r *CreatePaymentIntentRequest) GetCurrency() string {
	if r == nil {
		return ""
	}
	return r.Currency
}

func (r *CreatePaymentIntentRequest) GetMetadata() map[string]string {
	if r == nil {
		return nil
	}
	return r.Metadata
}

type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// WebhookRequest carries the untouched request body; the signature is
// computed over these exact bytes.
type WebhookRequest struct {
	Payload   []byte
	Signature string
}

func NewWebhookRequestFromContext(ctx echo.Context) (*WebhookRequest, error) {
	rawBody, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, err
	}

	return &WebhookRequest{
		Payload:   rawBody,
		Signature: strings.TrimSpace(ctx.Request().Header.Get(StripeSignatureHeader)),
	}, nil
}

func (r *WebhookRequest) GetPayload() []byte {
	return r.Payload
}

func (r *WebhookRequest) GetSignature() string {
	return r.Signature
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	IP          string `json:"ip"`
	Environment string `json:"environment"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
