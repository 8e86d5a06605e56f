package types

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newJSONContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest("POST", "/create-payment-intent", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestNewCreatePaymentIntentRequestFromContextNormalizes(t *testing.T) {
	parsed, err := NewCreatePaymentIntentRequestFromContext(newJSONContext(`{"amount":1000,"currency":" BRL "}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.GetAmount() != 1000 {
		t.Fatalf("unexpected amount: %d", parsed.GetAmount())
	}
	if parsed.GetCurrency() != "brl" {
		t.Fatalf("expected lower-cased currency, got %q", parsed.GetCurrency())
	}
	if parsed.GetMetadata() == nil || len(parsed.GetMetadata()) != 0 {
		t.Fatalf("expected empty metadata map, got %v", parsed.GetMetadata())
	}
}

func TestNewCreatePaymentIntentRequestFromContextKeepsMetadata(t *testing.T) {
	parsed, err := NewCreatePaymentIntentRequestFromContext(newJSONContext(`{"amount":50,"metadata":{"order_id":"ord-9"}}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.GetMetadata()["order_id"] != "ord-9" {
		t.Fatalf("unexpected metadata: %v", parsed.GetMetadata())
	}
}

func TestNewCreatePaymentIntentRequestFromContextClearsNonIntegerAmount(t *testing.T) {
	for _, body := range []string{
		`{"amount":"1000","currency":"usd"}`,
		`{"amount":10.5,"currency":"usd"}`,
		`{"amount":1e3,"currency":"usd"}`,
		`{"amount":99999999999999999999,"currency":"usd"}`,
	} {
		parsed, err := NewCreatePaymentIntentRequestFromContext(newJSONContext(body))
		if err != nil {
			t.Fatalf("%s: expected amount type error to be absorbed, got %v", body, err)
		}
		if parsed.Amount != nil || parsed.GetAmount() != 0 {
			t.Fatalf("%s: expected unset amount, got %v", body, parsed.Amount)
		}
	}
}

func TestNewCreatePaymentIntentRequestFromContextRejectsMalformedBody(t *testing.T) {
	for _, body := range []string{`{bad`, `{"amount":100,"metadata":"x"}`, `[1,2]`} {
		if _, err := NewCreatePaymentIntentRequestFromContext(newJSONContext(body)); err == nil {
			t.Fatalf("%s: expected bind error", body)
		}
	}
}

func TestNewWebhookRequestFromContextKeepsRawBody(t *testing.T) {
	raw := `{"id":"evt_1",  "type":"payment_intent.succeeded"}`
	e := echo.New()
	req := httptest.NewRequest("POST", "/webhook", bytes.NewBufferString(raw))
	req.Header.Set(StripeSignatureHeader, " t=1,v1=abc ")
	ctx := e.NewContext(req, httptest.NewRecorder())

	parsed, err := NewWebhookRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(parsed.GetPayload()) != raw {
		t.Fatalf("expected untouched payload, got %q", parsed.GetPayload())
	}
	if parsed.GetSignature() != "t=1,v1=abc" {
		t.Fatalf("unexpected signature: %q", parsed.GetSignature())
	}
}
