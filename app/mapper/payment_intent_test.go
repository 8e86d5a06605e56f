package mapper

import (
	"testing"

	"github.com/paulohenriquejustino/payment-gateway/app/provider"
)

func TestPaymentIntentToResponse(t *testing.T) {
	if PaymentIntentToResponse(nil) != nil {
		t.Fatal("expected nil response for nil output")
	}

	resp := PaymentIntentToResponse(&provider.CreateIntentOutput{ClientSecret: "secret_abc", PaymentIntentID: "pi_123"})
	if resp.ClientSecret != "secret_abc" || resp.PaymentIntentID != "pi_123" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
