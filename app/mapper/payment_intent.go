package mapper

import (
	"github.com/paulohenriquejustino/payment-gateway/app/provider"
	"github.com/paulohenriquejustino/payment-gateway/app/types"
)

func PaymentIntentToResponse(item *provider.CreateIntentOutput) *types.CreatePaymentIntentResponse {
	if item == nil {
		return nil
	}

	return &types.CreatePaymentIntentResponse{
		ClientSecret:    item.ClientSecret,
		PaymentIntentID: item.PaymentIntentID,
	}
}
