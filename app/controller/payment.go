package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/paulohenriquejustino/payment-gateway/app/factory"
	"github.com/paulohenriquejustino/payment-gateway/app/mapper"
	"github.com/paulohenriquejustino/payment-gateway/app/service"
	"github.com/paulohenriquejustino/payment-gateway/app/types"
	"github.com/sirupsen/logrus"
)

const (
	errInvalidRequestBody = "Invalid request body"
	errInvalidAmount      = "Invalid amount"
	errCreateIntentFailed = "Failed to create payment intent"
	webhookErrorPrefix    = "Webhook Error: "
)

type PaymentController struct {
	paymentService *service.PaymentService
	logger         logrus.FieldLogger
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         factory.NewModuleLogger("payments-controller"),
	}
}

func (c *PaymentController) CreatePaymentIntent(ctx echo.Context) error {
	l := factory.LoggerWithContext(c.logger, ctx)

	req, err := types.NewCreatePaymentIntentRequestFromContext(ctx)
	if err != nil {
		l.WithError(err).Warn("Create payment intent bind failed")
		return c.writeError(ctx, http.StatusBadRequest, errInvalidRequestBody, "request body must be a JSON object")
	}

	item, err := c.paymentService.CreatePaymentIntent(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			return c.writeError(ctx, http.StatusBadRequest, errInvalidAmount, err.Error())
		}

		message := err.Error()
		var upstream *service.UpstreamError
		if errors.As(err, &upstream) {
			message = upstream.Message
		}
		l.WithError(err).Error("Create payment intent failed")
		return c.writeError(ctx, http.StatusInternalServerError, errCreateIntentFailed, message)
	}

	return ctx.JSON(http.StatusOK, mapper.PaymentIntentToResponse(item))
}

func (c *PaymentController) HandleWebhook(ctx echo.Context) error {
	l := factory.LoggerWithContext(c.logger, ctx)

	req, err := types.NewWebhookRequestFromContext(ctx)
	if err != nil {
		l.WithError(err).Warn("Webhook body could not be read")
		return ctx.String(http.StatusBadRequest, webhookErrorPrefix+err.Error())
	}

	if _, err := c.paymentService.HandleWebhook(ctx.Request().Context(), req); err != nil {
		reason := err.Error()
		var sigErr *service.SignatureError
		if errors.As(err, &sigErr) {
			reason = sigErr.Reason
		}
		l.WithError(err).Warn("Webhook rejected")
		return ctx.String(http.StatusBadRequest, webhookErrorPrefix+reason)
	}

	return ctx.JSON(http.StatusOK, &types.WebhookAckResponse{Received: true})
}

func (c *PaymentController) writeError(ctx echo.Context, statusCode int, errorText, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: errorText, Message: message})
}
