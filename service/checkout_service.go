// ABOUTME: This file implements the checkout and payment confirmation flow
// ABOUTME: After payment the order status is polled until a terminal state

package service

import (
	"context"
	"log/slog"

	"github.com/TeBabaEvent/eventclient/config"
	"github.com/TeBabaEvent/eventclient/driver"
	"github.com/TeBabaEvent/eventclient/models"
	"github.com/TeBabaEvent/eventclient/security"
	"github.com/TeBabaEvent/eventclient/utils"
)

// CheckoutService drives the purchase flow: creating checkout sessions,
// capturing payment, and polling the order until the payment settles.
type CheckoutService struct {
	client    *driver.APIClient
	validator *security.InputValidator
	notifier  *utils.NotificationHub
	logger    *slog.Logger

	pollConfig utils.PollConfig
}

// NewCheckoutService wires the checkout flow.
func NewCheckoutService(client *driver.APIClient, cfg *config.Config, notifier *utils.NotificationHub, logger *slog.Logger) *CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutService{
		client:    client,
		validator: security.NewInputValidator(cfg.Upload.MaxImageBytes, cfg.Upload.AllowedImageTypes),
		notifier:  notifier,
		logger:    logger,
		pollConfig: utils.PollConfig{
			Interval:    cfg.Checkout.PollInterval,
			MaxAttempts: cfg.Checkout.PollMaxAttempts,
		},
	}
}

// InitiatePayment creates a single-pack checkout session. The returned
// PayURL is where the customer completes payment.
func (s *CheckoutService) InitiatePayment(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	if req.Quantity <= 0 {
		return nil, models.NewValidationError("quantity", "must be at least 1")
	}
	if err := s.validator.ValidateEmail(req.CustomerEmail); err != nil {
		return nil, models.NewValidationError("customer_email", "must be a valid email address")
	}

	var resp models.CheckoutResponse
	if err := s.client.Post(ctx, driver.EndpointCheckoutCreate, req, &resp); err != nil {
		return nil, err
	}
	s.logger.Info("checkout session created", "order_number", resp.OrderNumber)
	return &resp, nil
}

// InitiateCartPayment creates a multi-pack checkout session. Cash orders
// come back with IsPendingCash set and skip online payment entirely.
func (s *CheckoutService) InitiateCartPayment(ctx context.Context, req models.CartCheckoutRequest) (*models.CartCheckoutResponse, error) {
	if len(req.Items) == 0 {
		return nil, models.NewValidationError("items", "cart is empty")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, models.NewValidationError("items", "every item needs a quantity of at least 1")
		}
	}
	if err := s.validator.ValidateEmail(req.CustomerEmail); err != nil {
		return nil, models.NewValidationError("customer_email", "must be a valid email address")
	}

	var resp models.CartCheckoutResponse
	if err := s.client.Post(ctx, driver.EndpointCartCheckoutCreate, req, &resp); err != nil {
		return nil, err
	}
	s.logger.Info("cart checkout session created",
		"order_number", resp.OrderNumber,
		"items", resp.TotalItems,
		"pending_cash", resp.IsPendingCash)
	return &resp, nil
}

// OrderByNumber looks up one order.
func (s *CheckoutService) OrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	if err := s.validator.ValidateOrderNumber(orderNumber); err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.client.Get(ctx, driver.OrderByNumber(orderNumber), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CapturePayment finalizes an approved online payment.
func (s *CheckoutService) CapturePayment(ctx context.Context, orderNumber string) (*models.Order, error) {
	if err := s.validator.ValidateOrderNumber(orderNumber); err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.client.Post(ctx, driver.CheckoutCapture(orderNumber), nil, &order); err != nil {
		return nil, err
	}
	s.logger.Info("payment captured", "order_number", orderNumber, "status", order.Status)
	return &order, nil
}

// PollOrderStatus polls the order until its status is terminal or the
// attempt budget runs out. onUpdate, when non-nil, observes the order
// after every poll so the caller can surface intermediate statuses.
// Running out of budget is not an error: the caller gets (nil, nil) and
// a single warning notification is emitted, since the payment may still
// settle server-side. Cancellation returns silently with no notification.
func (s *CheckoutService) PollOrderStatus(ctx context.Context, orderNumber string, onUpdate func(*models.Order)) (*models.Order, error) {
	if err := s.validator.ValidateOrderNumber(orderNumber); err != nil {
		return nil, err
	}

	order, outcome := utils.Poll(ctx, s.pollConfig,
		func(ctx context.Context) (*models.Order, error) {
			var order models.Order
			if err := s.client.Get(ctx, driver.OrderByNumber(orderNumber), &order); err != nil {
				return nil, err
			}
			return &order, nil
		},
		func(order *models.Order) bool { return order.Status.IsTerminal() },
		onUpdate,
	)

	switch outcome {
	case utils.PollCompleted:
		s.logger.Info("order reached terminal status", "order_number", orderNumber, "status", order.Status)
		return order, nil
	case utils.PollTimedOut:
		s.logger.Warn("order status polling exhausted", "order_number", orderNumber)
		s.notifier.Warning("payment confirmation is taking longer than expected, check your email for the receipt")
		return nil, nil
	default:
		// Cancelled: the caller navigated away. Stay silent.
		return nil, nil
	}
}
