package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"justice_bot_go/models"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrUnknownProduct          = errors.New("unknown product")
	ErrPaymentIncomplete       = errors.New("payment provider did not complete the capture")
	ErrPaymentsDisabled        = errors.New("payments are not configured")
	ErrSubscriptionPlanMissing = errors.New("no subscription plan is configured")
)

// productPricing maps products to their price in CAD cents
var productPricing = map[string]int64{
	models.ProductBasicAnalysis: 599,
	models.ProductFullAnalysis:  1499,
	models.ProductFormsBundle:   2999,
}

// ProductPrice returns the CAD cents price for a purchasable product
func ProductPrice(product string) (int64, error) {
	price, ok := productPricing[product]
	if !ok {
		return 0, ErrUnknownProduct
	}
	return price, nil
}

// PaymentService coordinates PayPal orders with local payment records
type PaymentService struct {
	paypal *PayPalClient
}

// NewPaymentService creates the payment coordinator. paypal may be nil when
// credentials are absent; order operations then fail fast.
func NewPaymentService(paypal *PayPalClient) *PaymentService {
	return &PaymentService{paypal: paypal}
}

func (s *PaymentService) enabled() bool {
	return s.paypal != nil && s.paypal.IsConfigured()
}

// CreateOrder creates a PayPal order for a product and records a PENDING
// payment row keyed by the provider order ID
func (s *PaymentService) CreateOrder(ctx context.Context, db *gorm.DB, userID, product string) (*models.Payment, string, error) {
	if !s.enabled() {
		return nil, "", ErrPaymentsDisabled
	}

	price, err := ProductPrice(product)
	if err != nil {
		return nil, "", err
	}

	order, err := s.paypal.CreateOrder(ctx, price, "CAD", "Justice-Bot: "+product)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create provider order: %w", err)
	}

	payment := &models.Payment{
		UserID:          userID,
		Product:         product,
		AmountCents:     price,
		Currency:        "CAD",
		ProviderOrderID: order.ID,
		Status:          models.PaymentStatusPending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}
		return recordPaymentEvent(tx, payment.ID, "order_created", order.ID)
	})
	if err != nil {
		return nil, "", err
	}

	// Surface the approval link so the client can redirect the buyer
	var approveURL string
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approveURL = link.Href
			break
		}
	}
	return payment, approveURL, nil
}

// CaptureOrder captures an approved PayPal order and settles the local
// payment record. On COMPLETED the product entitlement is granted; the grant
// is idempotent so a repeated capture call cannot double-grant. Any other
// provider status marks the payment FAILED.
func (s *PaymentService) CaptureOrder(ctx context.Context, db *gorm.DB, userID, providerOrderID string) (*models.Payment, error) {
	if !s.enabled() {
		return nil, ErrPaymentsDisabled
	}

	var payment models.Payment
	err := db.First(&payment, "provider_order_id = ? AND user_id = ?", providerOrderID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	// A capture retry for an already settled payment returns the record as-is
	if payment.Status != models.PaymentStatusPending {
		return &payment, nil
	}

	order, err := s.paypal.CaptureOrder(ctx, providerOrderID)
	if err != nil {
		return nil, fmt.Errorf("provider capture failed: %w", err)
	}

	now := time.Now()
	if order.Status == PayPalOrderCompleted {
		err = db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]interface{}{
				"status":       models.PaymentStatusCompleted,
				"completed_at": now,
			}
			if err := tx.Model(&payment).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to settle payment: %w", err)
			}
			if err := recordPaymentEvent(tx, payment.ID, "capture_completed", order.Status); err != nil {
				return err
			}
			return GrantEntitlement(tx, payment.UserID, payment.Product, &payment.ID)
		})
		if err != nil {
			return nil, err
		}
		payment.Status = models.PaymentStatusCompleted
		payment.CompletedAt = &now
		return &payment, nil
	}

	// Non-completed capture: settle as FAILED, no entitlement
	err = db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":    models.PaymentStatusFailed,
			"failed_at": now,
		}
		if err := tx.Model(&payment).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to settle payment: %w", err)
		}
		return recordPaymentEvent(tx, payment.ID, "capture_failed", order.Status)
	})
	if err != nil {
		return nil, err
	}
	payment.Status = models.PaymentStatusFailed
	payment.FailedAt = &now
	log.Printf("Payment %s failed capture with provider status %s", payment.ID, order.Status)
	return &payment, ErrPaymentIncomplete
}

// CreateSubscription starts a PayPal subscription against the configured plan.
// The caller redirects the buyer to the provider for approval.
func (s *PaymentService) CreateSubscription(ctx context.Context, planID string) (*PayPalSubscription, error) {
	if !s.enabled() {
		return nil, ErrPaymentsDisabled
	}
	if planID == "" {
		return nil, ErrSubscriptionPlanMissing
	}

	sub, err := s.paypal.CreateSubscription(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

// VerifySubscription checks a subscription's provider status and grants the
// full-analysis entitlement while it is active. The grant is idempotent, so
// re-verification is safe.
func (s *PaymentService) VerifySubscription(ctx context.Context, db *gorm.DB, userID, subscriptionID string) (*PayPalSubscription, error) {
	if !s.enabled() {
		return nil, ErrPaymentsDisabled
	}

	sub, err := s.paypal.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify subscription: %w", err)
	}

	if sub.Status == PayPalSubscriptionActive {
		if err := GrantEntitlement(db, userID, models.ProductFullAnalysis, nil); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// ListUserPayments returns a user's payment history, newest first
func ListUserPayments(db *gorm.DB, userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// recordPaymentEvent appends an audit row for a payment state transition
func recordPaymentEvent(tx *gorm.DB, paymentID, event, detail string) error {
	audit := &models.PaymentAudit{
		PaymentID: paymentID,
		Event:     event,
		Detail:    detail,
	}
	if err := tx.Create(audit).Error; err != nil {
		return fmt.Errorf("failed to record payment event: %w", err)
	}
	return nil
}
