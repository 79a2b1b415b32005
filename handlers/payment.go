package handlers

import (
	"net/http"

	"justice_bot_go/db"
	"justice_bot_go/middleware"
	"justice_bot_go/models"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

// Payments is the payment coordinator, wired at startup
var Payments *services.PaymentService

type createOrderRequest struct {
	Product string `json:"product"`
}

// CreateOrderHandler creates a PayPal order for a product
func CreateOrderHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if !models.IsValidProduct(req.Product) {
		return serviceError(c, services.ErrUnknownProduct)
	}

	payment, approveURL, err := Payments.CreateOrder(c.Request().Context(), db.DB, user.ID, req.Product)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"payment":     payment,
		"approve_url": approveURL,
	})
}

type captureOrderRequest struct {
	OrderID string `json:"order_id"`
}

// CaptureOrderHandler captures an approved PayPal order and grants the
// product entitlement on success
func CaptureOrderHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req captureOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.OrderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "order_id is required")
	}

	payment, err := Payments.CaptureOrder(c.Request().Context(), db.DB, user.ID, req.OrderID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// CreateSubscriptionHandler starts a PayPal subscription against the
// configured plan and returns it for client-side approval
func CreateSubscriptionHandler(c echo.Context) error {
	cfg := getConfig(c)

	sub, err := Payments.CreateSubscription(c.Request().Context(), cfg.PayPalPlanID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, sub)
}

type verifySubscriptionRequest struct {
	SubscriptionID string `json:"subscription_id"`
}

// VerifySubscriptionHandler checks a subscription with the provider and
// grants the full-analysis entitlement while it is active
func VerifySubscriptionHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req verifySubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.SubscriptionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subscription_id is required")
	}

	sub, err := Payments.VerifySubscription(c.Request().Context(), db.DB, user.ID, req.SubscriptionID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, sub)
}

// ListPaymentsHandler returns the user's payment history
func ListPaymentsHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	payments, err := services.ListUserPayments(db.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}

// ListEntitlementsHandler returns the user's product grants
func ListEntitlementsHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	entitlements, err := services.ListEntitlements(db.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, entitlements)
}
