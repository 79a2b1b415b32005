package handlers

import (
	"errors"
	"net/http"

	"justice_bot_go/config"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

// getConfig retrieves the application config placed in context by main
func getConfig(c echo.Context) *config.Config {
	cfg, _ := c.Get("config").(*config.Config)
	return cfg
}

// serviceError maps well-known service errors to HTTP responses. Unknown
// errors become a 500 with a generic message so internals never leak.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrCaseNotFound),
		errors.Is(err, services.ErrEvidenceNotFound),
		errors.Is(err, services.ErrFormNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrNoPrefillForForm):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrNotCaseOwner):
		// Ownership failures read as not-found so case IDs cannot be probed
		return echo.NewHTTPError(http.StatusNotFound, services.ErrCaseNotFound.Error())

	case errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrInvalidCaseStatus),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrFileTypeNotAllowed),
		errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrInvalidHouseholdSize),
		errors.Is(err, services.ErrInvalidIncome),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrFeedbackEmailRequired),
		errors.Is(err, services.ErrFeedbackMessageRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrResetTokenInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrCaseClosed),
		errors.Is(err, services.ErrPendingApplication),
		errors.Is(err, services.ErrApplicationNotPending),
		errors.Is(err, services.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDisabled):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrPaymentsDisabled),
		errors.Is(err, services.ErrSubscriptionPlanMissing),
		errors.Is(err, services.ErrAINotConfigured):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())

	case errors.Is(err, services.ErrPaymentIncomplete):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())

	case errors.Is(err, services.ErrLLMMalformed):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())

	default:
		c.Logger().Errorf("internal error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
