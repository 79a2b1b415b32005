package handlers

import (
	"net/http"

	"justice_bot_go/db"
	"justice_bot_go/middleware"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

type lowIncomeRequest struct {
	HouseholdSize     int   `json:"household_size"`
	AnnualIncomeCents int64 `json:"annual_income_cents"`
}

// ApplyLowIncomeHandler records a fee-waiver application
func ApplyLowIncomeHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req lowIncomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	application, err := services.ApplyForLowIncomeAccess(db.DB, user.ID, req.HouseholdSize, req.AnnualIncomeCents)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"application":     application,
		"meets_threshold": services.MeetsLowIncomeThreshold(req.HouseholdSize, req.AnnualIncomeCents),
	})
}

// GetLowIncomeStatusHandler returns the user's most recent application
func GetLowIncomeStatusHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	application, err := services.GetUserLowIncomeApplication(db.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, application)
}
