package handlers

import (
	"net/http"

	"justice_bot_go/db"
	"justice_bot_go/middleware"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminCasesReportHandler exports all cases as an Excel workbook
func AdminCasesReportHandler(c echo.Context) error {
	buf, err := services.GenerateCasesReport(db.DB)
	if err != nil {
		return serviceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="cases-report.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// AdminPaymentsReportHandler exports all payments as an Excel workbook
func AdminPaymentsReportHandler(c echo.Context) error {
	buf, err := services.GeneratePaymentsReport(db.DB)
	if err != nil {
		return serviceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="payments-report.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// AdminListFeedbackHandler lists feedback submissions for review
func AdminListFeedbackHandler(c echo.Context) error {
	feedback, err := services.ListFeedback(db.DB, c.QueryParam("status"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, feedback)
}

// AdminReviewFeedbackHandler marks a feedback row as reviewed
func AdminReviewFeedbackHandler(c echo.Context) error {
	if err := services.MarkFeedbackReviewed(db.DB, c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AdminListLowIncomeHandler lists fee-waiver applications
func AdminListLowIncomeHandler(c echo.Context) error {
	applications, err := services.ListLowIncomeApplications(db.DB, c.QueryParam("status"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, applications)
}

type lowIncomeReviewRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// AdminReviewLowIncomeHandler settles a fee-waiver application
func AdminReviewLowIncomeHandler(c echo.Context) error {
	reviewer := middleware.GetCurrentUser(c)

	var req lowIncomeReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	application, err := services.ReviewLowIncomeApplication(db.DB, c.Param("id"), reviewer.ID, req.Approve, req.Notes)
	if err != nil {
		return serviceError(c, err)
	}

	if cfg := getConfig(c); cfg != nil {
		var applicant struct{ Email string }
		if err := db.DB.Table("users").Select("email").Where("id = ?", application.UserID).Scan(&applicant).Error; err == nil && applicant.Email != "" {
			services.SendEmailAsync(cfg, services.BuildLowIncomeDecisionEmail(applicant.Email, req.Approve))
		}
	}

	return c.JSON(http.StatusOK, application)
}
