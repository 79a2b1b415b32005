package handlers

import (
	"net/http"

	"justice_bot_go/db"
	"justice_bot_go/middleware"
	"justice_bot_go/models"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

// ListFormsHandler returns the form catalog, optionally filtered by pathway
func ListFormsHandler(c echo.Context) error {
	forms, err := services.ListForms(db.DB, c.QueryParam("pathway"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, forms)
}

// GetCasePrefillHandler returns the extracted prefill fields for a form
func GetCasePrefillHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	prefill, err := services.GetCasePrefill(db.DB, user.ID, c.Param("id"), c.Param("formCode"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"case_id":      prefill.CaseID,
		"form_code":    prefill.FormCode,
		"pathway_type": prefill.PathwayType,
		"fields":       prefill.GetFields(),
	})
}

// GenerateFormPDFHandler renders a prefilled tribunal form as a PDF.
// Requires the forms-bundle entitlement.
func GenerateFormPDFHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	caseID := c.Param("id")
	formCode := c.Param("formCode")

	entitled, err := services.HasEntitlement(db.DB, user.ID, models.ProductFormsBundle)
	if err != nil {
		return serviceError(c, err)
	}
	if !entitled {
		return echo.NewHTTPError(http.StatusPaymentRequired, "Form generation requires the forms-bundle product")
	}

	form, err := services.GetFormByCode(db.DB, formCode)
	if err != nil {
		return serviceError(c, err)
	}

	prefill, err := services.GetCasePrefill(db.DB, user.ID, caseID, formCode)
	if err != nil {
		return serviceError(c, err)
	}

	html, err := services.RenderFormHTML(form, prefill)
	if err != nil {
		return serviceError(c, err)
	}

	pdf, err := services.GeneratePDF(html, services.DefaultPDFOptions())
	if err != nil {
		return serviceError(c, err)
	}

	if err := services.RecordFormUsage(db.DB, user.ID, caseID, formCode, "pdf"); err != nil {
		c.Logger().Errorf("failed to record form usage: %v", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+formCode+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
