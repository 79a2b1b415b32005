package handlers

import (
	"net/http"

	"justice_bot_go/db"
	"justice_bot_go/middleware"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

// UploadEvidenceHandler stores an evidence file for a case
func UploadEvidenceHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A file is required")
	}
	tags := c.FormValue("tags")

	evidence, err := services.UploadEvidence(c.Request().Context(), db.DB, user.ID, c.Param("id"), fileHeader, tags)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, evidence)
}

// ListEvidenceHandler returns the evidence rows for a case
func ListEvidenceHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	evidence, err := services.ListCaseEvidence(db.DB, user.ID, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, evidence)
}

// DownloadEvidenceHandler streams an evidence file back to its owner
func DownloadEvidenceHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	reader, contentType, fileName, err := services.GetEvidenceDownload(
		c.Request().Context(), db.DB, user.ID, c.Param("id"), c.Param("evidenceId"))
	if err != nil {
		return serviceError(c, err)
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Stream(http.StatusOK, contentType, reader)
}
