package handlers

import (
	"net/http"
	"strconv"

	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

// CaseLaw searchers, wired at startup. CaseLawLicensed is nil unless a
// CanLII API key is configured.
var (
	CaseLaw         services.CaseLawSearcher
	CaseLawLicensed services.CaseLawSearcher
)

// SearchCaseLawHandler proxies a case-law search so the client never talks to
// the upstream APIs directly. Results from the licensed provider are appended
// when it is configured.
func SearchCaseLawHandler(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	limit := 10
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 25 {
			limit = parsed
		}
	}

	results := make([]services.CaseLawResult, 0, limit)
	if CaseLaw != nil {
		primary, err := CaseLaw.Search(c.Request().Context(), query, limit)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, "Case-law search is unavailable")
		}
		results = append(results, primary...)
	}
	if CaseLawLicensed != nil {
		licensed, err := CaseLawLicensed.Search(c.Request().Context(), query, limit)
		if err != nil {
			c.Logger().Errorf("licensed case-law search failed: %v", err)
		} else {
			results = append(results, licensed...)
		}
	}

	return c.JSON(http.StatusOK, results)
}
