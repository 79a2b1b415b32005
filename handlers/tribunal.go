package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"justice_bot_go/db"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

// Geo resolves addresses for the tribunal locator, wired at startup
var Geo services.Geocoder

// ListTribunalsHandler returns the tribunal office directory, optionally
// filtered by type
func ListTribunalsHandler(c echo.Context) error {
	tribunals, err := services.ListTribunals(db.DB, c.QueryParam("type"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, tribunals)
}

// NearestTribunalsHandler returns the closest tribunal offices of a type.
// The caller provides either lat/lon or a free-form address to geocode.
func NearestTribunalsHandler(c echo.Context) error {
	tribunalType := c.QueryParam("type")
	if tribunalType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "type is required")
	}

	var lat, lon float64
	latStr, lonStr := c.QueryParam("lat"), c.QueryParam("lon")
	address := c.QueryParam("address")

	switch {
	case latStr != "" && lonStr != "":
		var err error
		lat, err = strconv.ParseFloat(latStr, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid lat")
		}
		lon, err = strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid lon")
		}
	case address != "":
		if Geo == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Geocoding is not configured")
		}
		var err error
		lat, lon, err = Geo.Geocode(c.Request().Context(), address)
		if err != nil {
			if errors.Is(err, services.ErrAddressNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, err.Error())
			}
			return serviceError(c, err)
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Provide lat and lon, or an address")
	}

	limit := 3
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	nearest, err := services.NearestTribunals(db.DB, tribunalType, lat, lon, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, nearest)
}
