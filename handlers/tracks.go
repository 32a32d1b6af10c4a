package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cboland/raceledger/trackdata"
)

// TrackProfile looks up the bundled directory entry for a track: country,
// chart code and any bias notes. Matching is normalization-aware, so
// "Gulfstream Park" and "gulfstream_park" both resolve.
func (h *Handler) TrackProfile(c echo.Context) error {
	track := c.QueryParam("track")
	if track == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing track param")
	}

	profile, ok := trackdata.Find(track)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "track not in directory")
	}
	return c.JSON(http.StatusOK, profile)
}
