package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cboland/raceledger/ingest"
)

// Ingest loads every prediction document from the configured logs directory
// (or the dir query param) and returns the batch report. Re-running over the
// same files is safe: already-stored races are skipped.
func (h *Handler) Ingest(c echo.Context) error {
	dir := c.QueryParam("dir")
	if dir == "" {
		dir = h.logsDir
	}

	rep, err := ingest.Run(c.Request().Context(), h.db, dir, h.log)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rep)
}
