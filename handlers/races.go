package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/cboland/raceledger/db"
	"github.com/cboland/raceledger/models"
)

// Dates returns every date that has at least one stored meeting, newest first.
func (h *Handler) Dates(c echo.Context) error {
	var dates []string
	err := h.db.NewSelect().Model((*models.Meeting)(nil)).
		ColumnExpr("DISTINCT date").
		OrderExpr("date DESC").
		Scan(c.Request().Context(), &dates)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dates)
}

// Meetings returns the meetings for a given date.
func (h *Handler) Meetings(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing date param")
	}

	var meetings []models.Meeting
	err := h.db.NewSelect().Model(&meetings).
		Where("date = ?", date).
		Order("track").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, meetings)
}

// Races returns a meeting's races with their predictions and, when graded,
// their results.
func (h *Handler) Races(c echo.Context) error {
	track, date := c.QueryParam("track"), c.QueryParam("date")
	if track == "" || date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing track or date param")
	}

	meeting, err := h.meetingFor(c, track, date)
	if err != nil {
		return err
	}

	var races []models.Race
	err = h.db.NewSelect().Model(&races).
		Relation("Predictions", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("rank")
		}).
		Relation("Result").
		Where("meeting_id = ?", meeting.MeetingID).
		Order("race_number").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, races)
}

// PurgeMeeting deletes a meeting and everything hanging off it. Destructive
// and deliberate: both track and date must be supplied exactly.
func (h *Handler) PurgeMeeting(c echo.Context) error {
	track, date := c.QueryParam("track"), c.QueryParam("date")
	if track == "" || date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing track or date param")
	}

	meeting, err := h.meetingFor(c, track, date)
	if err != nil {
		return err
	}

	if err := db.PurgeMeeting(c.Request().Context(), h.db, meeting.MeetingID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) meetingFor(c echo.Context, track, date string) (*models.Meeting, error) {
	meeting := &models.Meeting{}
	err := h.db.NewSelect().Model(meeting).
		Where("track = ? AND date = ?", track, date).
		Scan(c.Request().Context())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "no such meeting")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return meeting, nil
}
