package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/cboland/raceledger/grade"
	"github.com/cboland/raceledger/racekey"
)

type gradeRequest struct {
	RaceKey string `json:"raceKey"`

	Winner string `json:"winner"`
	Second string `json:"second,omitempty"`
	Third  string `json:"third,omitempty"`

	WinPayout      float64 `json:"winPayout"`
	ExactaPayout   float64 `json:"exactaPayout,omitempty"`
	TrifectaPayout float64 `json:"trifectaPayout,omitempty"`

	// Base stake each payout was quoted at; zero means already $2.00.
	WinBase      float64 `json:"winBase,omitempty"`
	ExactaBase   float64 `json:"exactaBase,omitempty"`
	TrifectaBase float64 `json:"trifectaBase,omitempty"`
}

// Grade records an official outcome against a stored race. The result is
// upserted whole, so re-grading replaces every finisher and payout.
func (h *Handler) Grade(c echo.Context) error {
	var req gradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.RaceKey == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing raceKey")
	}
	if req.Winner == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing winner")
	}

	ctx := c.Request().Context()
	outcome := grade.Outcome{
		Winner:         req.Winner,
		Second:         req.Second,
		Third:          req.Third,
		WinPayout:      req.WinPayout,
		ExactaPayout:   req.ExactaPayout,
		TrifectaPayout: req.TrifectaPayout,
		WinBase:        req.WinBase,
		ExactaBase:     req.ExactaBase,
		TrifectaBase:   req.TrifectaBase,
	}
	if err := grade.Grade(ctx, h.db, req.RaceKey, outcome); err != nil {
		if errors.Is(err, grade.ErrRaceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	positions := map[int]string{1: req.Winner}
	if req.Second != "" {
		positions[2] = req.Second
	}
	if req.Third != "" {
		positions[3] = req.Third
	}
	matched, err := grade.MarkFinishPositions(ctx, h.db, req.RaceKey, positions)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"raceKey": req.RaceKey,
		"matched": matched,
	})
}

// GradeCharts fetches the published finishing orders for a track and date and
// applies them to the stored predictions. Payouts are not published in the
// summaries, so full grading stays a manual follow-up; the response returns
// the scraped order so the operator can grade from it.
func (h *Handler) GradeCharts(c echo.Context) error {
	track, date := c.QueryParam("track"), c.QueryParam("date")
	if track == "" || date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing track or date param")
	}
	if !racekey.ValidDate(date) {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	ctx := c.Request().Context()
	order := h.charts.Lookup(ctx, track, date)

	matched := map[string]int{}
	for raceNum, positions := range order {
		key := racekey.Key(track, date, raceNum)
		n, err := grade.MarkFinishPositions(ctx, h.db, key, positions)
		if err != nil {
			if errors.Is(err, grade.ErrRaceNotFound) {
				h.log.Warn("charts cover a race that was never ingested", zap.String("raceKey", key))
				continue
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		matched[key] = n
	}

	return c.JSON(http.StatusOK, map[string]any{
		"order":   order,
		"matched": matched,
	})
}
