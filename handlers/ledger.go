package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cboland/raceledger/ledger"
)

// Ledger runs the wagering simulations over every graded race and returns the
// report. Query params: tracks (comma-separated substrings), from, to
// (inclusive YYYY-MM-DD), and optional stake overrides winStake, primeStake,
// exactaCost, trifectaCost.
func (h *Handler) Ledger(c echo.Context) error {
	f := ledger.Filter{
		From: c.QueryParam("from"),
		To:   c.QueryParam("to"),
	}
	if tracks := c.QueryParam("tracks"); tracks != "" {
		for _, t := range strings.Split(tracks, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tracks = append(f.Tracks, t)
			}
		}
	}

	for param, dst := range map[string]*decimal.Decimal{
		"winStake":     &f.WinStake,
		"primeStake":   &f.PrimeStake,
		"exactaCost":   &f.ExactaCost,
		"trifectaCost": &f.TrifectaCost,
	} {
		v := c.QueryParam(param)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil || !d.IsPositive() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid "+param)
		}
		*dst = d
	}

	races, err := ledger.Load(c.Request().Context(), h.db)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, ledger.Compute(races, f))
}
