package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/scorecard/charts"
	"github.com/padraicbc/scorecard/scorecard"
)

// TopsChart renders contestants ranked by total tops.
func (h *Handler) TopsChart(c echo.Context) error {
	return h.rankingChart(c, "Top Scorer", scorecard.RankByTops)
}

// PenaltyChart renders contestants ranked by total penalty.
func (h *Handler) PenaltyChart(c echo.Context) error {
	return h.rankingChart(c, "Top Penalties", scorecard.RankByPenalty)
}

func (h *Handler) rankingChart(c echo.Context, title string, rank func(scorecard.Snapshot) []scorecard.Ranked) error {
	snap, err := h.store.Load(c.Request().Context())
	if err != nil {
		// Drawn as an empty chart, same as the page's no-data state.
		h.metrics.LoadFailed()
		h.log.Warn("chart load failed", zap.String("chart", title), zap.Error(err))
	}

	png, err := charts.Ranking(title, rank(snap), h.chart)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, "image/png", png)
}
