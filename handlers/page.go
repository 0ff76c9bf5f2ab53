package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	bundb "github.com/padraicbc/scorecard/db"
	"github.com/padraicbc/scorecard/scorecard"
)

const seededNotice = "Database initialized with some sample data."

type pageData struct {
	Rows   scorecard.Snapshot
	Notice string
	NoData bool
}

// Page renders the editable score card with its two ranking charts.
func (h *Handler) Page(c echo.Context) error {
	snap, err := h.loadOrRecover(c.Request().Context())
	data := pageData{Rows: snap, NoData: err != nil}
	if data.Rows == nil {
		data.Rows = scorecard.Snapshot{}
	}
	if h.seeded.CompareAndSwap(true, false) {
		data.Notice = seededNotice
	}
	return c.Render(http.StatusOK, "index.html", data)
}

// Contestants returns the current table as JSON.
func (h *Handler) Contestants(c echo.Context) error {
	snap, err := h.store.Load(c.Request().Context())
	if err != nil {
		h.metrics.LoadFailed()
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

// Health pings the database.
func (h *Handler) Health(c echo.Context) error {
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.NoContent(http.StatusOK)
}

// loadOrRecover reads the table. A failed read most likely means the table is
// gone, so the schema is recreated and the read retried once.
func (h *Handler) loadOrRecover(ctx context.Context) (scorecard.Snapshot, error) {
	snap, err := h.store.Load(ctx)
	if err == nil {
		return snap, nil
	}
	h.metrics.LoadFailed()
	h.log.Warn("score card load failed, recreating schema", zap.Error(err))

	if serr := bundb.CreateSchema(ctx, h.db); serr != nil {
		h.log.Error("recreate schema failed", zap.Error(serr))
		return nil, err
	}
	return h.store.Load(ctx)
}
