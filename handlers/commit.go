package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/scorecard/scorecard"
)

type commitRequest struct {
	// Snapshot is the table exactly as the client rendered it; batch
	// positions index into it.
	Snapshot scorecard.Snapshot `json:"snapshot"`
	scorecard.Batch
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Commit applies the client's pending edits, inserts and deletes in one transaction.
func (h *Handler) Commit(c echo.Context) error {
	var req commitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errorResponse{Code: "bad_request", Message: err.Error()})
	}

	start := time.Now()
	err := h.store.Commit(c.Request().Context(), req.Snapshot, req.Batch)
	h.metrics.ObserveCommit(req.Batch, err, time.Since(start))
	if err != nil {
		return h.httpError(err)
	}

	h.log.Info("score card committed",
		zap.Int("edited", len(req.Edits)),
		zap.Int("added", len(req.Inserts)),
		zap.Int("deleted", len(req.Deletes)),
	)
	return c.NoContent(http.StatusNoContent)
}

// httpError maps score card errors onto HTTP statuses.
func (h *Handler) httpError(err error) error {
	var stale *scorecard.StaleReferenceError
	var pe *scorecard.PersistenceError
	switch {
	case errors.As(err, &stale):
		h.log.Warn("stale reference", zap.Error(err))
		return echo.NewHTTPError(http.StatusConflict, errorResponse{
			Code:    "stale_reference",
			Message: "The table changed since it was loaded. Reload and try again.",
		}).SetInternal(err)
	case errors.As(err, &pe):
		h.log.Error("persistence failure", zap.String("op", pe.Op), zap.Error(pe.Err))
		return echo.NewHTTPError(http.StatusInternalServerError, errorResponse{
			Code:    "persistence",
			Message: "Changes could not be saved. Nothing was applied.",
		}).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
