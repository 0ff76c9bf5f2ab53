package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/scorecard/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export downloads the current table as an XLSX workbook.
func (h *Handler) Export(c echo.Context) error {
	snap, err := h.store.Load(c.Request().Context())
	if err != nil {
		h.metrics.LoadFailed()
		return h.httpError(err)
	}

	f, err := export.Workbook(snap)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer f.Close()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, xlsxContentType)
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="scorecard.xlsx"`)
	res.WriteHeader(http.StatusOK)
	_, err = f.WriteTo(res)
	return err
}
