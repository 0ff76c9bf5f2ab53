package handlers

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

type renderer struct {
	t *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

// Register installs the page renderer and every score card route on e.
func (h *Handler) Register(e *echo.Echo) {
	e.Renderer = &renderer{t: template.Must(template.ParseFS(templateFS, "templates/*.html"))}

	e.GET("/", h.Page)
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))

	api := e.Group("/api")
	api.GET("/contestants", h.Contestants)
	api.POST("/commit", h.Commit)

	e.GET("/charts/tops.png", h.TopsChart)
	e.GET("/charts/penalty.png", h.PenaltyChart)
	e.GET("/export.xlsx", h.Export)
}
