// Package api exposes the loaded congresistas over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/candidatos-info/encontienda/congresistas"
	"github.com/candidatos-info/encontienda/sheets"
	"github.com/candidatos-info/encontienda/snapshot"
	"github.com/candidatos-info/encontienda/status"
	"github.com/labstack/echo"
)

const loadingMessage = "Cargando datos..."

// Loader is what the handler needs from sheets.Loader.
type Loader interface {
	Store() *congresistas.Store
	State() sheets.State
	SheetName() string
	Load(ctx context.Context) (*congresistas.Store, error)
}

// Exporter is what the handler needs from snapshot.Exporter.
type Exporter interface {
	ExportStore(s *congresistas.Store, f snapshot.Format) (string, error)
	ExportFicha(c congresistas.Congresista, f snapshot.Format) (string, error)
}

// Handler holds the dependencies of every route.
type Handler struct {
	loader       Loader
	exporter     Exporter // nil disables the export routes
	shareBaseURL string
}

// New returns a handler. exporter may be nil.
func New(loader Loader, exporter Exporter, shareBaseURL string) *Handler {
	return &Handler{
		loader:       loader,
		exporter:     exporter,
		shareBaseURL: shareBaseURL,
	}
}

// Register adds the public routes to e and the admin routes, behind admin
// middlewares, under /admin.
func (h *Handler) Register(e *echo.Echo, admin ...echo.MiddlewareFunc) {
	e.GET("/", h.DeepLink)
	e.GET("/estado", h.Estado)
	e.GET("/congresistas", h.Congresistas)
	e.GET("/congresistas/:id", h.Congresista)
	e.GET("/congresistas/:id/compartir", h.Compartir)
	e.GET("/hallazgos/:categoria", h.Hallazgos)
	e.GET("/hallazgos/:categoria/:id", h.Detalle)
	e.GET("/filtro", h.Filtro)
	e.GET("/buscar/nombres", h.BuscarNombres)
	e.GET("/buscar/partidos", h.BuscarPartidos)
	e.GET("/partidos", h.Partidos)
	e.GET("/estadisticas", h.Estadisticas)

	g := e.Group("/admin", admin...)
	g.POST("/recarga", h.Recarga)
	g.POST("/exportaciones", h.Exportacion)
	g.POST("/fichas/:id/exportacion", h.ExportacionFicha)
}

type estadoResponse struct {
	Status    status.Status `json:"status"`
	Texto     string        `json:"texto"`
	Error     string        `json:"error,omitempty"`
	CargadoEn *time.Time    `json:"cargado_en,omitempty"`
	Total     int           `json:"total"`
}

// Estado returns the state of the last load.
func (h *Handler) Estado(c echo.Context) error {
	st := h.loader.State()
	res := estadoResponse{
		Status: st.Status,
		Texto:  status.Text(st.Status),
		Total:  st.Total,
	}
	if st.Err != nil {
		res.Error = sheets.UserMessage(st.Err, h.loader.SheetName())
	}
	if !st.LoadedAt.IsZero() {
		res.CargadoEn = &st.LoadedAt
	}
	return c.JSON(http.StatusOK, res)
}

// store returns the published collection or a 503 carrying what visitors
// would read instead of the page.
func (h *Handler) store() (*congresistas.Store, error) {
	if s := h.loader.Store(); s != nil {
		return s, nil
	}
	st := h.loader.State()
	if st.Err != nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, sheets.UserMessage(st.Err, h.loader.SheetName()))
	}
	return nil, echo.NewHTTPError(http.StatusServiceUnavailable, loadingMessage)
}
