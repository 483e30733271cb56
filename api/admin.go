package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/candidatos-info/encontienda/sheets"
	"github.com/candidatos-info/encontienda/snapshot"
	"github.com/candidatos-info/encontienda/status"
	"github.com/labstack/echo"
)

// Recarga starts reloading the sheet in the background.
func (h *Handler) Recarga(c echo.Context) error {
	if h.loader.State().Status == status.Loading {
		return c.String(http.StatusServiceUnavailable, "sistema está cargando datos")
	}
	go h.reload()
	return c.String(http.StatusAccepted, "Recarga en proceso")
}

func (h *Handler) reload() {
	if _, err := h.loader.Load(context.Background()); err != nil {
		if errors.Is(err, sheets.ErrBusy) {
			log.Println("recarga ignorada, ya hay una carga en proceso")
			return
		}
		log.Printf("falla al recargar la hoja, error %q\n", err)
	}
}

func (h *Handler) format(c echo.Context) (snapshot.Format, error) {
	if h.exporter == nil {
		return "", echo.NewHTTPError(http.StatusServiceUnavailable, "exportación no configurada")
	}
	f, err := snapshot.ParseFormat(c.QueryParam("formato"))
	if err != nil {
		return "", badRequest(err)
	}
	return f, nil
}

// Exportacion uploads a snapshot of the whole collection.
func (h *Handler) Exportacion(c echo.Context) error {
	f, err := h.format(c)
	if err != nil {
		return err
	}
	s, err := h.store()
	if err != nil {
		return err
	}
	location, err := h.exporter.ExportStore(s, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"ubicacion": location})
}

// ExportacionFicha uploads the ficha of one congresista.
func (h *Handler) ExportacionFicha(c echo.Context) error {
	f, err := h.format(c)
	if err != nil {
		return err
	}
	s, err := h.store()
	if err != nil {
		return err
	}
	found, ok := s.FindByIDString(c.Param("id"))
	if !ok {
		return notFound(c.Param("id"))
	}
	location, err := h.exporter.ExportFicha(found, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"ubicacion": location})
}
