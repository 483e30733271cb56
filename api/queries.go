package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/candidatos-info/encontienda/congresistas"
	"github.com/labstack/echo"
)

const (
	minQueryLength    = 2
	defaultSuggestion = 10
)

type fichaResponse struct {
	Congresista congresistas.Congresista `json:"congresista"`
	Ficha       congresistas.Ficha       `json:"ficha"`
}

type seccionResponse struct {
	Categoria    congresistas.Categoria     `json:"categoria"`
	Total        int                        `json:"total"`
	Congresistas []congresistas.Congresista `json:"congresistas"`
}

type filtroResponse struct {
	Criterio  congresistas.Criterio                                 `json:"criterio"`
	Valor     string                                                `json:"valor"`
	Explora   []congresistas.Congresista                            `json:"explora"`
	Hallazgos map[congresistas.Categoria][]congresistas.Congresista `json:"hallazgos"`
}

type deepLinkResponse struct {
	fichaResponse
	Filtro filtroResponse `json:"filtro"`
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

func notFound(id string) error {
	return echo.NewHTTPError(http.StatusNotFound, "congresista no encontrado: "+id)
}

func parseCriterio(c echo.Context) (congresistas.Criterio, bool, error) {
	raw := c.QueryParam("criterio")
	if raw == "" {
		return "", false, nil
	}
	criterio, err := congresistas.ParseCriterio(raw)
	if err != nil {
		return "", false, badRequest(err)
	}
	return criterio, true, nil
}

func filtrar(s *congresistas.Store, criterio congresistas.Criterio, valor string) filtroResponse {
	res := filtroResponse{
		Criterio:  criterio,
		Valor:     valor,
		Explora:   s.FilterByCriterion(criterio, valor),
		Hallazgos: map[congresistas.Categoria][]congresistas.Congresista{},
	}
	for _, cat := range congresistas.Categorias {
		res.Hallazgos[cat] = s.FilterByCategoryAndCriterion(cat, criterio, valor)
	}
	return res
}

// DeepLink resolves /?congresista=<id> into the ficha and the name filter the
// page applies to every section.
func (h *Handler) DeepLink(c echo.Context) error {
	id := c.QueryParam("congresista")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "falta el parámetro congresista")
	}
	s, err := h.store()
	if err != nil {
		return err
	}
	found, ok := s.FindByIDString(id)
	if !ok {
		return notFound(id)
	}
	return c.JSON(http.StatusOK, deepLinkResponse{
		fichaResponse: fichaResponse{Congresista: found, Ficha: congresistas.NewFicha(found)},
		Filtro:        filtrar(s, congresistas.PorNombre, found.Nombre),
	})
}

// Congresistas lists everybody, or those matching criterio and valor.
func (h *Handler) Congresistas(c echo.Context) error {
	criterio, ok, err := parseCriterio(c)
	if err != nil {
		return err
	}
	s, err := h.store()
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusOK, s.All())
	}
	return c.JSON(http.StatusOK, s.FilterByCriterion(criterio, c.QueryParam("valor")))
}

// Congresista returns one record and its ficha.
func (h *Handler) Congresista(c echo.Context) error {
	s, err := h.store()
	if err != nil {
		return err
	}
	found, ok := s.FindByIDString(c.Param("id"))
	if !ok {
		return notFound(c.Param("id"))
	}
	return c.JSON(http.StatusOK, fichaResponse{Congresista: found, Ficha: congresistas.NewFicha(found)})
}

// Compartir returns the address that opens the page on a congresista.
func (h *Handler) Compartir(c echo.Context) error {
	s, err := h.store()
	if err != nil {
		return err
	}
	found, ok := s.FindByIDString(c.Param("id"))
	if !ok {
		return notFound(c.Param("id"))
	}
	u, err := ShareURL(h.shareBaseURL, found.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"url": u})
}

// ShareURL adds congresista=<id> to base, keeping its other parameters.
func ShareURL(base string, id int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("congresista", strconv.Itoa(id))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Hallazgos lists the records with a finding in a category, optionally
// narrowed by criterio and valor.
func (h *Handler) Hallazgos(c echo.Context) error {
	cat, err := congresistas.ParseCategoria(c.Param("categoria"))
	if err != nil {
		return badRequest(err)
	}
	criterio, ok, err := parseCriterio(c)
	if err != nil {
		return err
	}
	s, err := h.store()
	if err != nil {
		return err
	}
	res := seccionResponse{Categoria: cat, Total: s.CountByCategory(cat)}
	if ok {
		res.Congresistas = s.FilterByCategoryAndCriterion(cat, criterio, c.QueryParam("valor"))
	} else {
		res.Congresistas = s.FilterByCategory(cat)
	}
	return c.JSON(http.StatusOK, res)
}

// Detalle returns the finding of a congresista in a category.
func (h *Handler) Detalle(c echo.Context) error {
	cat, err := congresistas.ParseCategoria(c.Param("categoria"))
	if err != nil {
		return badRequest(err)
	}
	s, err := h.store()
	if err != nil {
		return err
	}
	found, ok := s.FindByIDString(c.Param("id"))
	if !ok {
		return notFound(c.Param("id"))
	}
	return c.JSON(http.StatusOK, congresistas.NewDetalle(found, cat))
}

// Filtro applies one criterio and valor to the explorer and to every
// category section at once.
func (h *Handler) Filtro(c echo.Context) error {
	criterio, ok, err := parseCriterio(c)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "falta el parámetro criterio")
	}
	s, err := h.store()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, filtrar(s, criterio, c.QueryParam("valor")))
}

func limite(c echo.Context) (int, error) {
	raw := c.QueryParam("limite")
	if raw == "" {
		return defaultSuggestion, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limite inválido: "+raw)
	}
	return n, nil
}

// BuscarNombres suggests names containing q.
func (h *Handler) BuscarNombres(c echo.Context) error {
	n, err := limite(c)
	if err != nil {
		return err
	}
	s, err := h.store()
	if err != nil {
		return err
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	if utf8.RuneCountInString(q) < minQueryLength {
		return c.JSON(http.StatusOK, []congresistas.Sugerencia{})
	}
	res := s.SearchNames(q)
	if n > 0 && len(res) > n {
		res = res[:n]
	}
	return c.JSON(http.StatusOK, res)
}

// BuscarPartidos suggests parties containing q.
func (h *Handler) BuscarPartidos(c echo.Context) error {
	n, err := limite(c)
	if err != nil {
		return err
	}
	s, err := h.store()
	if err != nil {
		return err
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	if utf8.RuneCountInString(q) < minQueryLength {
		return c.JSON(http.StatusOK, []string{})
	}
	res := s.SearchParties(q)
	if n > 0 && len(res) > n {
		res = res[:n]
	}
	return c.JSON(http.StatusOK, res)
}

// Partidos returns the party index.
func (h *Handler) Partidos(c echo.Context) error {
	s, err := h.store()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Partidos())
}

// Estadisticas returns the per category totals of the whole collection.
func (h *Handler) Estadisticas(c echo.Context) error {
	s, err := h.store()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Estadisticas())
}
