package congresistas

// Estadistica summarises one category over the whole collection, as drawn
// by the donut charts.
type Estadistica struct {
	Categoria   Categoria `json:"categoria"`
	ConHallazgo int       `json:"con_hallazgo"`
	SinHallazgo int       `json:"sin_hallazgo"`
	Total       int       `json:"total"`
	Porcentaje  float64   `json:"porcentaje"`
	Color       string    `json:"color"`
}

// Estadisticas returns one Estadistica per category. They never depend on
// any filter.
func (s *Store) Estadisticas() []Estadistica {
	total := s.Len()
	res := make([]Estadistica, 0, len(Categorias))
	for _, cat := range Categorias {
		n := s.CountByCategory(cat)
		e := Estadistica{
			Categoria:   cat,
			ConHallazgo: n,
			SinHallazgo: total - n,
			Total:       total,
			Color:       presentaciones[cat].colorGrafico,
		}
		if total > 0 {
			e.Porcentaje = float64(n) * 100 / float64(total)
		}
		res = append(res, e)
	}
	return res
}
