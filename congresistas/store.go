package congresistas

import (
	"sort"
	"strconv"
	"strings"
)

// Sugerencia is one entry of the name search dropdown.
type Sugerencia struct {
	Valor    string `json:"valor"`
	Sublabel string `json:"sublabel"`
	Foto     string `json:"foto"`
}

// Store is the collection read from one load of the sheet together with its
// party index. It is never modified once built, so it can be shared by any
// number of readers; a reload builds a new Store.
type Store struct {
	congresistas []Congresista
	partidos     []string
	byID         map[int]int
}

// NewStore builds a store owning a copy of records.
func NewStore(records []Congresista) *Store {
	s := &Store{
		congresistas: append([]Congresista(nil), records...),
		byID:         make(map[int]int, len(records)),
	}
	seen := map[string]struct{}{}
	for i, c := range s.congresistas {
		if _, ok := s.byID[c.ID]; !ok {
			s.byID[c.ID] = i
		}
		if c.Partido == "" {
			continue
		}
		if _, ok := seen[c.Partido]; !ok {
			seen[c.Partido] = struct{}{}
			s.partidos = append(s.partidos, c.Partido)
		}
	}
	sort.Strings(s.partidos)
	return s
}

// Len returns the size of the whole collection.
func (s *Store) Len() int {
	return len(s.congresistas)
}

// All returns every congresista in sheet order.
func (s *Store) All() []Congresista {
	return s.filter(func(Congresista) bool { return true })
}

// Partidos returns the distinct non empty parties, sorted.
func (s *Store) Partidos() []string {
	return append([]string{}, s.partidos...)
}

// FindByName returns the first congresista whose name is exactly nombre.
func (s *Store) FindByName(nombre string) (Congresista, bool) {
	for _, c := range s.congresistas {
		if c.Nombre == nombre {
			return c, true
		}
	}
	return Congresista{}, false
}

// FindByID returns the congresista with the given id.
func (s *Store) FindByID(id int) (Congresista, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Congresista{}, false
	}
	return s.congresistas[i], true
}

// FindByIDString resolves the id carried by a shared link, compared as text
// like the page does, so "007" does not match 7.
func (s *Store) FindByIDString(id string) (Congresista, bool) {
	n, err := strconv.Atoi(id)
	if err != nil || strconv.Itoa(n) != id {
		return Congresista{}, false
	}
	return s.FindByID(n)
}

// FilterByParty returns, in sheet order, the congresistas of partido.
func (s *Store) FilterByParty(partido string) []Congresista {
	return s.filter(func(c Congresista) bool { return c.Partido == partido })
}

// SearchNames returns a suggestion for every name containing query, ignoring
// case. The result is not capped.
func (s *Store) SearchNames(query string) []Sugerencia {
	q := strings.ToLower(query)
	res := []Sugerencia{}
	for _, c := range s.congresistas {
		if strings.Contains(strings.ToLower(c.Nombre), q) {
			res = append(res, Sugerencia{Valor: c.Nombre, Sublabel: c.Partido, Foto: c.Foto})
		}
	}
	return res
}

// SearchParties returns the parties containing query, ignoring case.
func (s *Store) SearchParties(query string) []string {
	q := strings.ToLower(query)
	res := []string{}
	for _, p := range s.partidos {
		if strings.Contains(strings.ToLower(p), q) {
			res = append(res, p)
		}
	}
	return res
}

// FilterByCriterion returns the congresista named value, or every member of
// the party value, depending on criterio.
func (s *Store) FilterByCriterion(criterio Criterio, value string) []Congresista {
	switch criterio {
	case PorNombre:
		if c, ok := s.FindByName(value); ok {
			return []Congresista{c}
		}
		return []Congresista{}
	case PorPartido:
		return s.FilterByParty(value)
	}
	panic("congresistas: criterio desconocido " + string(criterio))
}

// FilterByCategoryAndCriterion narrows FilterByCriterion to the congresistas
// with a finding in cat.
func (s *Store) FilterByCategoryAndCriterion(cat Categoria, criterio Criterio, value string) []Congresista {
	res := []Congresista{}
	for _, c := range s.FilterByCriterion(criterio, value) {
		if c.TieneHallazgo(cat) {
			res = append(res, c)
		}
	}
	return res
}

// FilterByCategory returns every congresista with a finding in cat.
func (s *Store) FilterByCategory(cat Categoria) []Congresista {
	return s.filter(func(c Congresista) bool { return c.TieneHallazgo(cat) })
}

// CountByCategory counts the congresistas of the whole collection with a
// finding in cat, whatever filter the caller is showing.
func (s *Store) CountByCategory(cat Categoria) int {
	n := 0
	for _, c := range s.congresistas {
		if c.TieneHallazgo(cat) {
			n++
		}
	}
	return n
}

func (s *Store) filter(keep func(Congresista) bool) []Congresista {
	res := []Congresista{}
	for _, c := range s.congresistas {
		if keep(c) {
			res = append(res, c)
		}
	}
	return res
}
