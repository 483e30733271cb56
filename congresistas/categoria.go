package congresistas

import (
	"errors"
	"fmt"
	"strings"
)

// Categoria is one of the four fixed groups of findings shown for every
// congresista.
type Categoria string

const (
	// Intereses groups conflicts of interest.
	Intereses Categoria = "intereses"

	// Dinero groups the money trail (declared income and contributions).
	Dinero Categoria = "dinero"

	// Bienes groups assets registered under the congresista's name.
	Bienes Categoria = "bienes"

	// Estudios groups the academic background backing the trajectory.
	Estudios Categoria = "estudios"
)

// Categorias lists every category in the order used by statistics and
// exports.
var Categorias = []Categoria{Intereses, Dinero, Bienes, Estudios}

var (
	// ErrUnknownCategoria is returned when a category name is not one of the
	// four known ones.
	ErrUnknownCategoria = errors.New("categoría desconocida")

	// ErrUnknownCriterio is returned when a filter criterion is neither
	// nombre nor partido.
	ErrUnknownCriterio = errors.New("criterio desconocido")

	categoriaAliases = map[string]Categoria{
		"intereses": Intereses,
		"interests": Intereses,
		"dinero":    Dinero,
		"money":     Dinero,
		"bienes":    Bienes,
		"assets":    Bienes,
		"estudios":  Estudios,
		"education": Estudios,
	}
)

// ParseCategoria resolves a category name, in Spanish or English, ignoring
// case and surrounding spaces.
func ParseCategoria(s string) (Categoria, error) {
	c, ok := categoriaAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategoria, s)
	}
	return c, nil
}

// Criterio is the dimension a visitor filters by.
type Criterio string

const (
	// PorNombre filters by the exact congresista name.
	PorNombre Criterio = "nombre"

	// PorPartido filters by the exact party name.
	PorPartido Criterio = "partido"
)

// ParseCriterio resolves a criterion name, in Spanish or English.
func ParseCriterio(s string) (Criterio, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nombre", "name":
		return PorNombre, nil
	case "partido", "party":
		return PorPartido, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCriterio, s)
}
