// Package congresistas holds the candidate records read from the published
// sheet and answers every question the fichas page asks about them.
package congresistas

import (
	"net/url"
	"strings"
)

const placeholderPhotoURL = "https://via.placeholder.com/150x150/ccc/666?text="

// Hallazgo is what was found, if anything, for one congresista in one
// category.
type Hallazgo struct {
	Encontrado      bool   `json:"encontrado"`
	Detalle         string `json:"detalle"`                    // may carry pre-formatted markup from the sheet
	Enlace          string `json:"enlace,omitempty"`           // supporting document
	EnlaceAdicional string `json:"enlace_adicional,omitempty"` // only used by Dinero
}

// Enlaces returns the non empty document links in sheet order.
func (h Hallazgo) Enlaces() []string {
	links := []string{}
	for _, l := range []string{h.Enlace, h.EnlaceAdicional} {
		if l != "" {
			links = append(links, l)
		}
	}
	return links
}

// Congresista is one row of the sheet. Values are never modified after they
// are built.
type Congresista struct {
	ID                 int      `json:"id"`
	Nombre             string   `json:"nombre"`
	Partido            string   `json:"partido"`
	Cargo              string   `json:"cargo"`
	Foto               string   `json:"foto"`
	Region             string   `json:"region"`
	Edad               int      `json:"edad"`
	CambioPartidario   string   `json:"cambio_partidario"`
	ExperienciaPublico string   `json:"experiencia_publico"`
	Intereses          Hallazgo `json:"intereses"`
	Dinero             Hallazgo `json:"dinero"`
	Bienes             Hallazgo `json:"bienes"`
	Estudios           Hallazgo `json:"estudios"`
	Resumen            string   `json:"resumen_ficha"`
	DisclaimerResumen  string   `json:"disclaimer_resumen_ficha"`
}

// Hallazgo returns the finding of c for the given category. Unknown
// categories must be rejected with ParseCategoria before reaching here.
func (c Congresista) Hallazgo(cat Categoria) Hallazgo {
	switch cat {
	case Intereses:
		return c.Intereses
	case Dinero:
		return c.Dinero
	case Bienes:
		return c.Bienes
	case Estudios:
		return c.Estudios
	}
	panic("congresistas: categoría desconocida " + string(cat))
}

// TieneHallazgo reports whether c has a finding in cat.
func (c Congresista) TieneHallazgo(cat Categoria) bool {
	return c.Hallazgo(cat).Encontrado
}

// CantidadHallazgos counts the categories with a finding.
func (c Congresista) CantidadHallazgos() int {
	n := 0
	for _, cat := range Categorias {
		if c.TieneHallazgo(cat) {
			n++
		}
	}
	return n
}

// placeholderPhoto builds the image shown when the sheet has no photo, using
// the first two letters of the name.
func placeholderPhoto(nombre string) string {
	initials := []rune(nombre)
	if len(initials) > 2 {
		initials = initials[:2]
	}
	return placeholderPhotoURL + uriComponent.Replace(url.QueryEscape(string(initials)))
}

// uriComponent turns query escaping into URI component escaping, where
// spaces are %20 and !'()* stay as they are.
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
