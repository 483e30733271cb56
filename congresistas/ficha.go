package congresistas

import "fmt"

const (
	sinDetalle        = "Sin información detallada disponible."
	regionSinDato     = "No especificada"
	tituloSinHallazgo = "Sin hallazgos: El contraste entre lo declarado y registros públicos oficiales no reveló diferencias en las secciones analizadas."
	tituloConHallazgo = "Hallazgos: Se identificaron cruces relevantes de información en %d de las %d secciones analizadas, a partir de datos públicos."
)

// presentacion holds the fixed texts and colours of a category.
type presentacion struct {
	etiqueta      string // label under the ficha icon
	color         string // ficha icon colour
	colorGrafico  string // donut chart colour
	tituloDetalle string
}

var presentaciones = map[Categoria]presentacion{
	Intereses: {"Intereses cruzados", "yellow", "#FFF85F", "Intereses cruzados detectados"},
	Dinero:    {"El rastro del dinero", "green", "#85FF85", "Hallazgos en rastro del dinero"},
	Bienes:    {"Bienes a su nombre", "pink", "#F5A9F2", "Diferencias en bienes declarados"},
	Estudios:  {"Lo que respalda su trayectoria", "blue", "#85E3FF", "Inconsistencias en respaldo académico"},
}

// ordenFicha is the order of the icons on a ficha.
var ordenFicha = []Categoria{Intereses, Dinero, Estudios, Bienes}

// Indicador is the icon of one category on a ficha, lit when there is a
// finding.
type Indicador struct {
	Categoria Categoria `json:"categoria"`
	Etiqueta  string    `json:"etiqueta"`
	Color     string    `json:"color"`
	Activo    bool      `json:"activo"`
}

// Ficha is the summary card of a congresista.
type Ficha struct {
	ID                int         `json:"id"`
	Nombre            string      `json:"nombre"`
	Partido           string      `json:"partido"`
	Cargo             string      `json:"cargo"`
	Foto              string      `json:"foto"`
	Region            string      `json:"region"`
	Edad              int         `json:"edad"`
	TieneHallazgos    bool        `json:"tiene_hallazgos"`
	CantidadHallazgos int         `json:"cantidad_hallazgos"`
	Titulo            string      `json:"titulo"`
	Indicadores       []Indicador `json:"indicadores"`
	Resumen           string      `json:"resumen,omitempty"`
	Disclaimer        string      `json:"disclaimer,omitempty"`
}

// NewFicha builds the summary card of c.
func NewFicha(c Congresista) Ficha {
	n := c.CantidadHallazgos()
	f := Ficha{
		ID:                c.ID,
		Nombre:            c.Nombre,
		Partido:           c.Partido,
		Cargo:             c.Cargo,
		Foto:              c.Foto,
		Region:            c.Region,
		Edad:              c.Edad,
		TieneHallazgos:    n > 0,
		CantidadHallazgos: n,
		Titulo:            tituloSinHallazgo,
		Resumen:           c.Resumen,
		Disclaimer:        c.DisclaimerResumen,
	}
	if n > 0 {
		f.Titulo = fmt.Sprintf(tituloConHallazgo, n, len(Categorias))
	}
	for _, cat := range ordenFicha {
		p := presentaciones[cat]
		f.Indicadores = append(f.Indicadores, Indicador{
			Categoria: cat,
			Etiqueta:  p.etiqueta,
			Color:     p.color,
			Activo:    c.TieneHallazgo(cat),
		})
	}
	return f
}

// Documento is a downloadable file backing a finding.
type Documento struct {
	Etiqueta string `json:"etiqueta"`
	URL      string `json:"url"`
}

// Detalle is the expanded view of one finding of a congresista.
type Detalle struct {
	ID         int         `json:"id"`
	Nombre     string      `json:"nombre"`
	Partido    string      `json:"partido"`
	Region     string      `json:"region"`
	Foto       string      `json:"foto"`
	Categoria  Categoria   `json:"categoria"`
	Titulo     string      `json:"titulo"`
	Encontrado bool        `json:"encontrado"`
	Texto      string      `json:"texto"`
	Documentos []Documento `json:"documentos"`
}

// NewDetalle builds the detail of c in cat.
func NewDetalle(c Congresista, cat Categoria) Detalle {
	h := c.Hallazgo(cat)
	d := Detalle{
		ID:         c.ID,
		Nombre:     c.Nombre,
		Partido:    c.Partido,
		Region:     c.Region,
		Foto:       c.Foto,
		Categoria:  cat,
		Titulo:     presentaciones[cat].tituloDetalle,
		Encontrado: h.Encontrado,
		Texto:      h.Detalle,
		Documentos: documentos(h, cat),
	}
	if d.Region == "" {
		d.Region = regionSinDato
	}
	if d.Texto == "" {
		d.Texto = sinDetalle
	}
	return d
}

// documentos labels the links of a finding. Money findings carry the sworn
// declarations of 2021 and 2025.
func documentos(h Hallazgo, cat Categoria) []Documento {
	docs := []Documento{}
	if cat == Dinero {
		if h.Enlace != "" {
			docs = append(docs, Documento{Etiqueta: "DJI 2021", URL: h.Enlace})
		}
		if h.EnlaceAdicional != "" {
			docs = append(docs, Documento{Etiqueta: "DJI 2025", URL: h.EnlaceAdicional})
		}
		return docs
	}
	if h.Enlace != "" {
		docs = append(docs, Documento{Etiqueta: "Descargar documento", URL: h.Enlace})
	}
	return docs
}
