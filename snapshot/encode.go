package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/candidatos-info/encontienda/congresistas"
	"github.com/gocarina/gocsv"
	"github.com/golang/protobuf/proto"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Document is the JSON and protobuf shape of a whole collection.
type Document struct {
	Congresistas []congresistas.Congresista `json:"congresistas"`
	Partidos     []string                   `json:"partidos"`
	Estadisticas []congresistas.Estadistica `json:"estadisticas"`
}

// FichaDocument is the JSON and protobuf shape of one congresista.
type FichaDocument struct {
	Congresista congresistas.Congresista `json:"congresista"`
	Ficha       congresistas.Ficha       `json:"ficha"`
	Detalles    []congresistas.Detalle   `json:"detalles"`
}

// row is one line of the CSV export. Column names are the canonical ones
// understood by the sheet reader.
type row struct {
	ID                 int    `csv:"id"`
	Nombre             string `csv:"nombre"`
	Partido            string `csv:"partido"`
	Cargo              string `csv:"cargo"`
	Foto               string `csv:"foto"`
	Region             string `csv:"region"`
	Edad               int    `csv:"edad"`
	CambioPartidario   string `csv:"cambio_partidario"`
	ExperienciaPublico string `csv:"experiencia_publico"`
	HallazgoIntereses  bool   `csv:"hallazgo_intereses"`
	DetalleIntereses   string `csv:"detalle_intereses"`
	HallazgoDinero     bool   `csv:"hallazgo_dinero"`
	DetalleDinero      string `csv:"detalle_dinero"`
	HallazgoBienes     bool   `csv:"hallazgo_bienes"`
	DetalleBienes      string `csv:"detalle_bienes"`
	HallazgoEstudios   bool   `csv:"hallazgo_estudios"`
	DetalleEstudios    string `csv:"detalle_estudios"`
	LinkIntereses      string `csv:"link_detalle_intereses"`
	LinkDinero1        string `csv:"link_detalle_dinero_1"`
	LinkDinero2        string `csv:"link_detalle_dinero_2"`
	LinkBienes         string `csv:"link_detalle_bienes"`
	LinkEstudios       string `csv:"link_detalle_estudios"`
	Resumen            string `csv:"resumen_ficha"`
	DisclaimerResumen  string `csv:"disclaimer_resumen_ficha"`
}

func newRow(c congresistas.Congresista) *row {
	return &row{
		ID:                 c.ID,
		Nombre:             c.Nombre,
		Partido:            c.Partido,
		Cargo:              c.Cargo,
		Foto:               c.Foto,
		Region:             c.Region,
		Edad:               c.Edad,
		CambioPartidario:   c.CambioPartidario,
		ExperienciaPublico: c.ExperienciaPublico,
		HallazgoIntereses:  c.Intereses.Encontrado,
		DetalleIntereses:   c.Intereses.Detalle,
		HallazgoDinero:     c.Dinero.Encontrado,
		DetalleDinero:      c.Dinero.Detalle,
		HallazgoBienes:     c.Bienes.Encontrado,
		DetalleBienes:      c.Bienes.Detalle,
		HallazgoEstudios:   c.Estudios.Encontrado,
		DetalleEstudios:    c.Estudios.Detalle,
		LinkIntereses:      c.Intereses.Enlace,
		LinkDinero1:        c.Dinero.Enlace,
		LinkDinero2:        c.Dinero.EnlaceAdicional,
		LinkBienes:         c.Bienes.Enlace,
		LinkEstudios:       c.Estudios.Enlace,
		Resumen:            c.Resumen,
		DisclaimerResumen:  c.DisclaimerResumen,
	}
}

// NewDocument returns the export document of the collection.
func NewDocument(s *congresistas.Store) Document {
	return Document{
		Congresistas: s.All(),
		Partidos:     s.Partidos(),
		Estadisticas: s.Estadisticas(),
	}
}

// NewFichaDocument returns the export document of one congresista, with the
// detail of every category in ficha order.
func NewFichaDocument(c congresistas.Congresista) FichaDocument {
	f := congresistas.NewFicha(c)
	detalles := []congresistas.Detalle{}
	for _, ind := range f.Indicadores {
		detalles = append(detalles, congresistas.NewDetalle(c, ind.Categoria))
	}
	return FichaDocument{Congresista: c, Ficha: f, Detalles: detalles}
}

// Encode serialises the whole collection. The CSV export can be published as
// a sheet and read back into the same collection.
func Encode(s *congresistas.Store, f Format) ([]byte, error) {
	if f == CSV {
		return encodeCSV(s.All())
	}
	return encodeDocument(NewDocument(s), f)
}

// EncodeFicha serialises one congresista. CSV yields a single data row.
func EncodeFicha(c congresistas.Congresista, f Format) ([]byte, error) {
	if f == CSV {
		return encodeCSV([]congresistas.Congresista{c})
	}
	return encodeDocument(NewFichaDocument(c), f)
}

func encodeCSV(records []congresistas.Congresista) ([]byte, error) {
	rows := make([]*row, 0, len(records))
	for _, c := range records {
		rows = append(rows, newRow(c))
	}
	b, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("falla al serializar congresistas en CSV, error %q", err)
	}
	return b, nil
}

func encodeDocument(doc interface{}, f Format) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("falla al serializar el documento en JSON, error %q", err)
	}
	switch f {
	case JSON:
		return b, nil
	case PB:
		s := &structpb.Struct{}
		if err := protojson.Unmarshal(b, s); err != nil {
			return nil, fmt.Errorf("falla al convertir el documento a protobuf, error %q", err)
		}
		out, err := proto.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("falla al serializar el documento en protobuf, error %q", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// DecodePB reads a protobuf export back as JSON.
func DecodePB(b []byte) ([]byte, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("falla al leer el documento protobuf, error %q", err)
	}
	out, err := protojson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("falla al convertir el documento protobuf a JSON, error %q", err)
	}
	return out, nil
}
