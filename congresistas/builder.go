package congresistas

import (
	"log"
	"strconv"
	"strings"
)

// truthyValues are the upper-cased cell values read as true.
var truthyValues = map[string]struct{}{
	"TRUE": {},
	"SI":   {},
	"SÍ":   {},
	"1":    {},
	"YES":  {},
}

// IsTruthy reports whether a sheet cell means yes: TRUE, SI, SÍ, 1 or YES in
// any case. Everything else, including the empty cell, is false.
func IsTruthy(s string) bool {
	_, ok := truthyValues[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

// hallazgoCampos tells which columns feed each category.
var hallazgoCampos = map[Categoria]struct {
	encontrado, detalle, enlace, enlaceAdicional Campo
}{
	Intereses: {CampoHallazgoIntereses, CampoDetalleIntereses, CampoLinkIntereses, ""},
	Dinero:    {CampoHallazgoDinero, CampoDetalleDinero, CampoLinkDinero1, CampoLinkDinero2},
	Bienes:    {CampoHallazgoBienes, CampoDetalleBienes, CampoLinkBienes, ""},
	Estudios:  {CampoHallazgoEstudios, CampoDetalleEstudios, CampoLinkEstudios, ""},
}

// cells reads one data row through the resolved header.
type cells struct {
	index ColumnIndex
	row   []string
}

// text returns the trimmed cell of campo, or "" when the column is missing
// or the row is too short.
func (c cells) text(campo Campo) string {
	i, ok := c.index[campo]
	if !ok || i >= len(c.row) {
		return ""
	}
	return strings.TrimSpace(c.row[i])
}

func (c cells) flag(campo Campo) bool {
	return IsTruthy(c.text(campo))
}

// number returns the integer at the start of the cell, as spreadsheets often
// carry values like "45 años".
func (c cells) number(campo Campo) (int, bool) {
	return leadingInt(c.text(campo))
}

func (c cells) hallazgo(cat Categoria) Hallazgo {
	campos := hallazgoCampos[cat]
	h := Hallazgo{
		Encontrado: c.flag(campos.encontrado),
		Detalle:    c.text(campos.detalle),
		Enlace:     c.text(campos.enlace),
	}
	if campos.enlaceAdicional != "" {
		h.EnlaceAdicional = c.text(campos.enlaceAdicional)
	}
	return h
}

// BuildRecords turns parsed rows, header first, into congresistas. Rows with
// less than two cells or an empty first cell are skipped, and so is any row
// whose name ends up empty. Ids are unique: a missing or invalid id is
// replaced by the position of the record among the ones kept, starting at 1,
// or by the next unused number when that position is already an id. A
// repeated id keeps its first record and the later ones are renumbered the
// same way.
func BuildRecords(rows [][]string) []Congresista {
	records := []Congresista{}
	if len(rows) == 0 {
		return records
	}
	index := ResolveHeaders(rows[0])
	var validID []bool
	for _, row := range rows[1:] {
		if len(row) < 2 || row[0] == "" {
			continue
		}
		c, ok := buildRecord(cells{index: index, row: row})
		if c.Nombre == "" {
			continue
		}
		records = append(records, c)
		validID = append(validID, ok)
	}
	taken := make(map[int]int, len(records))
	for i := range records {
		if !validID[i] {
			continue
		}
		if first, ok := taken[records[i].ID]; ok {
			log.Printf("id %d repetido en las filas de %s y %s, se renumerará la segunda\n", records[i].ID, records[first].Nombre, records[i].Nombre)
			validID[i] = false
			continue
		}
		taken[records[i].ID] = i
	}
	for i := range records {
		if validID[i] {
			continue
		}
		id := i + 1
		for {
			if _, ok := taken[id]; !ok {
				break
			}
			id++
		}
		records[i].ID = id
		taken[id] = i
	}
	return records
}

// buildRecord applies the default policy of every field: strings are
// trimmed and empty when missing, flags are false when missing and numbers
// are zero. The returned bool is false when the id needs a fallback.
func buildRecord(c cells) (Congresista, bool) {
	id, idOK := c.number(CampoID)
	edad, _ := c.number(CampoEdad)
	nombre := c.text(CampoNombre)
	foto := c.text(CampoFoto)
	if foto == "" {
		foto = placeholderPhoto(nombre)
	}
	return Congresista{
		ID:                 id,
		Nombre:             nombre,
		Partido:            c.text(CampoPartido),
		Cargo:              c.text(CampoCargo),
		Foto:               foto,
		Region:             c.text(CampoRegion),
		Edad:               edad,
		CambioPartidario:   c.text(CampoCambioPartidario),
		ExperienciaPublico: c.text(CampoExperienciaPublico),
		Intereses:          c.hallazgo(Intereses),
		Dinero:             c.hallazgo(Dinero),
		Bienes:             c.hallazgo(Bienes),
		Estudios:           c.hallazgo(Estudios),
		Resumen:            c.text(CampoResumen),
		DisclaimerResumen:  c.text(CampoDisclaimerResumen),
	}, idOK && id != 0
}

// leadingInt parses an optional sign followed by decimal digits at the start
// of s, ignoring whatever comes after them.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
