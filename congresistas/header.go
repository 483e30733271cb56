package congresistas

import "strings"

// Campo is the canonical name of a column the builder knows how to read.
type Campo string

// Canonical columns. Their values double as the header names written by the
// CSV export, so an exported sheet can be read back.
const (
	CampoID                 Campo = "id"
	CampoNombre             Campo = "nombre"
	CampoPartido            Campo = "partido"
	CampoCargo              Campo = "cargo"
	CampoFoto               Campo = "foto"
	CampoRegion             Campo = "region"
	CampoEdad               Campo = "edad"
	CampoCambioPartidario   Campo = "cambio_partidario"
	CampoExperienciaPublico Campo = "experiencia_publico"
	CampoHallazgoIntereses  Campo = "hallazgo_intereses"
	CampoDetalleIntereses   Campo = "detalle_intereses"
	CampoHallazgoDinero     Campo = "hallazgo_dinero"
	CampoDetalleDinero      Campo = "detalle_dinero"
	CampoHallazgoBienes     Campo = "hallazgo_bienes"
	CampoDetalleBienes      Campo = "detalle_bienes"
	CampoHallazgoEstudios   Campo = "hallazgo_estudios"
	CampoDetalleEstudios    Campo = "detalle_estudios"
	CampoLinkIntereses      Campo = "link_detalle_intereses"
	CampoLinkDinero1        Campo = "link_detalle_dinero_1"
	CampoLinkDinero2        Campo = "link_detalle_dinero_2"
	CampoLinkBienes         Campo = "link_detalle_bienes"
	CampoLinkEstudios       Campo = "link_detalle_estudios"
	CampoResumen            Campo = "resumen_ficha"
	CampoDisclaimerResumen  Campo = "disclaimer_resumen_ficha"
)

// headerAliases lists, for every canonical column, the headers editors have
// used for it. Aliases are lower case.
var headerAliases = []struct {
	campo   Campo
	aliases []string
}{
	{CampoID, []string{"id"}},
	{CampoNombre, []string{"nombre", "name"}},
	{CampoPartido, []string{"partido", "party"}},
	{CampoCargo, []string{"cargo", "position"}},
	{CampoFoto, []string{"foto", "foto_url", "photo", "imagen", "image"}},
	{CampoRegion, []string{"region", "región", "departamento"}},
	{CampoEdad, []string{"edad", "age"}},
	{CampoCambioPartidario, []string{"cambio_partidario", "cambio_partido"}},
	{CampoExperienciaPublico, []string{"experiencia_publico", "experiencia"}},
	{CampoHallazgoIntereses, []string{"hallazgo_intereses", "intereses"}},
	{CampoDetalleIntereses, []string{"detalle_intereses"}},
	{CampoHallazgoDinero, []string{"hallazgo_dinero", "dinero"}},
	{CampoDetalleDinero, []string{"detalle_dinero"}},
	{CampoHallazgoBienes, []string{"hallazgo_bienes", "bienes"}},
	{CampoDetalleBienes, []string{"detalle_bienes"}},
	{CampoHallazgoEstudios, []string{"hallazgo_estudios", "estudios"}},
	{CampoDetalleEstudios, []string{"detalle_estudios"}},
	{CampoLinkIntereses, []string{"link_detalle_intereses", "link_intereses"}},
	{CampoLinkDinero1, []string{"link_detalle_dinero_1", "link_detalle_dinero"}},
	{CampoLinkDinero2, []string{"link_detalle_dinero_2"}},
	{CampoLinkBienes, []string{"link_detalle_bienes", "link_bienes"}},
	{CampoLinkEstudios, []string{"link_detalle_estudios", "link_estudios"}},
	{CampoResumen, []string{"resumen_ficha", "resumen"}},
	{CampoDisclaimerResumen, []string{"disclaimer_resumen_ficha", "disclaimer_resumen"}},
}

// ColumnIndex maps a canonical column to its position in the sheet. Columns
// missing from the sheet are absent.
type ColumnIndex map[Campo]int

// ResolveHeaders finds, for each canonical column, the first header matching
// one of its aliases, case-insensitively.
func ResolveHeaders(headers []string) ColumnIndex {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}
	index := ColumnIndex{}
	for _, entry := range headerAliases {
		for i, h := range normalized {
			if contains(entry.aliases, h) {
				index[entry.campo] = i
				break
			}
		}
	}
	return index
}

// Campos returns the canonical columns in sheet order.
func Campos() []Campo {
	campos := make([]Campo, len(headerAliases))
	for i, entry := range headerAliases {
		campos[i] = entry.campo
	}
	return campos
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
