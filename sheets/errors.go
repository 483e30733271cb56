package sheets

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport means the sheet could not be downloaded: network failure
	// or a non 2xx response.
	ErrTransport = errors.New("falla de transporte")

	// ErrShape means the sheet was downloaded but holds no data rows.
	ErrShape = errors.New("formato de hoja inválido")

	// ErrBusy means another load is still running.
	ErrBusy = errors.New("ya hay una carga en proceso")
)

const userMessageTemplate = `Error al cargar datos: %s
Verifica que:
• El spreadsheet esté compartido como "Cualquier persona con el enlace puede ver"
• El nombre de la hoja sea "%s"
• El ID del spreadsheet sea correcto`

// UserMessage is the message shown to visitors when the sheet can not be
// loaded.
func UserMessage(err error, sheetName string) string {
	return fmt.Sprintf(userMessageTemplate, err, sheetName)
}
