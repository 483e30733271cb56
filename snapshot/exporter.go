package snapshot

import (
	"fmt"
	"log"
	"time"

	"github.com/candidatos-info/encontienda/congresistas"
	"github.com/candidatos-info/encontienda/filestorage"
	"github.com/matryer/try"
)

const (
	maxAttempts    = 5
	fileTimeLayout = "20060102-150405"
)

// Exporter uploads snapshots to a destination.
type Exporter struct {
	storage filestorage.FileStorage
	dest    filestorage.Destination
	now     func() time.Time
}

// NewExporter returns an exporter writing into dest through storage.
func NewExporter(storage filestorage.FileStorage, dest filestorage.Destination) *Exporter {
	return &Exporter{storage: storage, dest: dest, now: time.Now}
}

// ExportStore uploads the whole collection and returns its location.
func (e *Exporter) ExportStore(s *congresistas.Store, f Format) (string, error) {
	b, err := Encode(s, f)
	if err != nil {
		return "", err
	}
	fileName := fmt.Sprintf("congresistas-%s%s", e.now().UTC().Format(fileTimeLayout), f.Ext())
	return e.upload(b, fileName)
}

// ExportFicha uploads the ficha of c and returns its location.
func (e *Exporter) ExportFicha(c congresistas.Congresista, f Format) (string, error) {
	b, err := EncodeFicha(c, f)
	if err != nil {
		return "", err
	}
	return e.upload(b, fmt.Sprintf("fichas/%d%s", c.ID, f.Ext()))
}

func (e *Exporter) upload(b []byte, fileName string) (string, error) {
	key := e.dest.Key(fileName)
	var location string
	err := try.Do(func(attempt int) (bool, error) {
		var err error
		location, err = e.storage.Upload(b, e.dest.Bucket, key)
		if err != nil {
			log.Printf("intento %d de subir [%s] falló, error %q\n", attempt, key, err)
		}
		return attempt < maxAttempts, err
	})
	if err != nil {
		return "", fmt.Errorf("falla al guardar el archivo [%s] en [%s], error %q", key, e.dest.Bucket, err)
	}
	log.Printf("exportado [%s]\n", location)
	return location, nil
}
