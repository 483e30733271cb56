package snapshot

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/candidatos-info/encontienda/congresistas"
	"github.com/candidatos-info/encontienda/filestorage"
	"github.com/candidatos-info/encontienda/sheets"
)

const fixtureSheet = `id,nombre,partido,cargo,foto,region,edad,hallazgo_dinero,detalle_dinero,link_detalle_dinero,link_detalle_dinero_2,hallazgo_bienes,detalle_bienes,resumen_ficha
1,Ana Ruiz,Fuerza Verde,Senadora,https://a/ana.jpg,Lima,51,sí,"Aportes de ""Empresa A"", 2021
y 2022",https://a/dji21.pdf,https://a/dji25.pdf,no,,Resumen de Ana
2,Leo Paz,Fuerza Azul,,,,,FALSE,,,,TRUE,"Casa, auto",
3,Eva Sol,,Diputada,,Cusco,40,,,,,,,
`

func fixtureStore(t *testing.T) *congresistas.Store {
	s, err := sheets.BuildStore(fixtureSheet)
	if err != nil {
		t.Fatalf("expected err nil when building fixture, got %q", err)
	}
	if s.Len() != 3 {
		t.Fatalf("want 3 fixture records, got %d", s.Len())
	}
	return s
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in  string
		out Format
		err error
	}{
		{"", JSON, nil},
		{"CSV", CSV, nil},
		{" json ", JSON, nil},
		{"pb", PB, nil},
		{"protobuf", PB, nil},
		{"jpeg", "", ErrUnknownFormat},
	}
	for _, tt := range testCases {
		res, err := ParseFormat(tt.in)
		if res != tt.out || !errors.Is(err, tt.err) {
			t.Errorf("ParseFormat(%q): want %s/%v, got %s/%v", tt.in, tt.out, tt.err, res, err)
		}
	}
}

func TestCSVExportReadsBack(t *testing.T) {
	s := fixtureStore(t)
	b, err := Encode(s, CSV)
	if err != nil {
		t.Fatalf("expected err nil when encoding csv, got %q", err)
	}
	if !strings.HasPrefix(string(b), "id,nombre,partido,cargo,foto,region,edad,") {
		t.Errorf("unexpected header %s", strings.SplitN(string(b), "\n", 2)[0])
	}
	back, err := sheets.BuildStore(string(b))
	if err != nil {
		t.Fatalf("expected err nil when reading export back, got %q", err)
	}
	if !reflect.DeepEqual(back.All(), s.All()) {
		t.Errorf("want %+v, got %+v", s.All(), back.All())
	}
	if !reflect.DeepEqual(back.Partidos(), s.Partidos()) {
		t.Errorf("want parties %v, got %v", s.Partidos(), back.Partidos())
	}
}

func TestPBExport(t *testing.T) {
	s := fixtureStore(t)
	b, err := Encode(s, PB)
	if err != nil {
		t.Fatalf("expected err nil when encoding pb, got %q", err)
	}
	j, err := DecodePB(b)
	if err != nil {
		t.Fatalf("expected err nil when decoding pb, got %q", err)
	}
	var doc Document
	if err := json.Unmarshal(j, &doc); err != nil {
		t.Fatalf("expected err nil when reading decoded document, got %q", err)
	}
	if !reflect.DeepEqual(doc, NewDocument(s)) {
		t.Errorf("want %+v, got %+v", NewDocument(s), doc)
	}
}

func TestEncodeFicha(t *testing.T) {
	s := fixtureStore(t)
	ana, _ := s.FindByID(1)
	b, err := EncodeFicha(ana, JSON)
	if err != nil {
		t.Fatalf("expected err nil when encoding ficha, got %q", err)
	}
	var doc FichaDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("expected err nil when reading ficha, got %q", err)
	}
	if doc.Ficha.CantidadHallazgos != 1 || len(doc.Detalles) != len(congresistas.Categorias) {
		t.Errorf("unexpected ficha document %+v", doc)
	}
	if d := doc.Detalles[1]; d.Categoria != congresistas.Dinero || len(d.Documentos) != 2 {
		t.Errorf("expected money detail with two documents, got %+v", d)
	}
	row, err := EncodeFicha(ana, CSV)
	if err != nil {
		t.Fatalf("expected err nil when encoding ficha as csv, got %q", err)
	}
	single, err := sheets.BuildStore(string(row))
	if err != nil {
		t.Fatalf("expected err nil when reading ficha csv, got %q", err)
	}
	if got, _ := single.FindByID(1); got != ana {
		t.Errorf("want %+v, got %+v", ana, got)
	}
	if _, err := EncodeFicha(ana, Format("gif")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("want ErrUnknownFormat, got %v", err)
	}
}

type flakyStorage struct {
	failures int
	calls    int
	keys     []string
}

func (f *flakyStorage) Upload(b []byte, bucket, fileName string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("503 Service Unavailable")
	}
	f.keys = append(f.keys, fileName)
	return bucket + "/" + fileName, nil
}

func TestExporterRetries(t *testing.T) {
	s := fixtureStore(t)
	storage := &flakyStorage{failures: 2}
	e := NewExporter(storage, filestorage.Destination{Kind: filestorage.GCS, Bucket: "b", Prefix: "exp"})
	e.now = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }
	location, err := e.ExportStore(s, JSON)
	if err != nil {
		t.Fatalf("expected err nil after retries, got %q", err)
	}
	if location != "b/exp/congresistas-20240501-103000.json" || storage.calls != 3 {
		t.Errorf("unexpected location %s after %d calls", location, storage.calls)
	}

	broken := &flakyStorage{failures: 100}
	e = NewExporter(broken, filestorage.Destination{Kind: filestorage.GCS, Bucket: "b"})
	if _, err := e.ExportStore(s, CSV); err == nil {
		t.Errorf("expected error when storage never succeeds")
	}
	if broken.calls != maxAttempts {
		t.Errorf("want %d attempts, got %d", maxAttempts, broken.calls)
	}
}

func TestExporterLocal(t *testing.T) {
	dir, err := ioutil.TempDir("", "snapshot")
	if err != nil {
		t.Fatalf("expected err nil when creating temp dir, got %q", err)
	}
	defer os.RemoveAll(dir)
	s := fixtureStore(t)
	e := NewExporter(filestorage.NewLocalStorage(), filestorage.Destination{Kind: filestorage.Local, Bucket: dir})
	eva, _ := s.FindByID(3)
	location, err := e.ExportFicha(eva, PB)
	if err != nil {
		t.Fatalf("expected err nil when exporting ficha, got %q", err)
	}
	if want := filepath.Join(dir, "fichas", "3.pb"); location != want {
		t.Errorf("want %s, got %s", want, location)
	}
	b, err := ioutil.ReadFile(location)
	if err != nil {
		t.Fatalf("expected err nil when reading export, got %q", err)
	}
	j, err := DecodePB(b)
	if err != nil {
		t.Fatalf("expected err nil when decoding export, got %q", err)
	}
	var doc FichaDocument
	if err := json.Unmarshal(j, &doc); err != nil {
		t.Fatalf("expected err nil when reading decoded ficha, got %q", err)
	}
	if doc.Congresista != eva || doc.Detalles[0].Region != "Cusco" {
		t.Errorf("unexpected ficha %+v", doc)
	}
}
