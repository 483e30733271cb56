package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/candidatos-info/encontienda/congresistas"
	"github.com/candidatos-info/encontienda/sheets"
	"github.com/candidatos-info/encontienda/snapshot"
	"github.com/candidatos-info/encontienda/status"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

const testSheet = "id,nombre,partido,region,hallazgo_intereses,hallazgo_dinero,link_detalle_dinero,hallazgo_bienes\n" +
	"1,Ana Ruiz,Fuerza Verde,Lima,FALSE,TRUE,https://a/dji.pdf,TRUE\n" +
	"2,Leo Paz,Fuerza Azul,,TRUE,FALSE,,FALSE\n" +
	"3,Eva Sol,Unidad,Cusco,FALSE,FALSE,,TRUE\n" +
	"4,Juan Ana,Fuerza Verde,,FALSE,FALSE,,FALSE\n"

type fakeLoader struct {
	store  *congresistas.Store
	state  sheets.State
	loaded chan struct{}
}

func (f *fakeLoader) Store() *congresistas.Store {
	return f.store
}

func (f *fakeLoader) State() sheets.State {
	return f.state
}

func (f *fakeLoader) SheetName() string {
	return "congresistas"
}

func (f *fakeLoader) Load(ctx context.Context) (*congresistas.Store, error) {
	defer close(f.loaded)
	return f.store, nil
}

type fakeExporter struct {
	format snapshot.Format
	id     int
	err    error
}

func (f *fakeExporter) ExportStore(s *congresistas.Store, format snapshot.Format) (string, error) {
	f.format = format
	return "gs://b/congresistas" + format.Ext(), f.err
}

func (f *fakeExporter) ExportFicha(c congresistas.Congresista, format snapshot.Format) (string, error) {
	f.format, f.id = format, c.ID
	return fmt.Sprintf("gs://b/fichas/%d%s", c.ID, format.Ext()), f.err
}

func readyLoader(t *testing.T) *fakeLoader {
	s, err := sheets.BuildStore(testSheet)
	if err != nil {
		t.Fatalf("expected err nil when building store, got %q", err)
	}
	return &fakeLoader{store: s, state: sheets.State{Status: status.Ready, Total: s.Len()}, loaded: make(chan struct{})}
}

func newServer(l Loader, ex Exporter) *echo.Echo {
	e := echo.New()
	New(l, ex, "https://encontienda.pe/?utm=app").Register(e, middleware.BasicAuth(func(user, pass string, c echo.Context) (bool, error) {
		return user == "admin" && pass == "secreto", nil
	}))
	return e
}

func do(e *echo.Echo, method, target string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if admin {
		req.SetBasicAuth("admin", "secreto")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("expected err nil when decoding %s, got %q", rec.Body.String(), err)
	}
}

func nombres(records []congresistas.Congresista) []string {
	res := []string{}
	for _, c := range records {
		res = append(res, c.Nombre)
	}
	return res
}

func TestCongresistas(t *testing.T) {
	e := newServer(readyLoader(t), nil)
	testCases := []struct {
		name   string
		target string
		code   int
		out    []string
	}{
		{"everybody", "/congresistas", http.StatusOK, []string{"Ana Ruiz", "Leo Paz", "Eva Sol", "Juan Ana"}},
		{"by party", "/congresistas?criterio=partido&valor=Fuerza%20Verde", http.StatusOK, []string{"Ana Ruiz", "Juan Ana"}},
		{"by english criterion", "/congresistas?criterio=name&valor=Leo%20Paz", http.StatusOK, []string{"Leo Paz"}},
		{"no match", "/congresistas?criterio=nombre&valor=Nadie", http.StatusOK, []string{}},
		{"unknown criterion", "/congresistas?criterio=region&valor=Lima", http.StatusBadRequest, nil},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodGet, tt.target, false)
			if rec.Code != tt.code {
				t.Fatalf("want status %d, got %d (%s)", tt.code, rec.Code, rec.Body.String())
			}
			if tt.out == nil {
				return
			}
			var got []congresistas.Congresista
			decode(t, rec, &got)
			if !reflect.DeepEqual(nombres(got), tt.out) {
				t.Errorf("want %v, got %v", tt.out, nombres(got))
			}
		})
	}
}

func TestCongresistaAndShare(t *testing.T) {
	e := newServer(readyLoader(t), nil)
	rec := do(e, http.MethodGet, "/congresistas/1", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("want status 200, got %d", rec.Code)
	}
	var res fichaResponse
	decode(t, rec, &res)
	if res.Congresista.Nombre != "Ana Ruiz" || res.Ficha.CantidadHallazgos != 2 {
		t.Errorf("unexpected ficha %+v", res)
	}
	if rec := do(e, http.MethodGet, "/congresistas/99", false); rec.Code != http.StatusNotFound {
		t.Errorf("want status 404, got %d", rec.Code)
	}
	rec = do(e, http.MethodGet, "/congresistas/3/compartir", false)
	var share map[string]string
	decode(t, rec, &share)
	if want := "https://encontienda.pe/?congresista=3&utm=app"; share["url"] != want {
		t.Errorf("want %s, got %s", want, share["url"])
	}
}

func TestDeepLink(t *testing.T) {
	e := newServer(readyLoader(t), nil)
	rec := do(e, http.MethodGet, "/?congresista=1", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("want status 200, got %d", rec.Code)
	}
	var res deepLinkResponse
	decode(t, rec, &res)
	if res.Congresista.ID != 1 || res.Filtro.Criterio != congresistas.PorNombre || res.Filtro.Valor != "Ana Ruiz" {
		t.Errorf("unexpected deep link %+v", res)
	}
	if got := nombres(res.Filtro.Hallazgos[congresistas.Bienes]); !reflect.DeepEqual(got, []string{"Ana Ruiz"}) {
		t.Errorf("expected the assets section filtered by name, got %v", got)
	}
	if got := res.Filtro.Hallazgos[congresistas.Intereses]; len(got) != 0 {
		t.Errorf("expected empty interests section, got %v", nombres(got))
	}
	if rec := do(e, http.MethodGet, "/?congresista=01", false); rec.Code != http.StatusNotFound {
		t.Errorf("want status 404 for non canonical id, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/", false); rec.Code != http.StatusBadRequest {
		t.Errorf("want status 400 without id, got %d", rec.Code)
	}
}

func TestHallazgos(t *testing.T) {
	e := newServer(readyLoader(t), nil)
	testCases := []struct {
		name   string
		target string
		code   int
		total  int
		out    []string
	}{
		{"all with finding", "/hallazgos/bienes", http.StatusOK, 2, []string{"Ana Ruiz", "Eva Sol"}},
		{"english alias", "/hallazgos/assets?criterio=partido&valor=Fuerza%20Verde", http.StatusOK, 2, []string{"Ana Ruiz"}},
		{"intersection without match", "/hallazgos/intereses?criterio=nombre&valor=Ana%20Ruiz", http.StatusOK, 1, []string{}},
		{"unknown category", "/hallazgos/salud", http.StatusBadRequest, 0, nil},
		{"unknown criterion", "/hallazgos/dinero?criterio=edad", http.StatusBadRequest, 0, nil},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodGet, tt.target, false)
			if rec.Code != tt.code {
				t.Fatalf("want status %d, got %d (%s)", tt.code, rec.Code, rec.Body.String())
			}
			if tt.out == nil {
				return
			}
			var res seccionResponse
			decode(t, rec, &res)
			if res.Total != tt.total || !reflect.DeepEqual(nombres(res.Congresistas), tt.out) {
				t.Errorf("want %d/%v, got %d/%v", tt.total, tt.out, res.Total, nombres(res.Congresistas))
			}
		})
	}
}

func TestDetalle(t *testing.T) {
	e := newServer(readyLoader(t), nil)
	rec := do(e, http.MethodGet, "/hallazgos/dinero/1", false)
	var d congresistas.Detalle
	decode(t, rec, &d)
	if d.Titulo != "Hallazgos en rastro del dinero" || len(d.Documentos) != 1 || d.Documentos[0].Etiqueta != "DJI 2021" {
		t.Errorf("unexpected detail %+v", d)
	}
	if rec := do(e, http.MethodGet, "/hallazgos/dinero/50", false); rec.Code != http.StatusNotFound {
		t.Errorf("want status 404, got %d", rec.Code)
	}
}

func TestFiltro(t *testing.T) {
	e := newServer(readyLoader(t), nil)
	rec := do(e, http.MethodGet, "/filtro?criterio=partido&valor=Fuerza%20Verde", false)
	var res filtroResponse
	decode(t, rec, &res)
	if !reflect.DeepEqual(nombres(res.Explora), []string{"Ana Ruiz", "Juan Ana"}) {
		t.Errorf("unexpected explorer %v", nombres(res.Explora))
	}
	if len(res.Hallazgos) != len(congresistas.Categorias) {
		t.Errorf("expected one section per category, got %d", len(res.Hallazgos))
	}
	if got := nombres(res.Hallazgos[congresistas.Dinero]); !reflect.DeepEqual(got, []string{"Ana Ruiz"}) {
		t.Errorf("unexpected money section %v", got)
	}
	if rec := do(e, http.MethodGet, "/filtro", false); rec.Code != http.StatusBadRequest {
		t.Errorf("want status 400 without criterion, got %d", rec.Code)
	}
}

func TestBuscar(t *testing.T) {
	e := newServer(readyLoader(t), nil)
	testCases := []struct {
		target string
		code   int
		n      int
	}{
		{"/buscar/nombres?q=an", http.StatusOK, 2},
		{"/buscar/nombres?q=an&limite=1", http.StatusOK, 1},
		{"/buscar/nombres?q=a&limite=0", http.StatusOK, 0},
		{"/buscar/nombres?q=%20ana%20", http.StatusOK, 2},
		{"/buscar/nombres?q=%20a%20", http.StatusOK, 0},
		{"/buscar/partidos?q=%20verde", http.StatusOK, 1},
		{"/buscar/nombres?q=an&limite=x", http.StatusBadRequest, 0},
		{"/buscar/partidos?q=FUERZA", http.StatusOK, 2},
		{"/buscar/partidos?q=f", http.StatusOK, 0},
		{"/buscar/partidos?q=za&limite=0", http.StatusOK, 2},
	}
	for _, tt := range testCases {
		rec := do(e, http.MethodGet, tt.target, false)
		if rec.Code != tt.code {
			t.Errorf("%s: want status %d, got %d", tt.target, tt.code, rec.Code)
			continue
		}
		if tt.code != http.StatusOK {
			continue
		}
		var res []json.RawMessage
		decode(t, rec, &res)
		if len(res) != tt.n {
			t.Errorf("%s: want %d suggestions, got %d", tt.target, tt.n, len(res))
		}
	}
}

func TestPartidosAndEstadisticas(t *testing.T) {
	e := newServer(readyLoader(t), nil)
	var partidos []string
	decode(t, do(e, http.MethodGet, "/partidos", false), &partidos)
	if !reflect.DeepEqual(partidos, []string{"Fuerza Azul", "Fuerza Verde", "Unidad"}) {
		t.Errorf("unexpected parties %v", partidos)
	}
	var stats []congresistas.Estadistica
	decode(t, do(e, http.MethodGet, "/estadisticas", false), &stats)
	if len(stats) != 4 || stats[2].Categoria != congresistas.Bienes || stats[2].Porcentaje != 50 {
		t.Errorf("unexpected statistics %+v", stats)
	}
}

func TestNotLoaded(t *testing.T) {
	l := &fakeLoader{state: sheets.State{Status: status.Loading}}
	e := newServer(l, nil)
	rec := do(e, http.MethodGet, "/congresistas", false)
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), loadingMessage) {
		t.Errorf("want 503 with loading message, got %d %s", rec.Code, rec.Body.String())
	}
	l.state = sheets.State{Status: status.Failed, Err: fmt.Errorf("%w: Error HTTP: 404 - Not Found", sheets.ErrTransport)}
	rec = do(e, http.MethodGet, "/partidos", false)
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), "Error HTTP: 404") {
		t.Errorf("want 503 with load error, got %d %s", rec.Code, rec.Body.String())
	}
	var st estadoResponse
	decode(t, do(e, http.MethodGet, "/estado", false), &st)
	if st.Status != status.Failed || st.Texto != status.Text(status.Failed) || !strings.Contains(st.Error, `El nombre de la hoja sea "congresistas"`) {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestRecarga(t *testing.T) {
	l := readyLoader(t)
	e := newServer(l, nil)
	if rec := do(e, http.MethodPost, "/admin/recarga", false); rec.Code != http.StatusUnauthorized {
		t.Errorf("want status 401 without credentials, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/admin/recarga", true); rec.Code != http.StatusAccepted {
		t.Fatalf("want status 202, got %d", rec.Code)
	}
	<-l.loaded
	l.state.Status = status.Loading
	if rec := do(e, http.MethodPost, "/admin/recarga", true); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("want status 503 while loading, got %d", rec.Code)
	}
}

func TestExportacion(t *testing.T) {
	ex := &fakeExporter{}
	e := newServer(readyLoader(t), ex)
	rec := do(e, http.MethodPost, "/admin/exportaciones?formato=csv", true)
	var res map[string]string
	decode(t, rec, &res)
	if res["ubicacion"] != "gs://b/congresistas.csv" || ex.format != snapshot.CSV {
		t.Errorf("unexpected export %v with format %s", res, ex.format)
	}
	rec = do(e, http.MethodPost, "/admin/fichas/3/exportacion?formato=pb", true)
	decode(t, rec, &res)
	if res["ubicacion"] != "gs://b/fichas/3.pb" || ex.id != 3 {
		t.Errorf("unexpected ficha export %v", res)
	}
	if rec := do(e, http.MethodPost, "/admin/exportaciones?formato=jpeg", true); rec.Code != http.StatusBadRequest {
		t.Errorf("want status 400 for unknown format, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/admin/fichas/77/exportacion", true); rec.Code != http.StatusNotFound {
		t.Errorf("want status 404, got %d", rec.Code)
	}
	ex.err = errors.New("bucket inexistente")
	if rec := do(e, http.MethodPost, "/admin/exportaciones", true); rec.Code != http.StatusInternalServerError {
		t.Errorf("want status 500 when upload fails, got %d", rec.Code)
	}
	disabled := newServer(readyLoader(t), nil)
	if rec := do(disabled, http.MethodPost, "/admin/exportaciones", true); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("want status 503 without exporter, got %d", rec.Code)
	}
}

func TestShareURL(t *testing.T) {
	testCases := []struct {
		base string
		out  string
	}{
		{"https://encontienda.pe/", "https://encontienda.pe/?congresista=7"},
		{"https://encontienda.pe/fichas?congresista=1&x=y", "https://encontienda.pe/fichas?congresista=7&x=y"},
	}
	for _, tt := range testCases {
		res, err := ShareURL(tt.base, 7)
		if err != nil || res != tt.out {
			t.Errorf("want %s, got %s (%v)", tt.out, res, err)
		}
	}
}
