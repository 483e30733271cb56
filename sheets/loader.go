// Package sheets downloads the published congresistas sheet and keeps the
// collection built from its last successful load.
package sheets

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/candidatos-info/encontienda/congresistas"
	"github.com/candidatos-info/encontienda/csvparser"
	"github.com/candidatos-info/encontienda/status"
	"golang.org/x/text/encoding"
)

const sheetURLTemplate = "https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s"

// SheetURL returns the CSV export address of a sheet of a public
// spreadsheet. spreadsheetID is the id found in the spreadsheet address, not
// the whole address.
func SheetURL(spreadsheetID, sheetName string) string {
	return fmt.Sprintf(sheetURLTemplate, spreadsheetID, url.QueryEscape(sheetName))
}

// Options configures a Loader.
type Options struct {
	URL       string        // CSV address, http(s):// or file://
	SheetName string        // only used in messages shown to people
	Encoding  string        // utf-8 (default), latin1 or windows-1252
	Timeout   time.Duration // zero keeps the transport defaults
	Progress  bool          // draw the download progress on the terminal
}

// State describes the last load attempt.
type State struct {
	Status   status.Status
	Err      error
	LoadedAt time.Time
	Total    int
}

// Loader fetches the sheet and publishes the resulting collection. Queries
// always see either the previous complete collection or the new one.
type Loader struct {
	url       string
	sheetName string
	charset   encoding.Encoding
	client    *http.Client
	progress  bool

	loading int32
	store   atomic.Pointer[congresistas.Store]

	mu       sync.RWMutex
	status   status.Status
	err      error
	loadedAt time.Time
}

// NewLoader returns a loader for the sheet at opts.URL. Nothing is
// downloaded until Load is called.
func NewLoader(opts Options) (*Loader, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("falta la dirección de la hoja de cálculo")
	}
	charset, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	return &Loader{
		url:       opts.URL,
		sheetName: opts.SheetName,
		charset:   charset,
		client:    &http.Client{Transport: t, Timeout: opts.Timeout},
		progress:  opts.Progress,
		status:    status.Idle,
	}, nil
}

// Store returns the published collection, or nil before the first
// successful load.
func (l *Loader) Store() *congresistas.Store {
	return l.store.Load()
}

// State returns the status of the loader.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	st := State{Status: l.status, Err: l.err, LoadedAt: l.loadedAt}
	if s := l.store.Load(); s != nil {
		st.Total = s.Len()
	}
	return st
}

// SheetName returns the sheet name given in the options.
func (l *Loader) SheetName() string {
	return l.sheetName
}

// Load downloads the sheet, builds a new collection and publishes it. When
// anything fails the previous collection, if any, stays published. Only one
// load runs at a time; concurrent calls get ErrBusy.
func (l *Loader) Load(ctx context.Context) (*congresistas.Store, error) {
	if !atomic.CompareAndSwapInt32(&l.loading, 0, 1) {
		return nil, ErrBusy
	}
	defer atomic.StoreInt32(&l.loading, 0)
	l.setState(status.Loading, nil)
	b, err := l.download(ctx)
	if err != nil {
		return nil, l.fail(err)
	}
	text, err := l.decode(b)
	if err != nil {
		return nil, l.fail(err)
	}
	s, err := BuildStore(text)
	if err != nil {
		return nil, l.fail(err)
	}
	l.store.Store(s)
	l.mu.Lock()
	l.status = status.Ready
	l.err = nil
	l.loadedAt = time.Now()
	l.mu.Unlock()
	log.Printf("cargados %d congresistas de %d partidos desde %s\n", s.Len(), len(s.Partidos()), l.url)
	return s, nil
}

// BuildStore parses the CSV text of the sheet into a collection. A sheet
// without data rows is rejected with ErrShape.
func BuildStore(text string) (*congresistas.Store, error) {
	rows := csvparser.Parse(strings.TrimPrefix(text, "\ufeff"))
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: el CSV no tiene suficientes filas (necesita encabezados + datos), se encontraron %d", ErrShape, len(rows))
	}
	return congresistas.NewStore(congresistas.BuildRecords(rows)), nil
}

func (l *Loader) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: falla al crear la petición para %s, error %q", ErrTransport, l.url, err)
	}
	res, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: problema al descargar la hoja desde %s, error %q", ErrTransport, l.url, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: Error HTTP: %d - %s", ErrTransport, res.StatusCode, http.StatusText(res.StatusCode))
	}
	var body io.Reader = res.Body
	if l.progress {
		p := newProgress(res.ContentLength)
		defer p.finish()
		body = p.wrap(body)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: falla al leer la respuesta de %s, error %q", ErrTransport, l.url, err)
	}
	return b, nil
}

func (l *Loader) decode(b []byte) (string, error) {
	if l.charset == nil {
		return string(b), nil
	}
	decoded, err := l.charset.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: falla al decodificar la hoja, error %q", ErrShape, err)
	}
	return string(decoded), nil
}

func (l *Loader) setState(s status.Status, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status = s
	l.err = err
}

func (l *Loader) fail(err error) error {
	log.Printf("falla al cargar la hoja %s, error %q\n", l.url, err)
	l.setState(status.Failed, err)
	return err
}
