// Package config reads the service settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/candidatos-info/encontienda/sheets"
)

// Config holds every setting of the server and of the exporter.
type Config struct {
	SpreadsheetID string        `env:"SPREADSHEET_ID" envDefault:"1AObLGILruN3LrVSi849oiLGlabcXKqv-0-9nNY4GdA8"`
	SheetName     string        `env:"SHEET_NAME" envDefault:"congresistas"`
	SheetURL      string        `env:"SHEET_URL"`
	SheetEncoding string        `env:"SHEET_ENCODING" envDefault:"utf-8"`
	FetchTimeout  time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`

	Port         string `env:"SERVER_PORT" envDefault:"8080"`
	UserName     string `env:"USER_NAME"`
	Password     string `env:"PASSWORD"`
	ShareBaseURL string `env:"SHARE_BASE_URL" envDefault:"https://encontienda.pe/"`

	ExportDestination      string `env:"EXPORT_DESTINATION" envDefault:"exportaciones"`
	GoogleDriveCredentials string `env:"GOOGLE_DRIVE_CREDENTIALS"`
	GoogleDriveOAuthToken  string `env:"GOOGLE_DRIVE_OAUTH_TOKEN"`
	AWSRegion              string `env:"AWS_REGION" envDefault:"sa-east-1"`
}

// Load parses the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("falla al leer la configuración del entorno, error %q", err)
	}
	return c, nil
}

// CSVURL returns SHEET_URL when set, the export address of the configured
// sheet otherwise.
func (c Config) CSVURL() string {
	if c.SheetURL != "" {
		return c.SheetURL
	}
	return sheets.SheetURL(c.SpreadsheetID, c.SheetName)
}

// LoaderOptions returns the sheets options described by the configuration.
func (c Config) LoaderOptions() sheets.Options {
	return sheets.Options{
		URL:       c.CSVURL(),
		SheetName: c.SheetName,
		Encoding:  c.SheetEncoding,
		Timeout:   c.FetchTimeout,
	}
}
