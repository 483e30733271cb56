package main

import (
	"context"
	"log"

	"github.com/candidatos-info/encontienda/api"
	"github.com/candidatos-info/encontienda/config"
	"github.com/candidatos-info/encontienda/filestorage"
	"github.com/candidatos-info/encontienda/sheets"
	"github.com/candidatos-info/encontienda/snapshot"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.UserName == "" {
		log.Fatal("missing USER_NAME environment variables")
	}
	if cfg.Password == "" {
		log.Fatal("missing PASSWORD environment variables")
	}
	loader, err := sheets.NewLoader(cfg.LoaderOptions())
	if err != nil {
		log.Fatalf("falla al crear el cargador de la hoja, error %q", err)
	}
	go func() {
		if _, err := loader.Load(context.Background()); err != nil {
			log.Println(sheets.UserMessage(err, cfg.SheetName))
		}
	}()
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	h := api.New(loader, newExporter(cfg), cfg.ShareBaseURL)
	h.Register(e, middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		return (username == cfg.UserName && password == cfg.Password), nil
	}))
	log.Println("server online at ", cfg.Port)
	log.Fatal(e.Start(":" + cfg.Port))
}

// newExporter returns nil, disabling the export routes, when the destination
// can not be used.
func newExporter(cfg config.Config) api.Exporter {
	dest, err := filestorage.ParseDestination(cfg.ExportDestination)
	if err != nil {
		log.Printf("exportación deshabilitada, error %q\n", err)
		return nil
	}
	storage, err := filestorage.New(dest, filestorage.Options{
		AWSRegion:              cfg.AWSRegion,
		GoogleDriveCredentials: cfg.GoogleDriveCredentials,
		GoogleDriveOAuthToken:  cfg.GoogleDriveOAuthToken,
	})
	if err != nil {
		log.Printf("exportación deshabilitada, error %q\n", err)
		return nil
	}
	return snapshot.NewExporter(storage, dest)
}
