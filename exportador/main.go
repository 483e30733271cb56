package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/candidatos-info/encontienda/congresistas"
	"github.com/candidatos-info/encontienda/filestorage"
	"github.com/candidatos-info/encontienda/sheets"
	"github.com/candidatos-info/encontienda/snapshot"
)

func main() {
	sheetURL := flag.String("sheetURL", "", "dirección del CSV de la hoja, http(s):// o file://")
	spreadsheetID := flag.String("spreadsheetID", "", "id del spreadsheet publicado, usado cuando no se informa sheetURL")
	sheetName := flag.String("sheet", "congresistas", "nombre de la hoja")
	charset := flag.String("encoding", "utf-8", "codificación de la hoja: utf-8, latin1 o windows-1252")
	outDir := flag.String("outDir", "", "destino de la exportación") // gs://BUCKET, s3://BUCKET, drive://FOLDER o un path local
	format := flag.String("format", "csv", "formato de la exportación: csv, json o pb")
	id := flag.Int("id", 0, "exporta solo la ficha de este congresista")
	credentials := flag.String("credentials", "", "credenciales de Google Drive")
	oauthToken := flag.String("OAuthToken", "", "archivo con el token oauth de Google Drive")
	awsRegion := flag.String("awsRegion", "sa-east-1", "región de AWS")
	timeout := flag.Duration("timeout", time.Minute, "tiempo máximo de descarga")
	flag.Parse()
	if *outDir == "" {
		log.Fatal("informe el destino de la exportación")
	}
	if *sheetURL == "" {
		if *spreadsheetID == "" {
			log.Fatal("informe la dirección de la hoja o el id del spreadsheet")
		}
		*sheetURL = sheets.SheetURL(*spreadsheetID, *sheetName)
	}
	f, err := snapshot.ParseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}
	dest, err := filestorage.ParseDestination(*outDir)
	if err != nil {
		log.Fatal(err)
	}
	storage, err := filestorage.New(dest, filestorage.Options{
		AWSRegion:              *awsRegion,
		GoogleDriveCredentials: *credentials,
		GoogleDriveOAuthToken:  *oauthToken,
	})
	if err != nil {
		log.Fatal(err)
	}
	loader, err := sheets.NewLoader(sheets.Options{
		URL:       *sheetURL,
		SheetName: *sheetName,
		Encoding:  *charset,
		Timeout:   *timeout,
		Progress:  true,
	})
	if err != nil {
		log.Fatal(err)
	}
	s, err := loader.Load(context.Background())
	if err != nil {
		log.Fatal(sheets.UserMessage(err, *sheetName))
	}
	summary(s)
	exporter := snapshot.NewExporter(storage, dest)
	if *id != 0 {
		c, ok := s.FindByID(*id)
		if !ok {
			log.Fatalf("congresista %d no encontrado", *id)
		}
		if _, err := exporter.ExportFicha(c, f); err != nil {
			log.Fatal(err)
		}
		return
	}
	if _, err := exporter.ExportStore(s, f); err != nil {
		log.Fatal(err)
	}
}

func summary(s *congresistas.Store) {
	log.Printf("%d congresistas, %d partidos\n", s.Len(), len(s.Partidos()))
	for _, e := range s.Estadisticas() {
		log.Printf("%-10s %3d con hallazgo (%.1f%%)\n", e.Categoria, e.ConHallazgo, e.Porcentaje)
	}
}
