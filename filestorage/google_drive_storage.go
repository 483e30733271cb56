package filestorage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

type googleDrive struct {
	service *drive.Service
}

// NewGoogleDriveStorage returns a storage backed by Google Drive.
// credentialsFile is the OAuth client JSON and oauthToken a file holding a
// previously granted token.
func NewGoogleDriveStorage(credentialsFile, oauthToken string) (FileStorage, error) {
	if credentialsFile == "" || oauthToken == "" {
		return nil, fmt.Errorf("google drive necesita GOOGLE_DRIVE_CREDENTIALS y GOOGLE_DRIVE_OAUTH_TOKEN")
	}
	b, err := ioutil.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("falla al leer el archivo de credenciales [%s], error %q", credentialsFile, err)
	}
	config, err := google.ConfigFromJSON(b, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("falla al procesar las credenciales de [%s], error %q", credentialsFile, err)
	}
	f, err := os.Open(oauthToken)
	if err != nil {
		return nil, fmt.Errorf("falla al abrir el token oauth [%s], error %q", oauthToken, err)
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err = json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("falla al leer el token OAuth, error %q", err)
	}
	service, err := drive.New(config.Client(context.Background(), tok))
	if err != nil {
		return nil, fmt.Errorf("no fue posible crear el servicio de Google Drive, error %q", err)
	}
	return &googleDrive{service: service}, nil
}

// Upload creates the file inside the folder whose id is bucket and returns
// its web address.
func (gd *googleDrive) Upload(b []byte, bucket, fileName string) (string, error) {
	f := &drive.File{
		MimeType: contentType(fileName),
		Name:     fileName,
		Parents:  []string{bucket},
	}
	created, err := gd.service.Files.Create(f).Media(bytes.NewReader(b)).Fields("id", "webViewLink").Do()
	if err != nil {
		return "", fmt.Errorf("falla al subir [%s] a la carpeta [%s] de Google Drive, error %q", fileName, bucket, err)
	}
	if created.WebViewLink != "" {
		return created.WebViewLink, nil
	}
	return fmt.Sprintf("https://drive.google.com/file/d/%s", created.Id), nil
}
