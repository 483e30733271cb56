package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

const timeout = time.Second * 50

// GCSClient uploads to Google Cloud Storage using the application default
// credentials.
type GCSClient struct {
	client *storage.Client
}

// NewGCSClient returns a client for Google Cloud Storage.
func NewGCSClient() (*GCSClient, error) {
	client, err := storage.NewClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("falla al crear el cliente de GCS, error %q", err)
	}
	return &GCSClient{client: client}, nil
}

// Upload copies b to gs://bucket/fileName and returns its public address.
func (gcs *GCSClient) Upload(b []byte, bucket, fileName string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	wc := gcs.client.Bucket(bucket).Object(fileName).NewWriter(ctx)
	wc.ContentType = contentType(fileName)
	if _, err := io.Copy(wc, bytes.NewReader(b)); err != nil {
		return "", fmt.Errorf("falla al copiar el contenido al bucket de GCS (%s/%s), error %q", bucket, fileName, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("falla al cerrar el objeto de GCS (%s/%s), error %q", bucket, fileName, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, fileName), nil
}
