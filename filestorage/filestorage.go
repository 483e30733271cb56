// Package filestorage uploads exported files to a local directory, Google
// Cloud Storage, AWS S3 or Google Drive.
package filestorage

import (
	"fmt"
	"path"
	"strings"
)

// FileStorage stores a file under bucket and returns where it can be found.
type FileStorage interface {
	Upload(b []byte, bucket, fileName string) (string, error)
}

// Kind identifies a storage backend.
type Kind string

const (
	Local Kind = "local"
	GCS   Kind = "gs"
	S3    Kind = "s3"
	Drive Kind = "drive"
)

// Destination is a parsed export destination such as gs://bucket/prefix.
type Destination struct {
	Kind   Kind
	Bucket string // directory for Local, folder id for Drive
	Prefix string
}

// Key returns the object name of fileName inside the destination.
func (d Destination) Key(fileName string) string {
	if d.Prefix == "" {
		return fileName
	}
	return path.Join(d.Prefix, fileName)
}

// ParseDestination understands gs://bucket[/prefix], s3://bucket[/prefix],
// drive://folderID and plain directory paths.
func ParseDestination(dest string) (Destination, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return Destination{}, fmt.Errorf("destino de exportación vacío")
	}
	i := strings.Index(dest, "://")
	if i < 0 {
		return Destination{Kind: Local, Bucket: dest}, nil
	}
	kind := Kind(strings.ToLower(dest[:i]))
	rest := strings.Trim(dest[i+3:], "/")
	switch kind {
	case GCS, S3, Drive:
	case "file":
		return Destination{Kind: Local, Bucket: "/" + rest}, nil
	default:
		return Destination{}, fmt.Errorf("destino de exportación desconocido %q", dest)
	}
	if rest == "" {
		return Destination{}, fmt.Errorf("falta el bucket en el destino %q", dest)
	}
	bucket, prefix := rest, ""
	if j := strings.Index(rest, "/"); j >= 0 {
		bucket, prefix = rest[:j], rest[j+1:]
	}
	if kind == Drive && prefix != "" {
		return Destination{}, fmt.Errorf("google drive solo acepta el id de la carpeta, se recibió %q", dest)
	}
	return Destination{Kind: kind, Bucket: bucket, Prefix: prefix}, nil
}

// Options carries the credentials some backends need.
type Options struct {
	AWSRegion              string
	GoogleDriveCredentials string
	GoogleDriveOAuthToken  string
}

// New returns the storage for the destination kind.
func New(d Destination, opts Options) (FileStorage, error) {
	switch d.Kind {
	case Local:
		return NewLocalStorage(), nil
	case GCS:
		c, err := NewGCSClient()
		if err != nil {
			return nil, err
		}
		return c, nil
	case S3:
		c, err := NewAWSClient(opts.AWSRegion)
		if err != nil {
			return nil, err
		}
		return c, nil
	case Drive:
		return NewGoogleDriveStorage(opts.GoogleDriveCredentials, opts.GoogleDriveOAuthToken)
	}
	return nil, fmt.Errorf("destino de exportación desconocido %q", d.Kind)
}
