package filestorage

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
)

type localStorage struct{}

// NewLocalStorage returns a storage that writes into a local directory.
func NewLocalStorage() FileStorage {
	return &localStorage{}
}

// Upload writes b to bucket/fileName, creating the directories as needed.
func (l *localStorage) Upload(b []byte, bucket, fileName string) (string, error) {
	name := filepath.Join(bucket, filepath.FromSlash(fileName))
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return "", fmt.Errorf("falla al crear el directorio %s, error %q", filepath.Dir(name), err)
	}
	if err := ioutil.WriteFile(name, b, 0644); err != nil {
		return "", fmt.Errorf("falla al guardar el archivo %s, error %q", name, err)
	}
	return name, nil
}
