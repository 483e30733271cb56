package filestorage

import (
	"path"
	"strings"
)

var contentTypes = map[string]string{
	".csv":  "text/csv; charset=utf-8",
	".json": "application/json",
	".pb":   "application/x-protobuf",
}

func contentType(fileName string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(fileName))]; ok {
		return ct
	}
	return "application/octet-stream"
}
