// Package snapshot serialises the loaded collection and single fichas and
// uploads them to a file storage.
package snapshot

import (
	"errors"
	"fmt"
	"strings"
)

// Format is an export encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	PB   Format = "pb"
)

// ErrUnknownFormat is returned for formats other than csv, json and pb.
var ErrUnknownFormat = errors.New("formato de exportación desconocido")

// ParseFormat accepts csv, json and pb in any case. The empty string means
// JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return JSON, nil
	case CSV, JSON, PB:
		return f, nil
	case "protobuf":
		return PB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension, dot included.
func (f Format) Ext() string {
	return "." + string(f)
}
