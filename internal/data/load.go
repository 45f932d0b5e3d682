package data

import (
	"fmt"
	"path/filepath"
	"strings"

	"bootcomp/internal/model"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ParseFormat normalises format, inferring it from the file extension when
// empty.
func ParseFormat(format, path string) (Format, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch f {
	case "csv", "txt":
		return FormatCSV, nil
	case "xlsx", "xlsm", "excel":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unsupported data format %q (path %s)", model.ErrInvalidArgument, format, path)
}

// Load reads scenarios from path in the given format.
func Load(path, format string, opts Options) (model.Scenarios, error) {
	f, err := ParseFormat(format, path)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatXLSX:
		return LoadXLSX(path, opts)
	case FormatJSON:
		return LoadJSON(path, opts)
	default:
		return LoadCSV(path, opts)
	}
}
