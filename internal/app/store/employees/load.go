// internal/app/store/employees/load.go
package employees

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dalemusser/staffboard/internal/domain/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/employees.json
var bundled embed.FS

// Format is a dataset file encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// ParseFormat validates a format name given on a command line.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case JSON:
		return JSON, nil
	case YAML, "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// LoadBundled returns the dataset compiled into the binary.
func LoadBundled() (*Dataset, error) {
	b, err := bundled.ReadFile("data/employees.json")
	if err != nil {
		return nil, fmt.Errorf("read bundled dataset: %w", err)
	}
	recs, err := Decode(bytes.NewReader(b), JSON)
	if err != nil {
		return nil, fmt.Errorf("decode bundled dataset: %w", err)
	}
	return NewDataset(recs, SourceEmbedded), nil
}

// LoadFile reads a JSON or YAML dataset from disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer fh.Close()

	recs, err := Decode(fh, f)
	if err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	return NewDataset(recs, SourceFile), nil
}

// Decode reads a list of records.
func Decode(r io.Reader, f Format) ([]models.Employee, error) {
	var recs []models.Employee
	switch f {
	case JSON:
		if err := json.NewDecoder(r).Decode(&recs); err != nil {
			return nil, err
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&recs); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return recs, nil
}

// Encode writes records as an indented list.
func Encode(w io.Writer, f Format, recs []models.Employee) error {
	if recs == nil {
		recs = []models.Employee{}
	}
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
