package knowledge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization of a knowledge document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrNotMapping is returned when a mapping section holds another kind of value
	ErrNotMapping = errors.New("expected a mapping")

	// ErrNotScalar is returned when a scalar field holds a list or mapping
	ErrNotScalar = errors.New("expected a scalar value")

	// ErrNoVersion is returned by Document.Version when db_version is absent
	ErrNoVersion = errors.New("document has no db_version")

	// ErrEmptyDocument is returned for files with no content
	ErrEmptyDocument = errors.New("knowledge document is empty")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadError identifies the document that failed to load
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load knowledge %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DetectFormat picks the format from the file extension; anything that is not YAML is read as JSON
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and parses the knowledge document at path.
// Every failure is returned as a *LoadError.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	doc, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return doc, nil
}

// Parse decodes a document from raw bytes. A leading UTF-8 byte order mark is ignored.
func Parse(data []byte, format Format) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}

	return &doc, nil
}
