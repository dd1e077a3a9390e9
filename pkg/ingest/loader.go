package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a fact file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported fact format")

// factFile is the document form: a top-level "facts" key. A bare list is
// accepted too.
type factFile struct {
	Facts []Fact `json:"facts" yaml:"facts"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// LoadFile reads and validates the facts in path.
func LoadFile(path string) ([]Fact, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open facts: %w", err)
	}
	defer f.Close()

	facts, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return facts, nil
}

// Decode reads facts in the given format and validates each one.
func Decode(r io.Reader, format Format) ([]Fact, error) {
	var (
		facts []Fact
		err   error
	)
	switch format {
	case FormatYAML:
		facts, err = decodeYAML(r)
	case FormatJSON:
		facts, err = decodeJSON(r)
	case FormatCSV:
		facts, err = decodeCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	for i := range facts {
		if err := facts[i].Validate(); err != nil {
			return nil, fmt.Errorf("fact %d: %w", i, err)
		}
	}
	return facts, nil
}

func decodeYAML(r io.Reader) ([]Fact, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	if doc.Content[0].Kind == yaml.SequenceNode {
		var facts []Fact
		if err := doc.Content[0].Decode(&facts); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return facts, nil
	}
	var file factFile
	if err := doc.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return file.Facts, nil
}

func decodeJSON(r io.Reader) ([]Fact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var facts []Fact
		if err := json.Unmarshal(data, &facts); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return facts, nil
	}
	var file factFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return file.Facts, nil
}

// csvColumns maps header names to fact fields.
var csvColumns = map[string]func(*Fact, string){
	"entity":    func(f *Fact, v string) { f.Entity = v },
	"subject":   func(f *Fact, v string) { f.Entity = v },
	"attribute": func(f *Fact, v string) { f.Attribute = v },
	"value":     func(f *Fact, v string) { f.Value = v },
	"category":  func(f *Fact, v string) { f.Category = v },
	"topic":     func(f *Fact, v string) { f.Topic = v },
	"section":   func(f *Fact, v string) { f.Section = v },
	"group":     func(f *Fact, v string) { f.Group = v },
	"source":    func(f *Fact, v string) { f.Source = v },
}

// decodeCSV reads a headered CSV. Header names are matched
// case-insensitively; unknown columns are ignored.
func decodeCSV(r io.Reader) ([]Fact, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	setters := make([]func(*Fact, string), len(header))
	for i, name := range header {
		setters[i] = csvColumns[strings.ToLower(strings.TrimSpace(name))]
	}

	var facts []Fact
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		var f Fact
		for i, v := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&f, strings.TrimSpace(v))
			}
		}
		facts = append(facts, f)
	}
	return facts, nil
}
